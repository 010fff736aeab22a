package mock

import (
	"context"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.MetadataWriter = (*MetadataWriter)(nil)

// MetadataWriter is a mock implementation of unfurl.MetadataWriter.
type MetadataWriter struct {
	WriteMetadataFn func(ctx context.Context, m *unfurl.Metadata) error
}

func (w *MetadataWriter) WriteMetadata(ctx context.Context, m *unfurl.Metadata) error {
	return w.WriteMetadataFn(ctx, m)
}
