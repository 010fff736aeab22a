package mock

import (
	"context"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.ContentLoader = (*ContentLoader)(nil)

// ContentLoader is a mock implementation of unfurl.ContentLoader.
type ContentLoader struct {
	LoadFn func(ctx context.Context, url string) (string, error)
}

func (l *ContentLoader) Load(ctx context.Context, url string) (string, error) {
	return l.LoadFn(ctx, url)
}
