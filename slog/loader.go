// Package slog provides logging decorators for unfurl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingLoader implements unfurl.ContentLoader.
var _ unfurl.ContentLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a ContentLoader with logging.
type LoggingLoader struct {
	next   unfurl.ContentLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next unfurl.ContentLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) Load(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}
