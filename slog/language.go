package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingLanguageDetector implements unfurl.LanguageDetector.
var _ unfurl.LanguageDetector = (*LoggingLanguageDetector)(nil)

// LoggingLanguageDetector wraps a LanguageDetector with debug logging.
type LoggingLanguageDetector struct {
	next   unfurl.LanguageDetector
	logger *slog.Logger
}

// NewLoggingLanguageDetector creates a new LoggingLanguageDetector.
func NewLoggingLanguageDetector(next unfurl.LanguageDetector, logger *slog.Logger) *LoggingLanguageDetector {
	return &LoggingLanguageDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingLanguageDetector) Detect(html string) string {
	begin := time.Now()
	lang := d.next.Detect(html)
	name := lang
	if name == "" {
		name = "(unknown)"
	}
	d.logger.Debug("language detection",
		"language", name,
		"duration", time.Since(begin),
	)
	return lang
}
