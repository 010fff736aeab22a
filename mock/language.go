package mock

import "github.com/fwojciec/unfurl"

var _ unfurl.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of unfurl.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(html string) string
}

func (d *LanguageDetector) Detect(html string) string {
	return d.DetectFn(html)
}
