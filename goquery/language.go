package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/unfurl"
)

// Ensure LanguageDetector implements unfurl.LanguageDetector at compile time.
var _ unfurl.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector reads the lang attribute of the root <html> element.
type LanguageDetector struct{}

// NewLanguageDetector creates a new LanguageDetector.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// Detect returns the lowercased lang attribute, or "" if the page has none
// or cannot be read.
func (d *LanguageDetector) Detect(page string) (lang string) {
	defer func() {
		if r := recover(); r != nil {
			lang = ""
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}

	value, _ := doc.Find("html").First().Attr("lang")
	return strings.ToLower(strings.TrimSpace(value))
}
