// Package whatlanggo detects page language from visible text when the page
// does not declare one.
package whatlanggo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/unfurl"
)

// Ensure LanguageDetector implements unfurl.LanguageDetector at compile time.
var _ unfurl.LanguageDetector = (*LanguageDetector)(nil)

// minTextLength is the shortest text worth guessing a language for.
const minTextLength = 20

// LanguageDetector asks the next detector first and falls back to
// statistical detection over the page's text.
type LanguageDetector struct {
	next unfurl.LanguageDetector
}

// NewLanguageDetector creates a new LanguageDetector. next may be nil.
func NewLanguageDetector(next unfurl.LanguageDetector) *LanguageDetector {
	return &LanguageDetector{next: next}
}

// Detect returns the declared language when next finds one, otherwise the
// ISO 639-1 code of a reliable guess, otherwise "".
func (d *LanguageDetector) Detect(page string) (lang string) {
	defer func() {
		if r := recover(); r != nil {
			lang = ""
		}
	}()

	if d.next != nil {
		if lang := d.next.Detect(page); lang != "" {
			return lang
		}
	}

	text := visibleText(page)
	if len([]rune(text)) < minTextLength {
		return ""
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return strings.ToLower(info.Lang.Iso6391())
}

func visibleText(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}
