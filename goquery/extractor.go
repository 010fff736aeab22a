// Package goquery implements unfurl extraction on top of goquery: the field
// extractors, the lang attribute detector and the Extractor that composes
// them with a content loader.
package goquery

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/unfurl"
	unfurlhtml "github.com/fwojciec/unfurl/html"
	"golang.org/x/net/html"
)

// DefaultMaxDescriptionLength bounds descriptions taken from page content.
const DefaultMaxDescriptionLength = 300

// Ensure Extractor implements unfurl.Extractor at compile time.
var _ unfurl.Extractor = (*Extractor)(nil)

// Extractor loads a page and extracts its metadata.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	loader   unfurl.ContentLoader
	detector unfurl.LanguageDetector
	cleaner  unfurl.Cleaner
	logger   *slog.Logger

	defaultImage         string
	maxDescriptionLength int
	includeContent       bool
	includeRaw           bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDefaultImage sets the image reported for pages without any.
func WithDefaultImage(image string) Option {
	return func(e *Extractor) {
		e.defaultImage = image
	}
}

// WithMaxDescriptionLength sets how many characters of page content are used
// when a page declares no description. Non-positive values are ignored.
func WithMaxDescriptionLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxDescriptionLength = n
		}
	}
}

// WithLanguageDetector replaces the lang attribute detector.
func WithLanguageDetector(d unfurl.LanguageDetector) Option {
	return func(e *Extractor) {
		e.detector = d
	}
}

// WithCleaner replaces the cleaner used for excerpts.
func WithCleaner(c unfurl.Cleaner) Option {
	return func(e *Extractor) {
		e.cleaner = c
	}
}

// WithLogger sets the logger that receives field extraction failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithContent controls whether the cleaned excerpt is stored in
// Metadata.Content. Disabled by default.
func WithContent(enabled bool) Option {
	return func(e *Extractor) {
		e.includeContent = enabled
	}
}

// WithRawContent controls whether the fetched HTML is kept in Metadata.Raw.
// Enabled by default.
func WithRawContent(enabled bool) Option {
	return func(e *Extractor) {
		e.includeRaw = enabled
	}
}

// NewExtractor creates an Extractor that fetches pages with loader.
func NewExtractor(loader unfurl.ContentLoader, opts ...Option) *Extractor {
	e := &Extractor{
		loader:               loader,
		detector:             NewLanguageDetector(),
		cleaner:              unfurlhtml.NewCleaner(),
		logger:               slog.New(slog.DiscardHandler),
		maxDescriptionLength: DefaultMaxDescriptionLength,
		includeRaw:           true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract loads url and returns its metadata. Load failures and
// cancellation are returned as errors; everything after the load degrades
// field by field.
func (e *Extractor) Extract(ctx context.Context, url string) (*unfurl.Metadata, error) {
	if err := unfurl.ValidateURL(url); err != nil {
		return nil, err
	}
	if e.loader == nil {
		return nil, unfurl.Errorf(unfurl.EINTERNAL, "no content loader configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := e.loader.Load(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.ExtractHTML(url, page), nil
}

// ExtractURL is Extract without cancellation.
func (e *Extractor) ExtractURL(url string) (*unfurl.Metadata, error) {
	return e.Extract(context.Background(), url)
}

// ExtractHTML extracts metadata from already loaded HTML.
func (e *Extractor) ExtractHTML(url, page string) *unfurl.Metadata {
	m := unfurl.NewMetadata(url)
	if e.includeRaw {
		m.Raw = page
	}

	doc := e.parse(page)
	cleaned := sync.OnceValue(func() string {
		if e.cleaner == nil {
			return ""
		}
		return e.cleaner.Cleanup(page)
	})

	m.Title = extractField(e.logger, "title", "", func() string {
		return Title(doc)
	})
	m.Description = extractField(e.logger, "description", "", func() string {
		if description := Description(doc); description != "" {
			return description
		}
		return ExcerptDescription(cleaned(), e.maxDescriptionLength)
	})
	m.Keywords = extractField(e.logger, "keywords", []string{}, func() []string {
		return Keywords(doc)
	})
	m.Images = extractField(e.logger, "images", []string{}, func() []string {
		return Images(doc, e.defaultImage)
	})
	m.MetaTags = extractField(e.logger, "metaTags", []unfurl.MetaTag{}, func() []unfurl.MetaTag {
		return MetaTags(doc)
	})
	m.Links = extractField(e.logger, "links", []unfurl.Link{}, func() []unfurl.Link {
		return Links(doc)
	})
	if e.includeContent {
		m.Content = extractField(e.logger, "content", "", cleaned)
	}
	if e.detector != nil {
		m.Language = extractField(e.logger, "language", "", func() string {
			return e.detector.Detect(page)
		})
	}

	return m
}

func (e *Extractor) parse(page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		e.logger.Warn("parse failed", "err", err)
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// extractField runs fn and returns its result. A panic inside fn is logged
// and replaced by empty, so one broken field never fails the extraction.
func extractField[T any](logger *slog.Logger, field string, empty T, fn func() T) (v T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("field extraction failed", "field", field, "err", r)
			v = empty
		}
	}()
	return fn()
}

// ExcerptDescription returns the text of a cleaned excerpt cut to at most
// maxLength characters. The cut is not word-aware.
func ExcerptDescription(excerpt string, maxLength int) string {
	if strings.TrimSpace(excerpt) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(excerpt))
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(doc.Text())
	if maxLength > 0 {
		if runes := []rune(text); len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return strings.TrimSpace(text)
}
