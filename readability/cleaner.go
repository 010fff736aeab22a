package readability

import (
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/go-shiori/go-readability"
)

// Ensure Cleaner implements unfurl.Cleaner at compile time.
var _ unfurl.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-readability to reduce a page to its main article before
// handing it to the next Cleaner.
type Cleaner struct {
	next unfurl.Cleaner
}

// NewCleaner creates a new Cleaner. A nil next returns the article HTML
// as is.
func NewCleaner(next unfurl.Cleaner) *Cleaner {
	return &Cleaner{next: next}
}

// Cleanup extracts the main article of page. The page is passed on
// unchanged when readability finds no article.
func (c *Cleaner) Cleanup(page string) string {
	return c.forward(c.article(page))
}

func (c *Cleaner) article(page string) string {
	if strings.TrimSpace(page) == "" {
		return page
	}

	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return page
	}
	return article.Content
}

func (c *Cleaner) forward(page string) string {
	if c.next == nil {
		return page
	}
	return c.next.Cleanup(page)
}
