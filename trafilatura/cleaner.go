package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements unfurl.Cleaner at compile time.
var _ unfurl.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-trafilatura to reduce a page to its main content before
// handing it to the next Cleaner.
type Cleaner struct {
	next unfurl.Cleaner
	opts trafilatura.Options
}

// NewCleaner creates a new Cleaner. A nil next returns the content HTML
// as is.
func NewCleaner(next unfurl.Cleaner) *Cleaner {
	return &Cleaner{
		next: next,
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Cleanup extracts the main content of page. The page is passed on
// unchanged when trafilatura fails or finds nothing.
func (c *Cleaner) Cleanup(page string) string {
	content := page
	if strings.TrimSpace(page) != "" {
		if extracted, err := c.extract(page); err == nil && strings.TrimSpace(extracted) != "" {
			content = extracted
		}
	}

	if c.next == nil {
		return content
	}
	return c.next.Cleanup(content)
}

func (c *Cleaner) extract(page string) (string, error) {
	result, err := trafilatura.Extract(strings.NewReader(page), c.opts)
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", nil
	}
	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
