package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/unfurl"
)

// Ensure Converter implements unfurl.Converter at compile time.
var _ unfurl.Converter = (*Converter)(nil)

// Converter turns page excerpts into Markdown. Excerpts from the cleaner
// only carry inline markup; the table plugin covers excerpts produced by the
// main-content cleaners, which keep block structure.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert returns the Markdown rendering of excerpt, trimmed.
func (c *Converter) Convert(excerpt string) (string, error) {
	if strings.TrimSpace(excerpt) == "" {
		return "", unfurl.Errorf(unfurl.EINVALID, "empty excerpt")
	}

	md, err := c.conv.ConvertString(excerpt)
	if err != nil {
		return "", unfurl.Errorf(unfurl.EINTERNAL, "convert excerpt: %v", err)
	}
	return strings.TrimSpace(md), nil
}
