// Package html provides an x/net/html based implementation of unfurl.Cleaner
// that reduces a page to inline-formatted text.
package html

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/fwojciec/unfurl"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements unfurl.Cleaner at compile time.
var _ unfurl.Cleaner = (*Cleaner)(nil)

// acceptableTags are the elements that survive cleanup. Every other element
// is replaced by its children.
var acceptableTags = map[string]bool{
	"strong": true,
	"em":     true,
	"u":      true,
	"img":    true,
	"i":      true,
}

var (
	reLineBreaks     = regexp.MustCompile(`[\r\n]{2,}`)
	reLeadingDoctype = regexp.MustCompile(`(?i)^\s*<!doctype html>`)
	reWhitespace     = regexp.MustCompile(`\s{2,}`)
	reBreakRun       = regexp.MustCompile(`(?i)(?:<br\s*/?>\s*){3,}`)
	reBreak          = regexp.MustCompile(`(?i)<br\s*/?>`)
	reLineStart      = regexp.MustCompile(`(?m)^[ \t]+`)
	reLeadingBreaks  = regexp.MustCompile(`(?i)^(?:\s*<br\s*/?>)+\s*`)
)

// Cleaner strips a page down to text and a handful of inline tags.
type Cleaner struct {
	normalize bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithNormalization toggles the extra whitespace and line-break
// normalization applied after serialization. Enabled by default.
func WithNormalization(enabled bool) Option {
	return func(c *Cleaner) {
		c.normalize = enabled
	}
}

// NewCleaner creates a new Cleaner.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{normalize: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cleanup parses rawHTML into a private tree, removes scripts, styles and
// doctype nodes, unwraps every element that is not an acceptable inline tag
// and returns the serialized result.
func (c *Cleaner) Cleanup(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	doc, err := html.ParseWithOptions(strings.NewReader(rawHTML), html.ParseOptionEnableScripting(false))
	if err != nil {
		return ""
	}

	removeNonContent(doc)
	unwrap(doc)

	content, err := renderChildren(doc)
	if err != nil {
		return ""
	}

	content = strings.TrimSpace(content)
	content = reLineBreaks.ReplaceAllString(content, "<br />")

	if c.normalize {
		content = normalize(content)
	}
	return content
}

// removeNonContent detaches script and style elements, doctype nodes and
// text whose content starts with a doctype declaration.
func removeNonContent(doc *html.Node) {
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isNonContent(c) {
				doomed = append(doomed, c)
				continue
			}
			walk(c)
		}
	}
	walk(doc)

	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func isNonContent(n *html.Node) bool {
	switch n.Type {
	case html.DoctypeNode:
		return true
	case html.ElementNode:
		return n.Data == "script" || n.Data == "style"
	case html.TextNode, html.CommentNode:
		return hasDoctypePrefix(n.Data)
	}
	return false
}

func hasDoctypePrefix(s string) bool {
	const prefix = "<!doctype"
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// unwrap walks the tree breadth-first from the document's children. Nodes
// that are neither text nor acceptable tags are replaced in their parent by
// their own children, which are then visited in turn. The work list holds
// node pointers, so splicing never invalidates pending entries.
func unwrap(doc *html.Node) {
	var queue []*html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		queue = append(queue, c)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if keep(n) {
			continue
		}

		parent := n.Parent
		if parent == nil {
			continue
		}
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			n.RemoveChild(child)
			parent.InsertBefore(child, n)
			queue = append(queue, child)
			child = next
		}
		parent.RemoveChild(n)
	}
}

func keep(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	return n.Type == html.ElementNode && acceptableTags[n.Data]
}

// renderChildren serializes the inner markup of n.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// normalize tidies the serialized excerpt so it reads well when stored:
// one <br /> per line, at most two in a row, no indentation.
func normalize(s string) string {
	s = reLeadingDoctype.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	s = reBreakRun.ReplaceAllString(s, "<br /><br />")
	s = reBreak.ReplaceAllString(s, "$0\n")
	s = reLineStart.ReplaceAllString(s, "")
	s = reLeadingBreaks.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
