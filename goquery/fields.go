package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/unfurl"
)

// The parser decodes character references in attribute values and text, so
// the values read here are already HTML-decoded. Blank values collapse to "".

// Title returns the og:title content, falling back to the text of the
// <title> element in <head>.
func Title(doc *goquery.Document) string {
	if title := readOpenGraphProperty(doc, "og:title"); title != "" {
		return title
	}
	return strings.TrimSpace(decoded(doc.Find("head > title").First().Text()))
}

// Description returns the og:description content, falling back to the
// content of <meta name="description">. It does not look at page content.
func Description(doc *goquery.Document) string {
	if description := readOpenGraphProperty(doc, "og:description"); description != "" {
		return description
	}
	return strings.TrimSpace(attr(doc.Find("meta[name='description']").First(), "content"))
}

// Keywords splits <meta name="keywords"> on commas. Pieces are trimmed and
// empty pieces dropped; order and duplicates are preserved.
func Keywords(doc *goquery.Document) []string {
	keywords := []string{}

	value := attr(doc.Find("meta[name='keywords']").First(), "content")
	if value == "" {
		return keywords
	}

	for _, piece := range strings.Split(value, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		keywords = append(keywords, piece)
	}
	return keywords
}

// Images returns the og:image as a single element when the page declares
// one. Otherwise it returns every non-blank <img src> in document order, or
// defaultImage alone when the page has no images and defaultImage is set.
func Images(doc *goquery.Document, defaultImage string) []string {
	if image := readOpenGraphProperty(doc, "og:image"); image != "" {
		return []string{image}
	}

	images := []string{}
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if src := attr(sel, "src"); src != "" {
			images = append(images, src)
		}
	})

	if len(images) == 0 && strings.TrimSpace(defaultImage) != "" {
		return []string{defaultImage}
	}
	return images
}

// MetaTags returns every <meta> that has a property or name attribute, keyed
// by property when present and by name otherwise.
func MetaTags(doc *goquery.Document) []unfurl.MetaTag {
	tags := []unfurl.MetaTag{}
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		property := attr(sel, "property")
		name := attr(sel, "name")
		if property == "" && name == "" {
			return
		}

		key := property
		if key == "" {
			key = name
		}
		content, _ := sel.Attr("content")
		tags = append(tags, unfurl.MetaTag{Key: key, Value: content})
	})
	return tags
}

// Links returns every anchor with a non-blank href, in document order.
func Links(doc *goquery.Document) []unfurl.Link {
	links := []unfurl.Link{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(attr(sel, "href"))
		if href == "" {
			return
		}
		links = append(links, unfurl.Link{
			Text: strings.TrimSpace(decoded(sel.Text())),
			Href: href,
		})
	})
	return links
}

// readOpenGraphProperty returns the trimmed content of the first
// <meta property="name">.
func readOpenGraphProperty(doc *goquery.Document, name string) string {
	sel := doc.Find("meta[property='" + name + "']").First()
	return strings.TrimSpace(attr(sel, "content"))
}

// attr returns the named attribute of the first element in sel, or "" when
// it is missing or blank.
func attr(sel *goquery.Selection, name string) string {
	value, _ := sel.Attr(name)
	return decoded(value)
}

func decoded(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
