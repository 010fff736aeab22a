package unfurl

import (
	"net/url"
	"strings"
)

// Metadata is the link-preview data extracted from a single page.
// Collection fields are never nil; absent data is an empty slice.
type Metadata struct {
	URL         string    `json:"url"`
	Raw         string    `json:"raw,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Language    string    `json:"language"`
	Images      []string  `json:"images"`
	Keywords    []string  `json:"keywords"`
	MetaTags    []MetaTag `json:"metaTags"`
	Links       []Link    `json:"links"`
}

// MetaTag is a single <meta> element reduced to a key and its content.
// The key is the property attribute when present, otherwise the name.
type MetaTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Link is an anchor found on the page.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Source identifies where metadata came from.
type Source struct {
	URL string `json:"url"`
	Raw string `json:"raw"`
}

// NewMetadata returns Metadata for rawURL with all collections initialized.
func NewMetadata(rawURL string) *Metadata {
	return &Metadata{
		URL:      rawURL,
		Images:   []string{},
		Keywords: []string{},
		MetaTags: []MetaTag{},
		Links:    []Link{},
	}
}

// Validate returns an error if the metadata contains invalid fields.
func (m *Metadata) Validate() error {
	if m.URL == "" {
		return Errorf(EINVALID, "metadata URL required")
	}
	return ValidateURL(m.URL)
}

// OpenGraph returns the meta tags whose key carries the "og:" prefix
// (case-insensitive), in document order.
func (m *Metadata) OpenGraph() []MetaTag {
	tags := []MetaTag{}
	for _, tag := range m.MetaTags {
		if len(tag.Key) >= 3 && strings.EqualFold(tag.Key[:3], "og:") {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Source returns the page URL together with the raw HTML it was built from.
func (m *Metadata) Source() Source {
	return Source{URL: m.URL, Raw: m.Raw}
}

// String returns the title, description and URL on separate lines.
func (m *Metadata) String() string {
	return m.Title + "\n" + m.Description + "\n" + m.URL
}

// ValidateURL returns EINVALID unless rawURL is an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return nil
}
