// Package fs writes extracted metadata to Markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/unfurl"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/blog/post.html → example.com/blog/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", unfurl.Errorf(unfurl.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", unfurl.Errorf(unfurl.EINVALID, "URL %q has no host", rawURL)
	}

	for _, segment := range strings.Split(u.Path, "/") {
		if segment == ".." {
			return "", unfurl.Errorf(unfurl.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	p := strings.TrimPrefix(u.Path, "/")

	// Root or trailing slash → index.md
	if p == "" || strings.HasSuffix(p, "/") {
		return host + "/" + p + "index.md", nil
	}

	switch ext := path.Ext(p); ext {
	case ".html", ".htm":
		p = strings.TrimSuffix(p, ext)
	}
	return host + "/" + p + ".md", nil
}

type frontMatter struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description,omitempty"`
	URL         string            `yaml:"url"`
	Language    string            `yaml:"language,omitempty"`
	Images      []string          `yaml:"images,omitempty"`
	Keywords    []string          `yaml:"keywords,omitempty"`
	OpenGraph   map[string]string `yaml:"og,omitempty"`
}

// FormatMetadata formats m as YAML front matter followed by body.
// Only the first value of a repeated og: key is kept.
func FormatMetadata(m *unfurl.Metadata, body string) (string, error) {
	fm := frontMatter{
		Title:       m.Title,
		Description: m.Description,
		URL:         m.URL,
		Language:    m.Language,
		Images:      m.Images,
		Keywords:    m.Keywords,
	}
	for _, tag := range m.OpenGraph() {
		if fm.OpenGraph == nil {
			fm.OpenGraph = make(map[string]string)
		}
		key := strings.ToLower(tag.Key[len("og:"):])
		if _, ok := fm.OpenGraph[key]; !ok {
			fm.OpenGraph[key] = tag.Value
		}
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", unfurl.Errorf(unfurl.EINTERNAL, "encode front matter: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Ensure Writer implements unfurl.MetadataWriter at compile time.
var _ unfurl.MetadataWriter = (*Writer)(nil)

// Writer writes metadata as Markdown files to a directory.
type Writer struct {
	baseDir   string
	converter unfurl.Converter
}

// NewWriter creates a new Writer that writes to baseDir. The page excerpt,
// when present, is converted to the file body with converter; a nil
// converter writes front matter only.
func NewWriter(baseDir string, converter unfurl.Converter) *Writer {
	return &Writer{baseDir: baseDir, converter: converter}
}

// WriteMetadata writes m to disk as a Markdown file.
func (w *Writer) WriteMetadata(ctx context.Context, m *unfurl.Metadata) error {
	if err := m.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(m.URL)
	if err != nil {
		return err
	}

	body, err := w.body(m)
	if err != nil {
		return err
	}

	content, err := FormatMetadata(m, body)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (w *Writer) body(m *unfurl.Metadata) (string, error) {
	if w.converter == nil || strings.TrimSpace(m.Content) == "" {
		return "", nil
	}
	return w.converter.Convert(m.Content)
}
