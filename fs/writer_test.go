package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/fs"
	"github.com/fwojciec/unfurl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/blog/2024/post",
			want: "example.com/blog/2024/post.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/blog/",
			want: "example.com/blog/index.md",
		},
		{
			name: "root becomes index",
			url:  "https://example.com",
			want: "example.com/index.md",
		},
		{
			name: "drops html extension",
			url:  "https://example.com/news/story.html",
			want: "example.com/news/story.md",
		},
		{
			name: "ignores query and fragment",
			url:  "https://example.com/item?id=3#reviews",
			want: "example.com/item.md",
		},
		{
			name: "replaces port separator",
			url:  "http://localhost:8080/page",
			want: "localhost_8080/page.md",
		},
		{
			name:    "rejects path traversal",
			url:     "https://example.com/../../etc/passwd",
			wantErr: true,
		},
		{
			name:    "rejects relative URL",
			url:     "/just/a/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	t.Parallel()

	t.Run("writes front matter and body", func(t *testing.T) {
		t.Parallel()

		m := unfurl.NewMetadata("https://example.com/post")
		m.Title = "Hello: World"
		m.Description = "A post"
		m.Language = "en"
		m.Images = []string{"https://example.com/a.png"}
		m.MetaTags = []unfurl.MetaTag{
			{Key: "og:type", Value: "article"},
			{Key: "OG:Site_Name", Value: "Example"},
			{Key: "og:type", Value: "website"},
			{Key: "author", Value: "Ann"},
		}

		got, err := fs.FormatMetadata(m, "Body text")
		require.NoError(t, err)

		want := `---
title: 'Hello: World'
description: A post
url: https://example.com/post
language: en
images:
    - https://example.com/a.png
og:
    site_name: Example
    type: article
---

Body text
`
		assert.Equal(t, want, got)
	})

	t.Run("omits empty fields and body", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatMetadata(unfurl.NewMetadata("https://example.com"), "")
		require.NoError(t, err)

		assert.Equal(t, "---\ntitle: \"\"\nurl: https://example.com\n---\n", got)
	})
}

func TestWriter_WriteMetadata(t *testing.T) {
	t.Parallel()

	t.Run("writes converted excerpt under host directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "converted " + html, nil
			},
		}
		w := fs.NewWriter(baseDir, conv)

		m := unfurl.NewMetadata("https://example.com/blog/post")
		m.Title = "Post"
		m.Content = "excerpt"

		err := w.WriteMetadata(context.Background(), m)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(baseDir, "example.com", "blog", "post.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "title: Post")
		assert.Contains(t, string(content), "\n\nconverted excerpt\n")
	})

	t.Run("front matter parses back as YAML", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir, nil)

		m := unfurl.NewMetadata("https://example.com/")
		m.Title = "Quotes \"and\" colons: yes"
		m.Keywords = []string{"a", "b"}

		require.NoError(t, w.WriteMetadata(context.Background(), m))

		content, err := os.ReadFile(filepath.Join(baseDir, "example.com", "index.md"))
		require.NoError(t, err)

		var parsed struct {
			Title    string   `yaml:"title"`
			Keywords []string `yaml:"keywords"`
		}
		doc := string(content)
		require.NoError(t, yaml.Unmarshal([]byte(doc[len("---\n"):len(doc)-len("---\n")]), &parsed))
		assert.Equal(t, m.Title, parsed.Title)
		assert.Equal(t, []string{"a", "b"}, parsed.Keywords)
	})

	t.Run("skips conversion without excerpt", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				t.Fatal("converter should not be called")
				return "", nil
			},
		}
		w := fs.NewWriter(t.TempDir(), conv)

		err := w.WriteMetadata(context.Background(), unfurl.NewMetadata("https://example.com/a"))
		require.NoError(t, err)
	})

	t.Run("returns converter error", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "", errors.New("bad markup")
			},
		}
		w := fs.NewWriter(t.TempDir(), conv)

		m := unfurl.NewMetadata("https://example.com/a")
		m.Content = "<em>x</em>"

		err := w.WriteMetadata(context.Background(), m)
		assert.EqualError(t, err, "bad markup")
	})

	t.Run("validates metadata", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), nil)

		err := w.WriteMetadata(context.Background(), &unfurl.Metadata{Title: "No URL"})

		require.Error(t, err)
		assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
	})
}
