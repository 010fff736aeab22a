package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/htmltomarkdown"
	unfurlhtml "github.com/fwojciec/unfurl/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("keeps emphasis from cleaned excerpts", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`Some <strong>bold</strong> and <em>slanted</em> words`)

		require.NoError(t, err)
		assert.Equal(t, "Some **bold** and *slanted* words", md)
	})

	t.Run("renders images", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<img src="https://example.com/cover.png" alt="Cover"/>`)

		require.NoError(t, err)
		assert.Contains(t, md, "![Cover](https://example.com/cover.png)")
	})

	t.Run("turns break markers into line breaks", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("first<br />\nsecond")

		require.NoError(t, err)
		assert.Contains(t, md, "first")
		assert.Contains(t, md, "second")
		assert.NotContains(t, md, "<br")
	})

	t.Run("converts output of the html cleaner", func(t *testing.T) {
		t.Parallel()

		excerpt := unfurlhtml.NewCleaner().Cleanup(`<html><body>
<h1>Release notes</h1>
<p>Version <strong>2.0</strong> is out.</p>
<script>track()</script>
</body></html>`)

		md, err := htmltomarkdown.NewConverter().Convert(excerpt)

		require.NoError(t, err)
		assert.Contains(t, md, "Release notes")
		assert.Contains(t, md, "**2.0**")
		assert.NotContains(t, md, "track()")
		assert.NotContains(t, md, "# Release")
	})

	t.Run("keeps block structure from main-content excerpts", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h2>Specs</h2>
<p>See <a href="https://example.com/specs">details</a>.</p>
<table>
<thead><tr><th>Size</th><th>Weight</th></tr></thead>
<tbody><tr><td>M</td><td>2kg</td></tr></tbody>
</table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Specs")
		assert.Contains(t, md, "[details](https://example.com/specs)")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "2kg")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert(" \n ")

		require.Error(t, err)
		assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
	})
}
