package unfurl

import "context"

// Extractor builds Metadata for a URL.
type Extractor interface {
	// Extract fetches the page at url and returns its metadata.
	// Only a failure to load the page is returned as an error; fields that
	// cannot be extracted are left empty.
	// The context controls cancellation of the fetch.
	Extract(ctx context.Context, url string) (*Metadata, error)
}

// ContentLoader retrieves raw HTML for a URL.
// Implementations must be safe for concurrent use.
type ContentLoader interface {
	// Load returns the page body as text.
	// Non-success responses, transport errors and timeouts are errors.
	Load(ctx context.Context, url string) (html string, err error)
}

// LanguageDetector determines the language of an HTML page.
type LanguageDetector interface {
	// Detect returns a lowercase language code, or an empty string when the
	// language cannot be determined. It never fails.
	Detect(html string) string
}

// Cleaner reduces a full HTML page to a short inline-formatted excerpt.
type Cleaner interface {
	// Cleanup returns the simplified markup. Blank input yields "".
	Cleanup(html string) string
}
