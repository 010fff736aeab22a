// Package bloom remembers which page URLs have already been scheduled for
// extraction.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a probabilistic set of URLs. Keys are compared after trimming
// surrounding whitespace and a trailing fragment.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given false
// positive rate. n is raised to 1 so an empty batch still gets a filter.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Seen reports whether url may have been seen before and records it.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(key(url))
}

// Test reports whether url may have been seen before without recording it.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(key(url))
}

// EstimatedCount returns the approximate number of distinct URLs seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return url
}
