package mock

import "github.com/fwojciec/unfurl"

var _ unfurl.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of unfurl.Cleaner.
type Cleaner struct {
	CleanupFn func(html string) string
}

func (c *Cleaner) Cleanup(html string) string {
	return c.CleanupFn(html)
}
