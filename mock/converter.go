package mock

import "github.com/fwojciec/unfurl"

var _ unfurl.Converter = (*Converter)(nil)

// Converter is a mock implementation of unfurl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
