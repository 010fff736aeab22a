package main

import (
	"fmt"

	"github.com/fwojciec/unfurl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByURL(deps.Ctx, c.URL)
	if unfurl.ErrorCode(err) == unfurl.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: no record for %q. Use 'unfurl list' to see saved records.\n", c.URL)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", unfurl.ErrorMessage(err))
		return err
	}

	return printMetadata(deps.Stdout, c.Format, &rec.Metadata, deps.Converter)
}
