package main

import (
	"fmt"

	"github.com/fwojciec/unfurl"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return unfurl.Errorf(unfurl.EINVALID, "use --force to confirm deletion")
	}

	rec, err := deps.Records.FindRecordByURL(deps.Ctx, c.URL)
	if unfurl.ErrorCode(err) == unfurl.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: no record for %q. Use 'unfurl list' to see saved records.\n", c.URL)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", unfurl.ErrorMessage(err))
		return err
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, rec.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", unfurl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record for %s\n", rec.URL)
	return nil
}
