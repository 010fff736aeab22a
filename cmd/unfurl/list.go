package main

import (
	"fmt"

	"github.com/fwojciec/unfurl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := unfurl.RecordFilter{Limit: c.Limit}
	if c.Language != "" {
		filter.Language = &c.Language
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", unfurl.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'unfurl fetch --save' to store one.")
		return nil
	}

	for _, r := range records {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.FetchedAt.Format("2006-01-02"), lang, r.URL, r.Title)
	}

	return nil
}
