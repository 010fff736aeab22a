package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/batch"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if c.Stdin {
		return c.runStdin(deps)
	}

	b := &batch.Extractor{
		Extractor:   deps.Extractor,
		Writers:     deps.Writers,
		Concurrency: c.Concurrency,
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  duplicate %s\n", batch.TruncateURL(event.URL, 60))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, errorText(event.Error))
		}
	}

	result, err := b.ExtractAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	for _, item := range result.Items {
		if item.Err != nil {
			continue
		}
		if err := printMetadata(deps.Stdout, c.Format, item.Metadata, deps.Converter); err != nil {
			return err
		}
	}

	if len(result.Items) > 1 {
		fmt.Fprintf(deps.Stderr, "Extracted %d of %d pages (%s)\n",
			result.Extracted, len(result.Items), batch.FormatBytes(result.Bytes))
	}
	if result.Failed > 0 {
		return unfurl.Errorf(unfurl.EFETCH, "%d of %d URLs failed", result.Failed, len(result.Items))
	}
	return nil
}

// runStdin extracts metadata from HTML piped in for a single URL.
func (c *FetchCmd) runStdin(deps *Dependencies) error {
	if len(c.URLs) != 1 {
		fmt.Fprintln(deps.Stderr, "error: --stdin takes exactly one URL")
		return unfurl.Errorf(unfurl.EINVALID, "--stdin takes exactly one URL")
	}
	url := c.URLs[0]
	if err := unfurl.ValidateURL(url); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", unfurl.ErrorMessage(err))
		return err
	}

	page, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	m := deps.Pages.ExtractHTML(url, string(page))
	for _, w := range deps.Writers {
		if err := w.WriteMetadata(deps.Ctx, m); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
	}
	return printMetadata(deps.Stdout, c.Format, m, deps.Converter)
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	if unfurl.ErrorCode(err) == unfurl.EINTERNAL {
		return err.Error()
	}
	return unfurl.ErrorMessage(err)
}
