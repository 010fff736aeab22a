package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/sqlite"
)

// PageExtractor extracts metadata from HTML that is already in hand.
type PageExtractor interface {
	ExtractHTML(url, page string) *unfurl.Metadata
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	DB        *sqlite.DB
	Records   unfurl.RecordService
	Extractor unfurl.Extractor
	Pages     PageExtractor
	Converter unfurl.Converter
	Writers   []unfurl.MetadataWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch  FetchCmd  `cmd:"" help:"Extract metadata from one or more URLs"`
	List   ListCmd   `cmd:"" help:"List saved metadata records"`
	Show   ShowCmd   `cmd:"" help:"Show the saved record for a URL"`
	Delete DeleteCmd `cmd:"" help:"Delete the saved record for a URL"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs               []string      `arg:"" name:"url" help:"Page URLs"`
	Format             string        `short:"f" enum:"json,text,markdown" default:"json" help:"Output format (json, text, markdown)"`
	DefaultImage       string        `help:"Image reported for pages without images"`
	MaxDescription     int           `default:"300" help:"Length of descriptions taken from page content"`
	Content            bool          `help:"Include the cleaned page excerpt"`
	NoRaw              bool          `help:"Omit the raw HTML"`
	MainContent        string        `enum:"none,readability,trafilatura" default:"none" help:"Reduce pages to their main content before cleaning (none, readability, trafilatura)"`
	DetectTextLanguage bool          `help:"Guess the language from page text when the page does not declare one"`
	Concurrency        int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Timeout            time.Duration `default:"5s" help:"Per-request timeout"`
	Save               bool          `short:"s" help:"Save results to the database"`
	Out                string        `short:"o" help:"Write Markdown files to this directory"`
	Stdin              bool          `help:"Read the HTML for a single URL from stdin"`
	Verbose            bool          `short:"v" help:"Log pipeline activity to stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Language string `short:"l" help:"Only records in this language"`
	Limit    int    `short:"n" help:"Maximum number of records"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Format string `short:"f" enum:"json,text,markdown" default:"text" help:"Output format (json, text, markdown)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Force bool   `help:"Confirm deletion"`
}
