package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/fs"
	"github.com/fwojciec/unfurl/goquery"
	unfurlhtml "github.com/fwojciec/unfurl/html"
	"github.com/fwojciec/unfurl/htmltomarkdown"
	unfurlhttp "github.com/fwojciec/unfurl/http"
	"github.com/fwojciec/unfurl/readability"
	unfurlslog "github.com/fwojciec/unfurl/slog"
	"github.com/fwojciec/unfurl/sqlite"
	"github.com/fwojciec/unfurl/trafilatura"
	"github.com/fwojciec/unfurl/whatlanggo"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService *sqlite.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Converter: htmltomarkdown.NewConverter(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unfurl"),
		kong.Description("Extract link-preview metadata from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unfurl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Only storage commands and fetch --save touch the database.
	if cmd != "fetch" || cli.Fetch.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set UNFURL_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RecordService = sqlite.NewRecordService(m.DB)
		deps.DB = m.DB
		deps.Records = m.RecordService
	}

	if cmd == "fetch" {
		extractor, pages := newExtractor(&cli.Fetch, stderr)
		deps.Extractor = extractor
		deps.Pages = pages

		if cli.Fetch.Save {
			deps.Writers = append(deps.Writers, m.RecordService)
		}
		if cli.Fetch.Out != "" {
			deps.Writers = append(deps.Writers, fs.NewWriter(cli.Fetch.Out, deps.Converter))
		}
	}

	return kongCtx.Run(deps)
}

// newExtractor builds the extraction pipeline for the fetch flags. With
// --verbose every stage is wrapped in a logging decorator.
func newExtractor(c *FetchCmd, stderr io.Writer) (unfurl.Extractor, *goquery.Extractor) {
	var logger *slog.Logger
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var loader unfurl.ContentLoader = unfurlhttp.NewLoader(unfurlhttp.WithTimeout(c.Timeout))

	var detector unfurl.LanguageDetector = goquery.NewLanguageDetector()
	if c.DetectTextLanguage {
		detector = whatlanggo.NewLanguageDetector(detector)
	}

	var cleaner unfurl.Cleaner = unfurlhtml.NewCleaner()
	switch c.MainContent {
	case "readability":
		cleaner = readability.NewCleaner(cleaner)
	case "trafilatura":
		cleaner = trafilatura.NewCleaner(cleaner)
	}

	opts := []goquery.Option{
		goquery.WithDefaultImage(c.DefaultImage),
		goquery.WithMaxDescriptionLength(c.MaxDescription),
		goquery.WithCleaner(cleaner),
		goquery.WithContent(c.Content || c.Out != ""),
		goquery.WithRawContent(!c.NoRaw),
	}
	if logger != nil {
		loader = unfurlslog.NewLoggingLoader(loader, logger)
		detector = unfurlslog.NewLoggingLanguageDetector(detector, logger)
		opts = append(opts, goquery.WithLogger(logger))
	}
	opts = append(opts, goquery.WithLanguageDetector(detector))

	pages := goquery.NewExtractor(loader, opts...)
	if logger != nil {
		return unfurlslog.NewLoggingExtractor(pages, logger), pages
	}
	return pages, pages
}

func defaultDBPath() string {
	if path := os.Getenv("UNFURL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "unfurl.db"
	}
	dir := filepath.Join(home, ".unfurl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "unfurl.db")
}
