// Command depthcrawl crawls a site breadth-first from a seed URL,
// persisting each fetched page under a directory (or SQLite table)
// partitioned by crawl depth.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/awalczak/depthcrawl"
	"github.com/awalczak/depthcrawl/crawl"
	"github.com/awalczak/depthcrawl/fs"
	dcgoquery "github.com/awalczak/depthcrawl/goquery"
	dchttp "github.com/awalczak/depthcrawl/http"
	dcslog "github.com/awalczak/depthcrawl/slog"
	"github.com/awalczak/depthcrawl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string `arg:"" help:"Seed URL to crawl."`
	MaxURLs int    `arg:"" name:"max-urls" help:"Maximum links followed per page."`
	Depth   int    `arg:"" help:"Maximum recursion depth; depth 0 fetches only the seed."`

	// Kong's bool mapper is flag-shaped and never consumes a value
	// token, so the positional is declared as an enum string and
	// converted in CrawlOptions.
	Uniqueness string `arg:"" enum:"true,false" help:"Filter links already stored at the previous depth (true/false)."`

	Dir         string        `default:"." help:"Base directory for depth-level output."`
	Store       string        `default:"fs" enum:"fs,sqlite" help:"Persistence backend."`
	DB          string        `default:"crawl.db" help:"SQLite database path (used with --store=sqlite)."`
	Extractor   string        `default:"pattern" enum:"pattern,dom" help:"Link extraction strategy."`
	Concurrency int           `short:"c" default:"8" help:"Concurrent fetch limit within a level."`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page."`
	UserAgent   string        `help:"Override the client identity header."`
	Once        bool          `help:"Skip URLs already fetched earlier in the run."`
	Verbose     bool          `short:"v" help:"Enable debug logging to stderr."`
}

// CrawlOptions converts the parsed arguments to engine options.
func (c *CLI) CrawlOptions() (crawl.Options, error) {
	unique, err := strconv.ParseBool(c.Uniqueness)
	if err != nil {
		return crawl.Options{}, fmt.Errorf("uniqueness must be true or false, got %q", c.Uniqueness)
	}
	return crawl.Options{
		MaxURLs:  c.MaxURLs,
		MaxDepth: c.Depth,
		Unique:   unique,
	}, nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("depthcrawl"),
		kong.Description("Crawl a site breadth-first, storing pages by depth level"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.MaxURLs < 0 {
		return fmt.Errorf("max-urls must be non-negative, got %d", cli.MaxURLs)
	}
	if cli.Depth < 0 {
		return fmt.Errorf("depth must be non-negative, got %d", cli.Depth)
	}

	// A seed that does not normalize to a URL with a host is reported
	// as a human message, not a process failure.
	if _, err := crawl.Normalize(cli.URL); err != nil {
		fmt.Fprintln(stdout, "Please enter a valid URL.")
		return nil
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	// Wire the persistence backend.
	var store depthcrawl.DepthStore
	switch cli.Store {
	case "sqlite":
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		store = sqlite.NewStore(db)
	default:
		store = fs.NewLevelStore(cli.Dir)
	}

	// Wire the fetcher.
	fetcherOpts := []dchttp.Option{dchttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, dchttp.WithUserAgent(cli.UserAgent))
	}
	var fetcher depthcrawl.Fetcher = dchttp.NewFetcher(fetcherOpts...)
	defer fetcher.Close()

	if cli.Verbose {
		fetcher = dcslog.NewLoggingFetcher(fetcher, logger)
		store = dcslog.NewLoggingStore(store, logger)
	}

	// Wire the extractor.
	var extractor depthcrawl.LinkExtractor
	switch cli.Extractor {
	case "dom":
		extractor = dcgoquery.NewExtractor()
	default:
		extractor = crawl.NewPatternExtractor()
	}

	engine := &crawl.Engine{
		Fetcher:     fetcher,
		Store:       store,
		Extractor:   extractor,
		Concurrency: cli.Concurrency,
		Once:        cli.Once,
	}

	progress := func(ev crawl.ProgressEvent) {
		switch ev.Type {
		case crawl.ProgressLevelStarted:
			fmt.Fprintf(stdout, "level %d: %d page(s)\n", ev.Depth, ev.Total)
		case crawl.ProgressSaved:
			fmt.Fprintf(stdout, "  saved %s -> %s\n", crawl.TruncateURL(ev.URL, 60), ev.Name)
		case crawl.ProgressFailed:
			fmt.Fprintf(stderr, "  skip %s: %v\n", crawl.TruncateURL(ev.URL, 60), ev.Error)
		}
	}

	opts, err := cli.CrawlOptions()
	if err != nil {
		return err
	}

	res, err := engine.Crawl(ctx, cli.URL, opts, progress)
	if err != nil {
		return err
	}

	if len(res.Failures) > 0 {
		fmt.Fprintf(stderr, "%d branch(es) failed:\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(stderr, "  %s (depth %d): %s\n", f.URL, f.Depth, depthcrawl.ErrorMessage(f.Err))
		}
	}

	fmt.Fprintf(stdout, "Saved %d page(s) (%s) across %d level(s), %d failed\n",
		res.Saved, crawl.FormatBytes(res.Bytes), res.Levels, res.Failed)
	fmt.Fprintln(stdout, "Crawling completed successfully.")

	return nil
}
