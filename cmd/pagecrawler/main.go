package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/crawl"
	"github.com/alexotsu/docs-page-crawler/fs"
	"github.com/alexotsu/docs-page-crawler/goquery"
	pchttp "github.com/alexotsu/docs-page-crawler/http"
	"github.com/alexotsu/docs-page-crawler/readability"
	pcslog "github.com/alexotsu/docs-page-crawler/slog"
	"github.com/alexotsu/docs-page-crawler/sqlite"
	"github.com/alexotsu/docs-page-crawler/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagecrawler"),
		kong.Description("Crawl every page of one site and save its readable text to a file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLLoader),
		vars(),
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

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	filter, err := newContentFilter(cli.Extractor, cli.CollapseLines)
	if err != nil {
		return err
	}

	order, err := crawl.ParseOrder(cli.Order)
	if err != nil {
		return err
	}

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Output: fs.NewFileSink(cli.Output),
	}

	fetcher := pchttp.NewFetcher(
		pchttp.WithTimeout(cli.Timeout),
		pchttp.WithUserAgent(cli.UserAgent),
	)
	defer fetcher.Close()

	deps.Crawler = &crawl.Crawler{
		Fetcher:      pcslog.NewLoggingFetcher(fetcher, logger),
		Parser:       goquery.NewParser(),
		Filter:       filter,
		Links:        goquery.NewLinkExtractor(),
		Limiter:      crawl.NewDomainLimiter(secondsToDuration(cli.Delay)),
		Logger:       logger,
		Order:        order,
		Concurrency:  cli.Concurrency,
		MaxPages:     cli.MaxPages,
		FetchTimeout: cli.Timeout,
		// Sink is set by CrawlCmd.Run once the outputs are open
	}

	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer db.Close()
		deps.DB = db
		deps.Crawls = sqlite.NewCrawlService(db)
	}

	cmd := &CrawlCmd{URL: cli.URL}
	return cmd.Run(deps)
}

// newContentFilter returns the content filter registered under name.
func newContentFilter(name string, collapse bool) (pagecrawler.ContentFilter, error) {
	switch name {
	case "", "heuristic":
		mode := goquery.ModeLines
		if collapse {
			mode = goquery.ModeCollapsed
		}
		return goquery.NewFilter(goquery.WithMode(mode)), nil
	case "trafilatura":
		return trafilatura.NewFilter(), nil
	case "readability":
		return readability.NewFilter(), nil
	default:
		return nil, pagecrawler.Errorf(pagecrawler.EINVALID, "unknown extractor %q", name)
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
