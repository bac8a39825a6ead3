package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/crawl"
	"github.com/alexotsu/docs-page-crawler/fs"
	pchttp "github.com/alexotsu/docs-page-crawler/http"
	"github.com/alexotsu/docs-page-crawler/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler
	Output  *fs.FileSink

	// Optional record store, set when --db is given.
	DB     *sqlite.DB
	Crawls pagecrawler.CrawlService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `help:"YAML file of flag defaults, keyed by flag name"`

	URL           string        `arg:"" required:"" help:"The base URL to start crawling from"`
	Output        string        `short:"o" default:"crawled_text.txt" env:"PAGECRAWLER_OUTPUT" help:"Output file path"`
	Delay         float64       `short:"d" default:"1.0" env:"PAGECRAWLER_DELAY" help:"Delay between requests in seconds"`
	Timeout       time.Duration `default:"10s" env:"PAGECRAWLER_TIMEOUT" help:"Timeout for each page fetch"`
	Concurrency   int           `short:"c" default:"1" env:"PAGECRAWLER_CONCURRENCY" help:"Pages fetched at once"`
	MaxPages      int           `default:"0" env:"PAGECRAWLER_MAX_PAGES" help:"Stop after this many pages (0 for no limit)"`
	Order         string        `default:"dfs" enum:"dfs,bfs" help:"Traversal order (dfs or bfs)"`
	Extractor     string        `default:"heuristic" enum:"heuristic,trafilatura,readability" help:"Content extractor"`
	CollapseLines bool          `help:"Collapse each page to one line before filtering"`
	DB            string        `env:"PAGECRAWLER_DB" help:"Also store records in this SQLite database"`
	UserAgent     string        `default:"${user_agent}" env:"PAGECRAWLER_USER_AGENT" help:"User-Agent header sent with each request"`
	Verbose       bool          `short:"v" help:"Log every fetch and write"`
}

// Validate rejects flag values the crawler cannot run with.
func (c *CLI) Validate() error {
	switch {
	case c.Delay < 0:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "delay must not be negative")
	case c.Timeout <= 0:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "timeout must be positive")
	case c.Concurrency < 1:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "concurrency must be at least 1")
	case c.MaxPages < 0:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "max pages must not be negative")
	}
	return nil
}

// vars are the interpolation variables for CLI tags.
func vars() kong.Vars {
	return kong.Vars{"user_agent": pchttp.DefaultUserAgent}
}

// CrawlCmd crawls one site into the output file.
type CrawlCmd struct {
	URL string
}
