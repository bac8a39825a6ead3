package main

import (
	"context"
	"errors"
	"fmt"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/crawl"
	pcslog "github.com/alexotsu/docs-page-crawler/slog"
	"github.com/alexotsu/docs-page-crawler/sqlite"
)

// Run executes the crawl command.
//
// The output file is replaced only when the crawl ends normally or is
// interrupted; a fatal error leaves any previous output in place.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if err := deps.Output.Open(); err != nil {
		return fmt.Errorf("crawling failed: %w", err)
	}

	sinks := []pagecrawler.Sink{deps.Output}

	var run *pagecrawler.Crawl
	var store *sqlite.RecordStore
	if deps.Crawls != nil {
		run = &pagecrawler.Crawl{SeedURL: c.URL}
		if err := deps.Crawls.CreateCrawl(deps.Ctx, run); err != nil {
			_ = deps.Output.Abort()
			return fmt.Errorf("crawling failed: %w", err)
		}
		store = sqlite.NewRecordStore(deps.DB, run.ID)
		sinks = append(sinks, store)
	}

	deps.Crawler.Sink = pcslog.NewLoggingSink(pagecrawler.MultiSink(sinks...), deps.Logger)

	progress := func(e crawl.ProgressEvent) {
		if e.Type == crawl.ProgressDispatched {
			fmt.Fprintf(deps.Stdout, "Crawling: %s\n", e.URL)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, c.URL, progress)
	interrupted := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if err != nil && !interrupted {
		_ = deps.Output.Abort()
		return fmt.Errorf("crawling failed: %w", err)
	}

	if err := deps.Output.Commit(); err != nil {
		return fmt.Errorf("crawling failed: %w", err)
	}

	if run != nil {
		if err := c.report(context.WithoutCancel(deps.Ctx), deps, run.ID, store, result); err != nil {
			return err
		}
	}

	if interrupted {
		fmt.Fprintf(deps.Stdout, "Crawling stopped. Visited %d pages.\n", result.Visited())
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Crawling completed. Visited %d pages.\n", result.Visited())
	return nil
}

// report finishes the stored crawl and prints what the database now holds
// for it.
func (c *CrawlCmd) report(ctx context.Context, deps *Dependencies, id string, store *sqlite.RecordStore, result *crawl.Result) error {
	if err := deps.Crawls.FinishCrawl(ctx, id, result.Completed, result.Failed); err != nil {
		return fmt.Errorf("failed to record crawl: %w", err)
	}

	saved, err := deps.Crawls.FindCrawlByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to read crawl: %w", err)
	}
	records, err := store.FindRecords(ctx, pagecrawler.RecordFilter{CrawlID: &id})
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Stored crawl %s: %d records from %d pages (%d failed).\n",
		saved.ID, len(records), saved.Completed+saved.Failed, saved.Failed)
	return nil
}
