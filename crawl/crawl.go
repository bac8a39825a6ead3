// Package crawl provides the traversal engine of the page crawler.
// It coordinates politeness, fetching, parsing, content filtering,
// link harvesting and record output for one seed host.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/sync/errgroup"
)

// Visited set configuration.
const (
	// visitedExpectedURLs is the expected number of URLs for Bloom filter sizing.
	visitedExpectedURLs = 10000
	// visitedFalsePositiveRate is the Bloom filter false positive rate.
	visitedFalsePositiveRate = 0.01
)

// DefaultFetchTimeout bounds a single fetch when Crawler.FetchTimeout is unset.
const DefaultFetchTimeout = 10 * time.Second

// Failure kinds reported in logs.
const (
	kindTransport = "transport"
	kindParse     = "parse"
	kindSink      = "sink"
)

// Crawler walks every page reachable from a seed URL on the seed's host.
// Each page is fetched at most once per run.
type Crawler struct {
	Fetcher pagecrawler.Fetcher
	Parser  pagecrawler.Parser
	Filter  pagecrawler.ContentFilter
	Links   pagecrawler.LinkExtractor
	Sink    pagecrawler.Sink

	// Limiter spaces fetches to the seed host. Nil means no waiting.
	Limiter pagecrawler.DomainLimiter

	// Logger receives page failures. Nil discards them.
	Logger *slog.Logger

	// Order selects depth-first (default) or breadth-first traversal.
	Order Order

	// Concurrency is the number of pages fetched at once. Values below 1
	// mean 1, which crawls strictly one page at a time.
	Concurrency int

	// MaxPages caps the number of dispatched pages. Zero means no cap.
	MaxPages int

	// FetchTimeout bounds each fetch. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Completed int // pages fetched and processed
	Failed    int // pages whose fetch or parse failed
	Records   int // records appended to the sink
	Bytes     int // text bytes appended to the sink
}

// Visited returns the number of pages that reached a terminal state.
func (r *Result) Visited() int {
	return r.Completed + r.Failed
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	Visited int
	URL     string
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressDispatched is sent when a page is handed to a worker.
	ProgressDispatched ProgressType = iota
	// ProgressCompleted is sent when a page was fetched and processed.
	ProgressCompleted
	// ProgressFailed is sent when a page's fetch or parse failed.
	ProgressFailed
	// ProgressFinished is sent once, after the last page.
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// It is only ever called from the coordinating goroutine.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url   string
	text  string
	links []string
	kind  string
	err   error
}

// run holds the state owned by the coordinator for one call to Run.
type run struct {
	host     string
	work     *WorkList
	visited  *VisitedSet
	result   Result
	progress ProgressFunc
}

// Run crawls from seed until no undiscovered same-host pages remain,
// MaxPages pages have been dispatched, the sink fails, or ctx is canceled.
//
// A failing page never stops the crawl. A failing sink does: the in-flight
// pages are abandoned and the error is returned with code ESINK. When ctx
// is canceled, dispatching stops, in-flight pages drain, and the partial
// result is returned together with ctx.Err().
func (c *Crawler) Run(ctx context.Context, seed string, progress ProgressFunc) (*Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	seedURL, err := url.Parse(seed)
	if err != nil || seedURL.Host == "" || (seedURL.Scheme != "http" && seedURL.Scheme != "https") {
		return nil, pagecrawler.Errorf(pagecrawler.EINVALID, "invalid seed URL %q", seed)
	}

	r := &run{
		host:     seedURL.Host,
		work:     NewWorkList(c.Order),
		visited:  NewVisitedSet(visitedExpectedURLs),
		progress: progress,
	}
	r.work.Push(seed)

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	concurrency := max(c.Concurrency, 1)

	workCh := make(chan string)
	resultCh := make(chan pageResult)

	var g errgroup.Group
	for range concurrency {
		g.Go(func() error {
			for target := range workCh {
				resultCh <- c.visit(ctx, target, r.host)
			}
			return nil
		})
	}

	var (
		dispatched int
		pending    int
		next       string
		hasNext    bool
		fatal      error
	)

coordinatorLoop:
	for {
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		// Pop only when a worker is free so that depth-first order sees the
		// links of the page that just finished.
		if !hasNext && pending < concurrency && (c.MaxPages <= 0 || dispatched < c.MaxPages) {
			next, hasNext = r.nextTarget()
		}

		if !hasNext && pending == 0 {
			break coordinatorLoop
		}

		var sendCh chan<- string
		if hasNext && pending < concurrency {
			sendCh = workCh
		}

		select {
		case <-ctx.Done():
			break coordinatorLoop
		case sendCh <- next:
			dispatched++
			pending++
			hasNext = false
			r.emit(ProgressEvent{Type: ProgressDispatched, URL: next})
		case res := <-resultCh:
			pending--
			if err := c.handle(ctx, r, res); err != nil {
				fatal = err
				cancel()
				break coordinatorLoop
			}
		}
	}

	close(workCh)
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	// Drain in-flight pages. After a sink failure their output is discarded.
	// After cancellation, pages that still succeeded are kept; failures are
	// most likely the cancellation itself and are not counted.
	for res := range resultCh {
		if fatal != nil || res.err != nil {
			continue
		}
		if err := c.handle(ctx, r, res); err != nil {
			fatal = err
		}
	}

	r.emit(ProgressEvent{Type: ProgressFinished})

	if fatal != nil {
		return &r.result, fatal
	}
	if err := parent.Err(); err != nil {
		return &r.result, err
	}
	return &r.result, nil
}

// nextTarget pops work until it finds a URL not yet dispatched, marking it
// visited. The bool result is false once the work list is exhausted.
func (r *run) nextTarget() (string, bool) {
	for {
		target, ok := r.work.Pop()
		if !ok {
			return "", false
		}
		if r.visited.Add(target) {
			return target, true
		}
	}
}

func (r *run) emit(event ProgressEvent) {
	if r.progress == nil {
		return
	}
	event.Visited = r.result.Visited()
	r.progress(event)
}

// visit fetches, parses and filters one page. It runs on a worker.
// A panic while processing the page fails that page only.
func (c *Crawler) visit(ctx context.Context, target, host string) (res pageResult) {
	res.url = target
	defer func() {
		if r := recover(); r != nil {
			res = pageResult{
				url:  target,
				kind: kindParse,
				err:  pagecrawler.Errorf(pagecrawler.EPARSE, "process %s: panic: %v", target, r),
			}
		}
	}()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, host); err != nil {
			res.kind, res.err = kindTransport, err
			return res
		}
	}

	timeout := c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.Fetcher.Fetch(fetchCtx, target)
	if err != nil {
		res.kind, res.err = kindTransport, err
		return res
	}
	if resp == nil {
		res.kind = kindTransport
		res.err = pagecrawler.Errorf(pagecrawler.ETRANSPORT, "GET %s: empty response", target)
		return res
	}
	if !resp.OK() {
		res.kind = kindTransport
		res.err = pagecrawler.Errorf(pagecrawler.ETRANSPORT, "GET %s: status %d", target, resp.StatusCode)
		return res
	}

	doc, err := c.Parser.Parse(resp.Body, resp.ContentType)
	if err != nil {
		res.kind, res.err = kindParse, err
		return res
	}

	// The filter works on its own copy of the tree, so links inside
	// navigation chrome are still harvested.
	res.text = c.Filter.Extract(doc, target)
	res.links = c.Links.ExtractLinks(doc, target, host)
	return res
}

// handle applies a finished page to the run state. It runs on the
// coordinator, which makes it the only writer to the sink.
func (c *Crawler) handle(ctx context.Context, r *run, res pageResult) error {
	if res.err != nil {
		r.result.Failed++
		c.logger().Warn("page failed", "url", res.url, "kind", res.kind, "err", res.err)
		r.emit(ProgressEvent{Type: ProgressFailed, URL: res.url, Error: res.err})
		return nil
	}

	if strings.TrimSpace(res.text) != "" {
		record := &pagecrawler.Record{SourceURL: res.url, Text: res.text}
		// Records of pages drained after cancellation are still written.
		if err := c.Sink.Append(context.WithoutCancel(ctx), record); err != nil {
			c.logger().Error("sink failed", "url", res.url, "kind", kindSink, "err", err)
			return pagecrawler.Errorf(pagecrawler.ESINK, "append %s: %v", res.url, err)
		}
		r.result.Records++
		r.result.Bytes += len(res.text)
	}

	r.result.Completed++
	r.emit(ProgressEvent{Type: ProgressCompleted, URL: res.url})

	fresh := make([]string, 0, len(res.links))
	for _, link := range res.links {
		if !r.visited.Contains(link) {
			fresh = append(fresh, link)
		}
	}
	r.work.Push(fresh...)
	return nil
}

func (c *Crawler) validate() error {
	switch {
	case c.Fetcher == nil:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "crawler requires a fetcher")
	case c.Parser == nil:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "crawler requires a parser")
	case c.Filter == nil:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "crawler requires a content filter")
	case c.Links == nil:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "crawler requires a link extractor")
	case c.Sink == nil:
		return pagecrawler.Errorf(pagecrawler.EINVALID, "crawler requires a sink")
	}
	return nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
