package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/mdcrawl/mdcrawl/internal/extractor"
	"github.com/mdcrawl/mdcrawl/internal/fetcher"
	"github.com/mdcrawl/mdcrawl/internal/model"
)

// Fetcher fetches a URL with bounded retries.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Policy decides link admission.
type Policy interface {
	// IsInScope reports whether a URL may be crawled at all.
	IsInScope(rawURL string) bool

	// IsExcluded reports whether a discovered link matches an exclusion
	// pattern. Excluded links are skipped silently.
	IsExcluded(rawURL string) bool
}

// Store persists crawl outputs: page artifacts and the append-only
// success/failure logs.
type Store interface {
	// SaveArtifact writes the text rendering of a page and returns the
	// artifact path to record in the page's metadata.
	SaveArtifact(rawURL, text string) (string, error)

	// AppendFailure appends one line to the failure log.
	AppendFailure(rawURL string, ts time.Time) error

	// AppendSuccess appends one URL to the success log.
	AppendSuccess(rawURL string) error
}

// Recorder accumulates page metadata records in processing order.
type Recorder interface {
	Add(record model.PageRecord)
}

// Session runs breadth-first crawls. It holds only run-wide configuration;
// all per-seed state (frontier, visited set, counters) lives inside Crawl,
// so one Session may crawl several seeds, sequentially or concurrently.
type Session struct {
	fetch  Fetcher
	scope  Policy
	store  Store
	sink   Recorder
	logger *slog.Logger

	// maxDepth bounds link hops from the seed. 0 crawls only the seed page.
	maxDepth int

	// delay is the polite pause after each fully processed page.
	delay time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed page plus linked pages, etc.
func WithMaxDepth(depth int) SessionOption {
	return func(s *Session) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// WithDelay sets the polite delay between processed pages.
func WithDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger for per-page processing notices.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a crawl session from its collaborators.
func NewSession(fetch Fetcher, scope Policy, store Store, sink Recorder, opts ...SessionOption) *Session {
	s := &Session{
		fetch:    fetch,
		scope:    scope,
		store:    store,
		sink:     sink,
		logger:   slog.Default(),
		maxDepth: 1,
		delay:    500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// task is one unit of frontier work.
type task struct {
	url   string
	depth int
}

// Crawl runs one seed's breadth-first traversal to completion and returns
// that seed's counters. The crawl ends when the frontier empties or the
// context is canceled; per-page failures never end it.
func (s *Session) Crawl(ctx context.Context, seed string) (model.Stats, error) {
	var stats model.Stats

	start, ok := Canonical(seed)
	if !ok {
		s.logger.Warn("seed is not a crawlable URL", "seed", seed)
		stats.Blocked++
		return stats, nil
	}

	visited := make(map[string]bool)
	queue := []task{{url: start, depth: 0}}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		// Silent discard: already fetched or past the depth bound.
		if visited[item.url] || item.depth > s.maxDepth {
			continue
		}
		visited[item.url] = true

		if !s.scope.IsInScope(item.url) {
			stats.Blocked++
			continue
		}

		s.logger.Info("processing", "url", item.url, "depth", item.depth)

		resp, err := s.fetch.Fetch(ctx, item.url)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Failed++
			if logErr := s.store.AppendFailure(item.url, time.Now()); logErr != nil {
				s.logger.Error("failure log write failed", "url", item.url, "error", logErr)
			}
			continue
		}

		title := ""
		var doc *extractor.Document
		if resp.IsHTML() {
			doc, err = extractor.Parse(resp.Body)
			if err != nil {
				// Treat an unparseable body like non-HTML content: the
				// page still gets a metadata record, just no artifact.
				s.logger.Warn("HTML parse failed", "url", item.url, "error", err)
				doc = nil
			} else {
				title = doc.Title()
			}
		}

		// Harvest links before rendering: Text removes navigation chrome
		// from the document, and chrome links still count for discovery.
		var hrefs []string
		if doc != nil && item.depth < s.maxDepth {
			hrefs = doc.Links()
		}

		artifactPath := ""
		if doc != nil {
			if path, err := s.store.SaveArtifact(item.url, doc.Text()); err != nil {
				s.logger.Error("artifact write failed", "url", item.url, "error", err)
			} else {
				artifactPath = path
				stats.Saved++
			}
		}

		s.sink.Add(model.PageRecord{
			URL:          item.url,
			Title:        title,
			Timestamp:    time.Now(),
			StatusCode:   resp.StatusCode,
			ArtifactPath: artifactPath,
			Depth:        item.depth,
			Seed:         start,
		})

		if resp.StatusCode == 200 && artifactPath != "" {
			if err := s.store.AppendSuccess(item.url); err != nil {
				s.logger.Error("success log write failed", "url", item.url, "error", err)
			}
		}

		queue = append(queue, s.admit(item, hrefs, visited, &stats)...)

		stats.Processed++

		// Polite delay, paid only by pages that made it this far.
		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	s.logger.Info("seed finished",
		"seed", seed,
		"processed", stats.Processed,
		"failed", stats.Failed,
		"blocked", stats.Blocked,
		"saved", stats.Saved,
	)

	return stats, nil
}

// admit filters a page's outbound links and returns the tasks to enqueue at
// the next depth. Out-of-scope links increment the blocked counter;
// malformed and pattern-excluded links are dropped without counting.
func (s *Session) admit(parent task, hrefs []string, visited map[string]bool, stats *model.Stats) []task {
	base, err := url.Parse(parent.url)
	if err != nil {
		return nil
	}

	next := make([]task, 0, len(hrefs))
	for _, href := range hrefs {
		link, ok := Resolve(base, href)
		if !ok {
			s.logger.Debug("dropping unresolvable link", "href", href, "page", parent.url)
			continue
		}
		if visited[link] {
			continue
		}
		if s.scope.IsExcluded(link) {
			continue
		}
		if !s.scope.IsInScope(link) {
			stats.Blocked++
			continue
		}
		next = append(next, task{url: link, depth: parent.depth + 1})
	}

	return next
}
