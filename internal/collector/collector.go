// Package collector retrieves every day window concurrently and merges the
// results into a single History.
package collector

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gitoutofhours/internal/git"
	"gitoutofhours/internal/history"
	"gitoutofhours/internal/observability"
	"gitoutofhours/internal/schedule"
	"gitoutofhours/pkg/models"
)

// ProgressFunc is called once per finished window
type ProgressFunc func(done, total int)

// Collector fans retrievals out over the day windows
type Collector struct {
	Source    git.Source
	Scheduler *schedule.Scheduler
	Logger    *observability.Logger
	Metrics   *observability.ScanMetrics
	Progress  ProgressFunc
}

// New creates a Collector with a silent logger
func New(source git.Source, scheduler *schedule.Scheduler) *Collector {
	return &Collector{
		Source:    source,
		Scheduler: scheduler,
		Logger:    observability.NewNop(),
		Metrics:   observability.NewScanMetrics(),
	}
}

type result struct {
	history history.History
	err     error
}

// Collect retrieves one window per day offset and merges the per-window
// histories in offset order, so a later offset wins a shared SortKey.
//
// A retrieval failing with the commit retrieval sentinel fails the whole call.
// Any other failure is logged and the call returns an empty History. Every
// retrieval is awaited before Collect returns.
func (c *Collector) Collect(ctx context.Context, opts models.Options) (history.History, error) {
	if err := opts.Validate(); err != nil {
		return history.History{}, err
	}
	if err := git.ValidateBranch(opts.Branch); err != nil {
		return history.History{}, err
	}

	logger := c.logger()
	metrics := c.metrics()
	match := history.MatchAuthor(opts.Author, opts.AuthorMatch)
	windows := c.Scheduler.Windows(opts.DayCount, opts.SkipTimeCheck)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = models.DefaultConcurrency
	}

	results := make([]result, len(windows))

	var (
		mu   sync.Mutex
		done int
	)
	finished := func() {
		if c.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		c.Progress(done, len(windows))
	}

	// Workers never return an error to the group, so one failure does not
	// cancel the others.
	var g errgroup.Group
	g.SetLimit(limit)

	for i, window := range windows {
		i, window := i, window
		g.Go(func() error {
			defer finished()

			start := time.Now()
			text, err := c.Source.Log(ctx, window, opts.Branch)
			metrics.Latency.Since(start)

			if err != nil {
				metrics.Failures.Inc()
				results[i] = result{err: err}
				return nil
			}

			metrics.Windows.Inc()
			h := history.FromLog(history.History{}, text, match)
			metrics.Commits.Add(h.Len())
			results[i] = result{history: h}

			logger.DebugWithFields("window retrieved", map[string]interface{}{
				"offset":  window.Offset,
				"start":   window.Start,
				"end":     window.End,
				"commits": h.Len(),
			})
			return nil
		})
	}
	_ = g.Wait()

	logger.DebugWithFields("collection finished", metrics.Fields())

	var (
		retrievalErr error
		otherErr     error
	)
	for i, r := range results {
		if r.err == nil {
			continue
		}
		if git.IsRetrievalError(r.err) {
			if retrievalErr == nil {
				retrievalErr = r.err
			}
			continue
		}
		if otherErr == nil {
			otherErr = r.err
		}
		logger.WithError(r.err).WarnWithFields("window failed", map[string]interface{}{
			"offset": windows[i].Offset,
		})
	}

	if retrievalErr != nil {
		return history.History{}, retrievalErr
	}
	if otherErr != nil {
		return history.History{}, nil
	}

	histories := make([]history.History, len(results))
	for i, r := range results {
		histories[i] = r.history
	}
	return history.Merge(histories...), nil
}

func (c *Collector) logger() *observability.Logger {
	if c.Logger == nil {
		return observability.NewNop()
	}
	return c.Logger
}

func (c *Collector) metrics() *observability.ScanMetrics {
	if c.Metrics == nil {
		c.Metrics = observability.NewScanMetrics()
	}
	return c.Metrics
}
