package crawler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akiyahub/akiya-crawler/internal/images"
	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/repository"
)

// EngineConfig tunes one crawl run.
type EngineConfig struct {
	// Parallelism bounds the worker pool that processes listings.
	Parallelism int
	// MaxPagesPerArea caps pagination per area as a runaway guard.
	MaxPagesPerArea int
}

// DefaultEngineConfig returns the deployment defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Parallelism:     4,
		MaxPagesPerArea: 200,
	}
}

// runStats accumulates counters across pool workers.
type runStats struct {
	mu           sync.Mutex
	pagesVisited int
	listingsSeen int
	inserted     int
	updated      int
	unchanged    int
	errorCount   int
}

func (s *runStats) addPage() {
	s.mu.Lock()
	s.pagesVisited++
	s.mu.Unlock()
}

func (s *runStats) addError() {
	s.mu.Lock()
	s.errorCount++
	s.mu.Unlock()
}

func (s *runStats) addState(state repository.UpsertState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listingsSeen++
	switch state {
	case repository.StateNew:
		s.inserted++
	case repository.StateChanged:
		s.updated++
	case repository.StateUnchanged:
		s.unchanged++
	}
}

// Engine drives one site through the pipeline: fetch search pages, parse
// listings, fetch details, normalize, download images, upsert. Each run is
// self-contained; engines hold no state between runs.
type Engine struct {
	fetcher    *Fetcher
	normalizer *normalize.Normalizer
	images     *images.Store
	listings   repository.ListingRepository
	runs       repository.RunRepository
	config     EngineConfig
	logger     *logger.Logger
}

// NewEngine wires an engine for one run.
func NewEngine(
	fetcher *Fetcher,
	normalizer *normalize.Normalizer,
	store *images.Store,
	listings repository.ListingRepository,
	runs repository.RunRepository,
	config EngineConfig,
) *Engine {
	return &Engine{
		fetcher:    fetcher,
		normalizer: normalizer,
		images:     store,
		listings:   listings,
		runs:       runs,
		config:     config,
		logger:     logger.NewLogger("crawler_engine"),
	}
}

// Run crawls a site to exhaustion or until the context expires. Already
// upserted listings survive cancellation; the run record marks whether the
// crawl completed.
func (e *Engine) Run(ctx context.Context, site Site) (repository.CrawlRun, error) {
	log := e.logger.WithField("site", site.Name())
	log.Info("Starting crawl run")

	stats := &runStats{}
	seen := newKeySet()
	pool := newWorkerPool(e.config.Parallelism)
	startedAt := time.Now().UTC()

	cancelled := false

areas:
	for _, area := range site.Areas() {
		for page := 1; e.config.MaxPagesPerArea <= 0 || page <= e.config.MaxPagesPerArea; page++ {
			if ctx.Err() != nil {
				cancelled = true
				break areas
			}

			pageURL := site.SearchPageURL(area, page)
			doc, err := e.fetcher.Fetch(ctx, pageURL)
			if errors.Is(err, ErrNotFound) {
				break
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				cancelled = true
				break areas
			}
			if err != nil {
				log.WithField("url", pageURL).Error("Failed to fetch search page", err)
				stats.addError()
				break
			}

			raws, err := site.ParseSearchPage(doc, area)
			if err != nil {
				log.WithField("url", pageURL).Error("Failed to parse search page", err)
				stats.addError()
				break
			}
			if len(raws) == 0 {
				break
			}
			stats.addPage()

			for _, raw := range raws {
				raw := raw
				key := normalize.DedupKey(raw.SourceURL)
				if !seen.Add(key) {
					continue
				}
				pool.Submit(func() {
					e.processListing(ctx, site, raw, stats)
				})
			}
		}
	}

	pool.Wait()

	run := repository.CrawlRun{
		Site:         site.Name(),
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
		Success:      !cancelled,
		PagesVisited: stats.pagesVisited,
		ListingsSeen: stats.listingsSeen,
		Inserted:     stats.inserted,
		Updated:      stats.updated,
		Unchanged:    stats.unchanged,
		Errors:       stats.errorCount,
	}

	if err := e.runs.Record(context.WithoutCancel(ctx), run); err != nil {
		log.Error("Failed to record crawl run", err)
	}

	log.WithFields(map[string]interface{}{
		"pages":     run.PagesVisited,
		"seen":      run.ListingsSeen,
		"inserted":  run.Inserted,
		"updated":   run.Updated,
		"unchanged": run.Unchanged,
		"errors":    run.Errors,
		"duration":  run.FinishedAt.Sub(run.StartedAt).String(),
	}).Info("Crawl run finished")

	if cancelled {
		return run, ctx.Err()
	}
	return run, nil
}

// processListing runs one listing through detail fetch, normalization,
// image download and upsert. Every failure short of a persistence error is
// local to the listing.
func (e *Engine) processListing(ctx context.Context, site Site, raw normalize.RawListing, stats *runStats) {
	log := e.logger.WithFields(map[string]interface{}{
		"site": site.Name(),
		"url":  raw.SourceURL,
	})

	detailDoc, err := e.fetcher.Fetch(ctx, raw.SourceURL)
	if err != nil {
		log.Error("Failed to fetch listing page", err)
		stats.addError()
		return
	}

	if err := site.ParseDetailPage(detailDoc, &raw); err != nil {
		log.Error("Failed to parse listing page", err)
		stats.addError()
		return
	}

	listing := e.normalizer.Normalize(ctx, raw)
	listing.Images = e.images.SaveAll(ctx, site.Name(), listing.Key, raw.ImageURLs)

	state, err := e.listings.Upsert(ctx, listing)
	if err != nil {
		log.Error("Failed to upsert listing", err)
		stats.addError()
		return
	}
	stats.addState(state)

	if state != repository.StateUnchanged {
		log.WithField("state", state.String()).Debug("Listing persisted")
	}
}
