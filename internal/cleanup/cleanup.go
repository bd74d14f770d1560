package cleanup

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akiyahub/akiya-crawler/internal/images"
	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/repository"
)

// Config tunes one cleanup pass.
type Config struct {
	// Retention is how long a listing may go unseen before it is removed.
	Retention time.Duration
	// VerifyLinks re-checks each stale listing's source URL and only
	// deletes when the origin answers 404 or 410. Listings whose origin
	// still responds get to live until the next pass.
	VerifyLinks bool
}

// DefaultConfig keeps listings for two weeks of missed crawls.
func DefaultConfig() Config {
	return Config{
		Retention:   14 * 24 * time.Hour,
		VerifyLinks: true,
	}
}

// Result summarizes one cleanup pass over one site.
type Result struct {
	Site            string `json:"site"`
	StaleFound      int    `json:"stale_found"`
	Deleted         int    `json:"deleted"`
	Kept            int    `json:"kept"`
	OrphanDirsSwept int    `json:"orphan_dirs_swept"`
	Errors          int    `json:"errors"`
}

// Job removes listings that crawls have stopped seeing, together with
// their image directories. It refuses to delete anything for a site that
// has no successful crawl inside the retention window, so a broken
// crawler can never empty the database.
type Job struct {
	listings repository.ListingRepository
	runs     repository.RunRepository
	images   *images.Store
	config   Config
	client   *http.Client
	logger   *logger.Logger
}

// NewJob wires a cleanup job.
func NewJob(
	listings repository.ListingRepository,
	runs repository.RunRepository,
	store *images.Store,
	config Config,
) *Job {
	return &Job{
		listings: listings,
		runs:     runs,
		images:   store,
		config:   config,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.NewLogger("cleanup"),
	}
}

// Run executes one cleanup pass for each named site.
func (j *Job) Run(ctx context.Context, sites []string) ([]Result, error) {
	results := make([]Result, 0, len(sites))
	for _, site := range sites {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		result, err := j.runSite(ctx, site)
		if err != nil {
			return results, fmt.Errorf("cleanup failed for site %s: %w", site, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (j *Job) runSite(ctx context.Context, site string) (Result, error) {
	log := j.logger.WithField("site", site)
	result := Result{Site: site}
	cutoff := time.Now().UTC().Add(-j.config.Retention)

	// Guard: without a recent successful run, "unseen" means the crawler
	// is broken, not that the listings are gone.
	lastRun, err := j.runs.LastSuccessful(ctx, site)
	if err != nil {
		return result, fmt.Errorf("failed to look up last successful run: %w", err)
	}
	if lastRun == nil || lastRun.FinishedAt.Before(cutoff) {
		log.Warn("No successful crawl inside retention window, skipping deletions")
		return result, nil
	}

	stale, err := j.listings.FindStale(ctx, site, cutoff)
	if err != nil {
		return result, fmt.Errorf("failed to find stale listings: %w", err)
	}
	result.StaleFound = len(stale)

	for _, listing := range stale {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if j.config.VerifyLinks && !j.originGone(ctx, listing.SourceURL) {
			result.Kept++
			continue
		}

		if err := j.images.RemoveListing(site, listing.Key); err != nil {
			log.WithField("key", listing.Key).Error("Failed to remove listing images", err)
			result.Errors++
			continue
		}
		if err := j.listings.Delete(ctx, listing.Key); err != nil {
			log.WithField("key", listing.Key).Error("Failed to delete listing", err)
			result.Errors++
			continue
		}
		result.Deleted++
		log.WithFields(map[string]interface{}{
			"key":  listing.Key,
			"link": listing.SourceURL,
		}).Info("Removed stale listing")
	}

	swept, err := j.sweepOrphanDirs(ctx, site)
	if err != nil {
		log.Error("Failed to sweep orphan image directories", err)
		result.Errors++
	}
	result.OrphanDirsSwept = swept

	log.WithFields(map[string]interface{}{
		"stale":   result.StaleFound,
		"deleted": result.Deleted,
		"kept":    result.Kept,
		"orphans": result.OrphanDirsSwept,
		"errors":  result.Errors,
	}).Info("Cleanup pass finished")

	return result, nil
}

// originGone reports whether the source page has been taken down. Network
// failures and non-gone statuses both count as "still there": deletion
// needs positive evidence.
func (j *Job) originGone(ctx context.Context, sourceURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return false
	}
	resp, err := j.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone
}

// sweepOrphanDirs removes image directories whose listing no longer
// exists, including leftovers from deletions that crashed halfway.
func (j *Job) sweepOrphanDirs(ctx context.Context, site string) (int, error) {
	dirs, err := j.images.ListingDirs(site)
	if err != nil {
		return 0, err
	}
	if len(dirs) == 0 {
		return 0, nil
	}

	keys, err := j.listings.AllKeys(ctx, site)
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		live[normalize.KeyPrefix(key)] = struct{}{}
	}

	swept := 0
	for _, dir := range dirs {
		if _, ok := live[dir]; ok {
			continue
		}
		if err := j.images.RemoveDir(site, dir); err != nil {
			j.logger.WithField("dir", dir).Error("Failed to remove orphan image directory", err)
			continue
		}
		swept++
	}
	return swept, nil
}
