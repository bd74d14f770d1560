package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// ErrNotFound signals a 404/410 response. Site crawlers use it as the
// pagination exhaustion signal; it is never retried.
var ErrNotFound = errors.New("page not found")

// FetcherConfig holds the fetch tuning knobs.
type FetcherConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Delay          time.Duration
	RequestTimeout time.Duration
}

// DefaultFetcherConfig matches the values the cron deployment has been
// running with.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		MaxRetries:     5,
		InitialBackoff: 30 * time.Second,
		Delay:          2 * time.Second,
		RequestTimeout: 30 * time.Second,
	}
}

// Fetcher downloads pages with a fixed inter-request delay and bounded
// retries with jittered exponential backoff. Safe for concurrent use.
type Fetcher struct {
	config FetcherConfig
	logger *logger.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewFetcher creates a fetcher.
func NewFetcher(config FetcherConfig) *Fetcher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}
	return &Fetcher{
		config: config,
		logger: logger.NewLogger("fetcher"),
	}
}

// Fetch downloads a URL and parses it into a document. Transient failures
// are retried up to MaxRetries with exponential backoff and jitter; a
// 404/410 returns ErrNotFound immediately.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	backoff := f.config.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= f.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f.enforceDelay()

		doc, status, err := f.visit(pageURL)
		if err == nil {
			return doc, nil
		}
		if status == http.StatusNotFound || status == http.StatusGone {
			return nil, fmt.Errorf("%w: %s (status %d)", ErrNotFound, pageURL, status)
		}
		lastErr = err

		if attempt < f.config.MaxRetries {
			jitter := time.Duration(rand.Int63n(int64(backoff) + 1))
			f.logger.WithFields(map[string]interface{}{
				"url":     pageURL,
				"attempt": attempt,
				"wait":    jitter.String(),
			}).Warnf("Fetch failed, retrying: %v", err)

			select {
			case <-time.After(jitter):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("max retries exceeded for %s: %w", pageURL, lastErr)
}

// visit performs one request through a fresh colly collector with a random
// desktop user agent.
func (f *Fetcher) visit(pageURL string) (*goquery.Document, int, error) {
	c := colly.NewCollector()
	extensions.RandomUserAgent(c)
	c.SetRequestTimeout(f.config.RequestTimeout)

	var (
		doc      *goquery.Document
		status   int
		visitErr error
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		d, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			visitErr = fmt.Errorf("failed to parse html: %w", err)
			return
		}
		doc = d
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil && visitErr == nil {
		visitErr = err
	}
	c.Wait()

	if visitErr != nil {
		return nil, status, visitErr
	}
	if doc == nil {
		return nil, status, fmt.Errorf("empty response from %s", pageURL)
	}
	return doc, status, nil
}

// enforceDelay keeps at least the configured interval between requests.
func (f *Fetcher) enforceDelay() {
	if f.config.Delay <= 0 {
		return
	}

	f.mu.Lock()
	elapsed := time.Since(f.lastRequest)
	if elapsed < f.config.Delay {
		wait := f.config.Delay - elapsed
		f.lastRequest = time.Now().Add(wait)
		f.mu.Unlock()
		time.Sleep(wait)
		return
	}
	f.lastRequest = time.Now()
	f.mu.Unlock()
}
