package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/akiyahub/akiya-crawler/internal/config"
	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/crawler/sites"
	"github.com/akiyahub/akiya-crawler/internal/fxrate"
	"github.com/akiyahub/akiya-crawler/internal/images"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/repository"
	"github.com/akiyahub/akiya-crawler/internal/translate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file, using environment variables")
	}
	cfg := config.LoadConfig()

	siteFlag := flag.String("site", "", "crawl a single site (nifty, hatomark, sumai); default all")
	flag.Parse()

	targets := sites.All()
	if *siteFlag != "" {
		site, err := sites.ByName(strings.TrimSpace(*siteFlag))
		if err != nil {
			log.Fatalf("Unknown site: %v", err)
		}
		targets = []crawler.Site{site}
	}

	listings, err := repository.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to create listing repository: %v", err)
	}
	defer listings.Close()

	runs, err := repository.NewMongoRunRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to create run repository: %v", err)
	}
	defer runs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	rate, err := exchangeRate(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to resolve JPY->USD rate: %v", err)
	}

	fetcher := crawler.NewFetcher(crawler.FetcherConfig{
		MaxRetries:     cfg.FetchMaxRetries,
		InitialBackoff: cfg.FetchBackoff,
		Delay:          cfg.FetchDelay,
		RequestTimeout: cfg.RequestTimeout,
	})
	normalizer := normalize.NewNormalizer(newTranslator(ctx, cfg), rate)
	store := images.NewStore(cfg.DataDir)

	engineConfig := crawler.DefaultEngineConfig()
	engineConfig.Parallelism = cfg.Parallelism
	engine := crawler.NewEngine(fetcher, normalizer, store, listings, runs, engineConfig)

	failed := false
	for _, site := range targets {
		run, err := engine.Run(ctx, site)
		if err != nil {
			log.Printf("Crawl of %s did not complete: %v", site.Name(), err)
			failed = true
		}
		if run.Errors > 0 {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// exchangeRate resolves the run's rate snapshot: a configured fixed rate
// wins, otherwise the FX API is asked once.
func exchangeRate(ctx context.Context, cfg *config.Config) (float64, error) {
	var provider fxrate.Provider
	if cfg.ExchangeRate > 0 {
		provider = fxrate.Static{Value: cfg.ExchangeRate}
	} else {
		provider = fxrate.NewAPI(cfg.FxRateURL)
	}
	return provider.Rate(ctx)
}

// newTranslator picks the best configured backend: DeepL, then Gemini,
// then pass-through. The cache wrapper applies to the real backends only.
func newTranslator(ctx context.Context, cfg *config.Config) translate.Translator {
	if cfg.DeepLAPIKey != "" {
		return translate.NewCached(translate.NewDeepLTranslator(cfg.DeepLAPIKey))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := translate.NewGeminiTranslator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Gemini unavailable, storing untranslated text: %v", err)
			return translate.Noop{}
		}
		return translate.NewCached(gemini)
	}
	log.Println("Warning: no translation API key configured, storing untranslated text")
	return translate.Noop{}
}
