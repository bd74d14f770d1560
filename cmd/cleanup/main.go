package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/akiyahub/akiya-crawler/internal/cleanup"
	"github.com/akiyahub/akiya-crawler/internal/config"
	"github.com/akiyahub/akiya-crawler/internal/crawler/sites"
	"github.com/akiyahub/akiya-crawler/internal/images"
	"github.com/akiyahub/akiya-crawler/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file, using environment variables")
	}
	cfg := config.LoadConfig()

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

	job := cleanup.NewJob(listings, runs, images.NewStore(cfg.DataDir), cleanup.Config{
		Retention:   cfg.CleanupRetention,
		VerifyLinks: cfg.CleanupVerifyLinks,
	})

	names := make([]string, 0, len(sites.All()))
	for _, site := range sites.All() {
		names = append(names, site.Name())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	results, err := job.Run(ctx, names)
	if err != nil {
		log.Printf("Cleanup did not complete: %v", err)
		os.Exit(1)
	}

	for _, result := range results {
		if result.Errors > 0 {
			os.Exit(1)
		}
	}
}
