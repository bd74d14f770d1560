package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/akiyahub/akiya-crawler/api"
	"github.com/akiyahub/akiya-crawler/internal/config"
	"github.com/akiyahub/akiya-crawler/internal/repository"
	"github.com/akiyahub/akiya-crawler/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file, using environment variables")
	}
	cfg := config.LoadConfig()

	repo, err := repository.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to create listing repository: %v", err)
	}
	defer repo.Close()

	listingService := service.NewListingService(repo)
	router := api.SetupRouter(listingService, cfg.DataDir)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
