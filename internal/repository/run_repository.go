package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runsCollection = "crawl_runs"

// CrawlRun records one crawl execution for a site. The cleanup job only
// deletes a site's stale listings when a successful run exists, so a dead
// crawler can never cause a mass delete.
type CrawlRun struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Site       string    `bson:"site" json:"site"`
	StartedAt  time.Time `bson:"startedAt" json:"started_at"`
	FinishedAt time.Time `bson:"finishedAt" json:"finished_at"`
	Success    bool      `bson:"success" json:"success"`

	PagesVisited int `bson:"pagesVisited" json:"pages_visited"`
	ListingsSeen int `bson:"listingsSeen" json:"listings_seen"`
	Inserted     int `bson:"inserted" json:"inserted"`
	Updated      int `bson:"updated" json:"updated"`
	Unchanged    int `bson:"unchanged" json:"unchanged"`
	Errors       int `bson:"errors" json:"errors"`
}

// RunRepository persists crawl-run records.
type RunRepository interface {
	Record(ctx context.Context, run CrawlRun) error
	LastSuccessful(ctx context.Context, site string) (*CrawlRun, error)
	Close()
}

// MongoRunRepository stores crawl runs in their own collection.
type MongoRunRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoRunRepository(uri, dbName string) (*MongoRunRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoRunRepository{
		client:     client,
		collection: client.Database(dbName).Collection(runsCollection),
	}, nil
}

func (r *MongoRunRepository) Record(ctx context.Context, run CrawlRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("failed to record crawl run for %s: %w", run.Site, err)
	}
	return nil
}

// LastSuccessful returns the most recent successful run for a site, or nil
// when the site has never completed a run.
func (r *MongoRunRepository) LastSuccessful(ctx context.Context, site string) (*CrawlRun, error) {
	var run CrawlRun
	err := r.collection.FindOne(ctx,
		bson.M{"site": site, "success": true},
		options.FindOne().SetSort(bson.D{{Key: "finishedAt", Value: -1}}),
	).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last run for %s: %w", site, err)
	}
	return &run, nil
}

func (r *MongoRunRepository) Close() {
	r.client.Disconnect(context.Background())
}
