package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listingsCollection = "listings"

// MongoRepository stores listings in a single MongoDB collection, one
// document per dedup key.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMongoRepository connects, pings and ensures the unique index on the
// dedup key. A connection failure here is fatal for the calling run.
func NewMongoRepository(uri, dbName string) (*MongoRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	collection := client.Database(dbName).Collection(listingsCollection)
	log := logger.NewLogger("mongo_repository")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(context.Background(), indexModel); err != nil {
		log.Warnf("Failed to create unique index on key field: %v", err)
	}

	return &MongoRepository{client: client, collection: collection, logger: log}, nil
}

// Upsert applies the per-listing state machine: insert when the key is new,
// refresh lastSeenAt when nothing changed, replace the document when any
// normalized field differs.
func (r *MongoRepository) Upsert(ctx context.Context, incoming Listing) (UpsertState, error) {
	now := time.Now().UTC()

	existing, err := r.FindByKey(ctx, incoming.Key)
	if errors.Is(err, ErrNotFound) {
		incoming.ID = uuid.NewString()
		incoming.CreatedAt = now
		incoming.UpdatedAt = now
		incoming.LastSeenAt = now
		if _, err := r.collection.InsertOne(ctx, incoming); err != nil {
			return StateNew, fmt.Errorf("failed to insert listing %s: %w", incoming.Key, err)
		}
		return StateNew, nil
	}
	if err != nil {
		return StateUnchanged, err
	}

	merged := mergeForCompare(*existing, incoming)
	if contentEqual(*existing, merged) {
		// No content change: only record that the source still lists it,
		// without touching updatedAt.
		_, err := r.collection.UpdateOne(ctx,
			bson.M{"key": incoming.Key},
			bson.M{"$set": bson.M{"lastSeenAt": now}})
		if err != nil {
			return StateUnchanged, fmt.Errorf("failed to refresh listing %s: %w", incoming.Key, err)
		}
		return StateUnchanged, nil
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = now
	merged.LastSeenAt = now
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"key": incoming.Key}, merged); err != nil {
		return StateChanged, fmt.Errorf("failed to update listing %s: %w", incoming.Key, err)
	}
	return StateChanged, nil
}

func (r *MongoRepository) FindByKey(ctx context.Context, key string) (*Listing, error) {
	var listing Listing
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find listing %s: %w", key, err)
	}
	return &listing, nil
}

func (r *MongoRepository) FindWithFilters(ctx context.Context, filter ListingFilter, pagination PaginationParams) (*ListingSearchResult, error) {
	mongoFilter := bson.M{}

	if filter.Site != "" {
		mongoFilter["site"] = filter.Site
	}
	if filter.Prefecture != "" {
		mongoFilter["Prefecture"] = bson.M{"$regex": filter.Prefecture, "$options": "i"}
	}
	if filter.PropertyType != "" {
		mongoFilter["Property Type"] = bson.M{"$regex": filter.PropertyType, "$options": "i"}
	}
	if filter.Layout != "" {
		mongoFilter["Building - Layout"] = bson.M{"$regex": filter.Layout, "$options": "i"}
	}

	if filter.MinPriceUSD > 0 || filter.MaxPriceUSD > 0 {
		priceFilter := bson.M{}
		if filter.MinPriceUSD > 0 {
			priceFilter["$gte"] = filter.MinPriceUSD
		}
		if filter.MaxPriceUSD > 0 {
			priceFilter["$lte"] = filter.MaxPriceUSD
		}
		mongoFilter["Sale Price"] = priceFilter
	}

	totalItems, err := r.collection.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	if pagination.PageSize <= 0 {
		pagination.PageSize = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	totalPages := int((totalItems + int64(pagination.PageSize) - 1) / int64(pagination.PageSize))
	skip := (pagination.Page - 1) * pagination.PageSize

	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(pagination.PageSize)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	return &ListingSearchResult{
		Listings:    listings,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: pagination.Page,
		PageSize:    pagination.PageSize,
	}, nil
}

// FindStale returns listings for a site that no crawl has seen since the
// given cutoff. Used by the cleanup job.
func (r *MongoRepository) FindStale(ctx context.Context, site string, before time.Time) ([]Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"site":       site,
		"lastSeenAt": bson.M{"$lt": before},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find stale listings for %s: %w", site, err)
	}
	defer cursor.Close(ctx)

	var listings []Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode stale listings: %w", err)
	}
	return listings, nil
}

// AllKeys returns every dedup key stored for a site. The cleanup job uses
// this to detect orphaned image directories.
func (r *MongoRepository) AllKeys(ctx context.Context, site string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"site": site},
		options.Find().SetProjection(bson.M{"key": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for %s: %w", site, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Key string `bson:"key"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode keys: %w", err)
	}

	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.Key)
	}
	return keys, nil
}

func (r *MongoRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", key, err)
	}
	return nil
}

func (r *MongoRepository) Close() {
	if err := r.client.Disconnect(context.Background()); err != nil {
		r.logger.Error("Failed to disconnect from mongodb", err)
	}
}
