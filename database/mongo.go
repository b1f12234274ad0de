package database

import (
	"context"
	"fmt"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func InitMongoClient(ctx context.Context, cfg *model.EnvConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg.MongoUri == "" {
		return nil, nil, fmt.Errorf("mongoUri is not configured")
	}

	clientOptions := options.Client().ApplyURI(cfg.MongoUri)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("could not ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	ensureIndexes(ctx, db)

	log.Info().Str("database", cfg.MongoDatabase).Msg("Successfully connected to MongoDB")

	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) {
	filterIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "order_index", Value: 1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(model.FilterCollectionName).Indexes().CreateMany(ctx, filterIdx); err != nil {
		log.Warn().Err(err).Msg("Could not create filter indexes")
	}

	articleIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "filter_ids", Value: 1}, {Key: "published_at", Value: -1}}},
	}
	if _, err := db.Collection(model.ArticleCollectionName).Indexes().CreateMany(ctx, articleIdx); err != nil {
		log.Warn().Err(err).Msg("Could not create article indexes")
	}
}
