package repository

import (
	"context"

	"github.com/DaUnderlord/monday-sippin-sub000/database"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArticleRepository struct {
	collection *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{
		collection: db.Collection(model.ArticleCollectionName),
	}
}

// FindPublished returns published articles, newest first. When filterIDs is
// non-empty only articles tagged with at least one of them match.
func (r *ArticleRepository) FindPublished(ctx context.Context, filterIDs []string, limit int64) ([]model.Article, error) {
	query := bson.M{"status": model.ArticleStatusPublished}
	if len(filterIDs) > 0 {
		query["filter_ids"] = bson.M{"$in": filterIDs}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetLimit(limit)

	return database.FindAll[model.Article](ctx, r.collection, query, opts)
}
