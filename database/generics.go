package database

import (
	"context"
	"errors"

	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateGeneric applies $set data to the single document matching filter
// and returns it after the update. notFound is returned when nothing matched.
func UpdateGeneric[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, data any, notFound error) (*T, error) {
	update := bson.M{
		"$set": data,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedDoc T
	err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedDoc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if notFound == nil {
				notFound = customerrors.ErrFilterNotFound
			}
			return nil, notFound
		}
		return nil, err
	}

	return &updatedDoc, nil
}

// FindAll decodes every document matching filter. The result is never nil.
func FindAll[T any](ctx context.Context, collection *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return []T{}, nil
	}
	return out, nil
}
