package repository

import (
	"context"

	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"
	"github.com/DaUnderlord/monday-sippin-sub000/database"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FilterRepository struct {
	collection *mongo.Collection
}

func NewFilterRepository(db *mongo.Database) *FilterRepository {
	return &FilterRepository{
		collection: db.Collection(model.FilterCollectionName),
	}
}

func (r *FilterRepository) FindAll(ctx context.Context) ([]model.FilterRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "level", Value: 1}, {Key: "order_index", Value: 1}})
	return database.FindAll[model.FilterRecord](ctx, r.collection, bson.D{}, opts)
}

// UpdateParent moves id under parentID (a root when empty) at level.
func (r *FilterRepository) UpdateParent(ctx context.Context, id, parentID string, level int) (*model.FilterRecord, error) {
	return database.UpdateGeneric[model.FilterRecord](ctx, r.collection,
		bson.M{"_id": id},
		bson.M{"parent_id": parentID, "level": level},
		customerrors.ErrFilterNotFound,
	)
}

// UpdateLevels writes new levels for a moved subtree in one round trip.
func (r *FilterRepository) UpdateLevels(ctx context.Context, levels map[string]int) error {
	if len(levels) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(levels))
	for id, level := range levels {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"level": level}}))
	}

	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
