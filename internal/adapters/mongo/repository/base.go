package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rafaelleal24/storefront/internal/adapters/mongo/document"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository wraps one collection of documents of type T. Errors coming
// out of it are already translated into service errors named after entity.
type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
	entity     string
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName, entity string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
		entity:     entity,
	}
}

// EnsureIndexes creates the given indexes. Existing indexes with the same
// definition are left untouched, so it is safe on every startup.
func (r *BaseRepository[T]) EnsureIndexes(ctx context.Context, indexes ...mongo.IndexModel) {
	if len(indexes) == 0 {
		return
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error(ctx, "failed to create indexes", err, map[string]any{
			"collection": r.collection.Name(),
		})
	}
}

func (r *BaseRepository[T]) Insert(ctx context.Context, entity *T) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, entity)
	if err != nil {
		return primitive.NilObjectID, r.parseError(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert %s: unexpected id type %T", r.entity, result.InsertedID)
	}
	return objectID, nil
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.parseError(err)
	}

	var entity T
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entity); err != nil {
		return nil, r.parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, r.parseError(err)
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, r.parseError(err)
	}

	return entities, nil
}

// FindByIDs returns the documents whose ids are in objectIDs. Missing ids are
// simply absent from the result.
func (r *BaseRepository[T]) FindByIDs(ctx context.Context, objectIDs []primitive.ObjectID, opts ...*options.FindOptions) ([]T, error) {
	if len(objectIDs) == 0 {
		return []T{}, nil
	}
	return r.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, opts...)
}

// UpdateByID applies update to a single document and returns it as it is
// after the update.
func (r *BaseRepository[T]) UpdateByID(ctx context.Context, id string, update any) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.parseError(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entity T
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&entity); err != nil {
		return nil, r.parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return r.parseError(err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return r.parseError(err)
	}

	if result.DeletedCount == 0 {
		return serviceerrors.NewNotFoundError(r.entity + " not found")
	}

	return nil
}

func (r *BaseRepository[T]) parseError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return serviceerrors.NewNotFoundError(r.entity + " not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		return serviceerrors.NewConflictError(r.entity + " already exists")
	}
	if isInvalidObjectIDError(err) {
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	}
	return fmt.Errorf("%s storage: %w", r.entity, err)
}

func isInvalidObjectIDError(err error) bool {
	return errors.Is(err, primitive.ErrInvalidHex) ||
		(err != nil && strings.Contains(err.Error(), "not a valid ObjectID"))
}
