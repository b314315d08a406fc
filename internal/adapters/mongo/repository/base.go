package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/document"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository holds the id-keyed operations shared by the document
// collections. entity names the record in NotFound messages.
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

// ensureIndexes is best effort: a failure is logged and the repository stays usable.
func (r *BaseRepository[T]) ensureIndexes(ctx context.Context, indexes []mongo.IndexModel) {
	if len(indexes) == 0 {
		return
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error(ctx, "failed to create indexes", err, map[string]any{
			"collection": r.collection.Name(),
		})
	}
}

func (r *BaseRepository[T]) notFound() error {
	return serviceerrors.NewNotFoundError(fmt.Sprintf("%s not found", r.entity))
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, parseError(err)
	}

	var entity T
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.notFound()
	}
	if err != nil {
		return nil, parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, parseError(err)
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, parseError(err)
	}

	return entities, nil
}

// Insert stores entity and returns the hex form of the generated _id.
func (r *BaseRepository[T]) Insert(ctx context.Context, entity *T) (string, error) {
	result, err := r.collection.InsertOne(ctx, entity)
	if err != nil {
		return "", parseError(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", serviceerrors.NewStoreFailureError(fmt.Sprintf("unexpected %s id type %T", r.entity, result.InsertedID), nil)
	}
	return objectID.Hex(), nil
}

// SetFields applies a $set on the document with the given id.
func (r *BaseRepository[T]) SetFields(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return r.notFound()
	}

	return nil
}

// SetFieldsIf applies a $set only while the document still matches guard.
// A miss on an existing document is a Conflict; a missing document is NotFound.
func (r *BaseRepository[T]) SetFieldsIf(ctx context.Context, id string, guard bson.M, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	filter := bson.M{"_id": objectID}
	for key, value := range guard {
		filter[key] = value
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return parseError(err)
	}
	if count == 0 {
		return r.notFound()
	}
	return serviceerrors.NewConflictError(fmt.Sprintf("%s %s changed since it was read", r.entity, id))
}

func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return parseError(err)
	}
	if result.DeletedCount == 0 {
		return r.notFound()
	}

	return nil
}

// parseError maps driver errors onto service error kinds. Cancellation is
// returned untouched so callers can tell it apart from an unavailable store.
func parseError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return serviceerrors.NewNotFoundError("entity not found")
	case mongo.IsDuplicateKeyError(err):
		return serviceerrors.NewConflictError("duplicate key error")
	case errors.Is(err, primitive.ErrInvalidHex), isInvalidObjectIDError(err):
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return serviceerrors.NewStoreFailureError("store unavailable", err)
	}
}

func isInvalidObjectIDError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not a valid ObjectID")
}
