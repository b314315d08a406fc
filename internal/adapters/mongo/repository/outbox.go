package repository

import (
	"context"

	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/document"
	"github.com/rafaelleal24/smartpantry/internal/adapters/outbox"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
}

func NewOutboxRepository(db *mongo.Database) outbox.Repository {
	repo := &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, "outbox", "outbox entry"),
	}

	repo.ensureIndexes(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})

	return repo
}

// Insert joins the caller's transaction when ctx carries one.
func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	_, err := r.BaseRepository.Insert(ctx, document.ToOutboxDocument(entry))
	return err
}

// FetchPending returns the oldest entries first so events leave in commit order.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]outbox.Entry, len(docs))
	for i := range docs {
		entries[i] = docs[i].ToEntry()
	}
	return entries, nil
}

// Delete is a no-op for entries another relay already removed.
func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	err := r.DeleteByID(ctx, id)
	if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return nil
	}
	return err
}
