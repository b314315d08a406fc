package document

import (
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a stored record keyed by an ObjectID.
type Document interface {
	GetID() primitive.ObjectID
}

// objectIDOf converts a domain id; ok is false for ids that are not ObjectID hex.
func objectIDOf(id domain.ID) (primitive.ObjectID, bool) {
	objectID, err := primitive.ObjectIDFromHex(string(id))
	return objectID, err == nil
}
