package document

import (
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (doc CategoryDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *CategoryDocument) ToDomain() *domain.Category {
	return &domain.Category{
		ID:   domain.ID(doc.ID.Hex()),
		Name: doc.Name,
	}
}
