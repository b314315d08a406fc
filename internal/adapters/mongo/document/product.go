package document

import (
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	OwnerID        string              `bson:"owner_id"`
	Name           string              `bson:"name"`
	ExpirationDate time.Time           `bson:"expiration_date"`
	Quantity       int                 `bson:"quantity"`
	CategoryID     *primitive.ObjectID `bson:"category_id"`
	ExpiryStatus   string              `bson:"expiry_status"`
	CreatedAt      time.Time           `bson:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at"`
}

func (doc ProductDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() *domain.Product {
	product := &domain.Product{
		ID:             domain.ID(doc.ID.Hex()),
		OwnerID:        domain.ID(doc.OwnerID),
		Name:           doc.Name,
		ExpirationDate: domain.DateOf(doc.ExpirationDate.UTC()),
		Quantity:       doc.Quantity,
		ExpiryStatus:   domain.ExpiryStatus(doc.ExpiryStatus),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}

	if doc.CategoryID != nil {
		categoryID := domain.ID(doc.CategoryID.Hex())
		product.CategoryID = &categoryID
	}

	return product
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	doc := &ProductDocument{
		OwnerID:        string(p.OwnerID),
		Name:           p.Name,
		ExpirationDate: domain.DateOf(p.ExpirationDate),
		Quantity:       p.Quantity,
		ExpiryStatus:   string(p.ExpiryStatus),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if objectID, ok := objectIDOf(p.ID); ok {
		doc.ID = objectID
	}

	if p.CategoryID != nil {
		if categoryID, ok := objectIDOf(*p.CategoryID); ok {
			doc.CategoryID = &categoryID
		}
	}

	return doc
}
