package repository

import (
	"context"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/document"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database) port.ProductPort {
	repo := &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, "products", "product"),
	}

	// owner listings and the status windows filter on expiration_date; the sweep scans it in order.
	repo.ensureIndexes(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "expiration_date", Value: 1}}},
		{Keys: bson.D{{Key: "expiration_date", Value: 1}}},
	})

	return repo
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID != "" {
		return serviceerrors.NewConflictError("product already has an id")
	}

	id, err := r.Insert(ctx, document.ToProductDocument(product))
	if err != nil {
		return err
	}

	product.ID = domain.ID(id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.findProducts(ctx, bson.M{})
}

func (r *ProductRepository) GetByOwner(ctx context.Context, ownerID domain.ID) ([]*domain.Product, error) {
	return r.findProducts(ctx, bson.M{"owner_id": string(ownerID)})
}

func (r *ProductRepository) GetByOwnerAndExpirationRange(ctx context.Context, ownerID domain.ID, from, to *time.Time) ([]*domain.Product, error) {
	filter := bson.M{"owner_id": string(ownerID)}

	dateRange := bson.M{}
	if from != nil {
		dateRange["$gte"] = domain.DateOf(*from)
	}
	if to != nil {
		dateRange["$lte"] = domain.DateOf(*to)
	}
	if len(dateRange) > 0 {
		filter["expiration_date"] = dateRange
	}

	return r.findProducts(ctx, filter)
}

func (r *ProductRepository) findProducts(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "expiration_date", Value: 1},
		{Key: "_id", Value: 1},
	})

	docs, err := r.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToDomain()
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	doc := document.ToProductDocument(product)

	return r.SetFields(ctx, string(product.ID), bson.M{
		"name":            doc.Name,
		"expiration_date": doc.ExpirationDate,
		"quantity":        doc.Quantity,
		"category_id":     doc.CategoryID,
		"expiry_status":   doc.ExpiryStatus,
		"updated_at":      doc.UpdatedAt,
	})
}

// UpdateExpiryStatus writes status only if the stored expiration date and
// status are still the ones in scanned.
func (r *ProductRepository) UpdateExpiryStatus(ctx context.Context, scanned *domain.Product, status domain.ExpiryStatus) error {
	doc := document.ToProductDocument(scanned)

	return r.SetFieldsIf(ctx, string(scanned.ID), bson.M{
		"expiration_date": doc.ExpirationDate,
		"expiry_status":   doc.ExpiryStatus,
	}, bson.M{
		"expiry_status": string(status),
		"updated_at":    time.Now(),
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}
