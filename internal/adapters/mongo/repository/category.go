package repository

import (
	"context"

	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/document"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository struct {
	*BaseRepository[document.CategoryDocument]
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		BaseRepository: NewBaseRepository[document.CategoryDocument](db, "categories", "category"),
	}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

// Create is used for seeding; categories are managed outside this service.
func (r *CategoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	id, err := r.Insert(ctx, &document.CategoryDocument{Name: name})
	if err != nil {
		return nil, err
	}

	return &domain.Category{ID: domain.ID(id), Name: name}, nil
}
