package port

import (
	"context"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByOwner(ctx context.Context, ownerID domain.ID) ([]*domain.Product, error)
	// GetByOwnerAndExpirationRange filters on an inclusive date range; a nil bound is open.
	GetByOwnerAndExpirationRange(ctx context.Context, ownerID domain.ID, from, to *time.Time) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// UpdateExpiryStatus sets status if the stored expiration date and status
	// still equal scanned's. Conflict when they moved on, NotFound when deleted.
	UpdateExpiryStatus(ctx context.Context, scanned *domain.Product, status domain.ExpiryStatus) error
	Delete(ctx context.Context, id domain.ID) error
}
