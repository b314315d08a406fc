package port

import (
	"context"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type CategoryPort interface {
	GetByID(ctx context.Context, id domain.ID) (*domain.Category, error)
}
