package service

import (
	"context"
	"fmt"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

// AccessGuard restricts product records to their owner.
type AccessGuard struct {
	productRepository port.ProductPort
}

func NewAccessGuard(productRepository port.ProductPort) *AccessGuard {
	return &AccessGuard{productRepository: productRepository}
}

func (g *AccessGuard) AssertOwnership(product *domain.Product, callerID domain.ID) error {
	if !product.IsOwnedBy(callerID) {
		return serviceerrors.NewUnauthorizedError(fmt.Sprintf("unauthorized access to product %s", product.ID))
	}
	return nil
}

// FindOwned loads a product for its owner. Existence is checked before
// ownership, so an unknown id reads as not found for every caller.
func (g *AccessGuard) FindOwned(ctx context.Context, productID domain.ID, callerID domain.ID) (*domain.Product, error) {
	if !productID.Valid() {
		return nil, productNotFound(productID)
	}

	product, err := g.productRepository.GetByID(ctx, productID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound, serviceerrors.KindInvalidRequest) {
			return nil, productNotFound(productID)
		}
		return nil, err
	}

	if err := g.AssertOwnership(product, callerID); err != nil {
		logger.Warn(ctx, "product: ownership check failed", map[string]any{
			"product_id": productID,
			"caller_id":  callerID,
		})
		return nil, err
	}

	return product, nil
}

func productNotFound(id domain.ID) error {
	return serviceerrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
}
