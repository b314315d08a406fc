package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

const categoryCacheTTL = 10 * time.Minute

type CategoryService struct {
	categoryRepository port.CategoryPort
	categoryCache      port.CachePort[domain.Category]
}

func NewCategoryService(categoryRepository port.CategoryPort, categoryCache port.CachePort[domain.Category]) *CategoryService {
	return &CategoryService{
		categoryRepository: categoryRepository,
		categoryCache:      categoryCache,
	}
}

func (s *CategoryService) getCacheKey(id domain.ID) string {
	return fmt.Sprintf("category:%s", id)
}

func (s *CategoryService) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	if !id.Valid() {
		return nil, serviceerrors.NewNotFoundError("category not found")
	}

	cached, err := s.categoryCache.Get(ctx, s.getCacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get category failed", err, map[string]any{
			"category_id": id,
		})
	}
	if cached != nil {
		return cached, nil
	}

	category, err := s.categoryRepository.GetByID(ctx, id)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("category not found")
		}
		return nil, err
	}

	if err := s.categoryCache.Set(ctx, s.getCacheKey(id), category, categoryCacheTTL); err != nil {
		logger.Error(ctx, "cache: set category failed", err, map[string]any{
			"category_id": id,
		})
	}

	return category, nil
}

func (s *CategoryService) Exists(ctx context.Context, id domain.ID) error {
	_, err := s.GetByID(ctx, id)
	return err
}
