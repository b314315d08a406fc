package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/port/mock"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

func setupCategoryService(t *testing.T) (*CategoryService, *mock.MockCategoryPort, *mock.MockCachePort[domain.Category]) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCategoryPort(ctrl)
	cache := mock.NewMockCachePort[domain.Category](ctrl)
	return NewCategoryService(repo, cache), repo, cache
}

func TestCategoryService_GetByID(t *testing.T) {
	dairy := &domain.Category{ID: categoryID, Name: "Dairy"}
	key := "category:" + string(categoryID)

	t.Run("cache hit", func(t *testing.T) {
		svc, _, cache := setupCategoryService(t)
		cache.EXPECT().Get(gomock.Any(), key).Return(dairy, nil)

		category, err := svc.GetByID(context.Background(), categoryID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if category.Name != "Dairy" {
			t.Fatalf("expected Dairy, got %q", category.Name)
		}
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		svc, repo, cache := setupCategoryService(t)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), categoryID).Return(dairy, nil)
		cache.EXPECT().Set(gomock.Any(), key, dairy, categoryCacheTTL).Return(nil)

		if _, err := svc.GetByID(context.Background(), categoryID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("cache errors fall through to repository", func(t *testing.T) {
		svc, repo, cache := setupCategoryService(t)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, errors.New("redis down"))
		repo.EXPECT().GetByID(gomock.Any(), categoryID).Return(dairy, nil)
		cache.EXPECT().Set(gomock.Any(), key, dairy, categoryCacheTTL).Return(errors.New("redis down"))

		category, err := svc.GetByID(context.Background(), categoryID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if category.ID != categoryID {
			t.Fatalf("expected %s, got %s", categoryID, category.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, cache := setupCategoryService(t)
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), categoryID).Return(nil, serviceerrors.NewNotFoundError("no documents"))

		err := svc.Exists(context.Background(), categoryID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)

		err := svc.Exists(context.Background(), "dairy")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestCalendar_Today(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 11th is still the 10th in UTC-3.
	instant := time.Date(2024, time.June, 11, 1, 30, 0, 0, time.UTC)

	utc := &Calendar{location: time.UTC, now: func() time.Time { return instant }}
	local := &Calendar{location: saoPaulo, now: func() time.Time { return instant }}

	if got := utc.Today(); !got.Equal(day(1)) {
		t.Fatalf("expected %s in UTC, got %s", day(1), got)
	}
	if got := local.Today(); !got.Equal(today) {
		t.Fatalf("expected %s in UTC-3, got %s", today, got)
	}
	if NewCalendar(nil).Location() != time.UTC {
		t.Fatal("expected nil location to default to UTC")
	}
}
