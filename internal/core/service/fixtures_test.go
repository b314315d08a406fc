package service

import (
	"context"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

const (
	ownerID    = domain.ID("aaaaaaaaaaaaaaaaaaaaaaaa")
	strangerID = domain.ID("bbbbbbbbbbbbbbbbbbbbbbbb")
	productID  = domain.ID("aabbccddee112233aabbccdd")
	categoryID = domain.ID("cccccccccccccccccccccccc")
)

var today = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func fixedCalendar(now time.Time) *Calendar {
	return &Calendar{location: time.UTC, now: func() time.Time { return now }}
}

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func passThroughTx(txManager *mock.MockTransactionManager) *gomock.Call {
	return txManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func newTestProduct(id domain.ID, owner domain.ID, expiration time.Time, status domain.ExpiryStatus) *domain.Product {
	return &domain.Product{
		ID:             id,
		OwnerID:        owner,
		Name:           "Milk",
		ExpirationDate: expiration,
		Quantity:       1,
		ExpiryStatus:   status,
		CreatedAt:      today,
		UpdatedAt:      today,
	}
}

func ptr[T any](v T) *T {
	return &v
}
