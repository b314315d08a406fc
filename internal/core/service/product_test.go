package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/dto"
	"github.com/rafaelleal24/smartpantry/internal/core/port/mock"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type productMocks struct {
	products   *mock.MockProductPort
	categories *mock.MockCategoryPort
	cache      *mock.MockCachePort[domain.Category]
	idemCache  *mock.MockCachePort[IdempotencyEntry[domain.Product]]
	txManager  *mock.MockTransactionManager
	events     *mock.MockEventPort
}

func setupProductService(t *testing.T) (*ProductService, *productMocks) {
	ctrl := gomock.NewController(t)
	m := &productMocks{
		products:   mock.NewMockProductPort(ctrl),
		categories: mock.NewMockCategoryPort(ctrl),
		cache:      mock.NewMockCachePort[domain.Category](ctrl),
		idemCache:  mock.NewMockCachePort[IdempotencyEntry[domain.Product]](ctrl),
		txManager:  mock.NewMockTransactionManager(ctrl),
		events:     mock.NewMockEventPort(ctrl),
	}
	svc := NewProductService(
		m.products,
		NewCategoryService(m.categories, m.cache),
		NewAccessGuard(m.products),
		NewIdempotencyService[domain.Product](m.idemCache, 15*time.Minute, 10*time.Millisecond, 100*time.Millisecond),
		m.txManager,
		m.events,
		fixedCalendar(today.Add(15*time.Hour)),
	)
	return svc, m
}

func validRequest(expiration string) *dto.ProductRequest {
	return &dto.ProductRequest{
		Name:           "Milk",
		ExpirationDate: expiration,
		Quantity:       2,
	}
}

func TestProductService_Create(t *testing.T) {
	t.Run("stores stamped product and records event", func(t *testing.T) {
		svc, m := setupProductService(t)

		passThroughTx(m.txManager)
		m.products.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				assert.Equal(t, ownerID, p.OwnerID)
				assert.Equal(t, domain.ExpiryStatusYellow, p.ExpiryStatus)
				p.ID = productID
				return nil
			})
		m.events.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event domain.Event) error {
				assert.Equal(t, domain.ProductCreatedEventName, event.GetName())
				return nil
			})

		product, err := svc.Create(context.Background(), ownerID, validRequest("2024-06-13"))
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Milk", product.Name)
		assert.Equal(t, 2, product.Quantity)
		assert.Equal(t, day(3), product.ExpirationDate)
		assert.Equal(t, domain.ExpiryStatusYellow, product.ExpiryStatus)
		assert.Equal(t, 3, product.DaysRemaining)
		assert.Nil(t, product.Category)
	})

	t.Run("expiring today is accepted", func(t *testing.T) {
		svc, m := setupProductService(t)

		passThroughTx(m.txManager)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		product, err := svc.Create(context.Background(), ownerID, validRequest("2024-06-10"))
		require.NoError(t, err)
		assert.Equal(t, domain.ExpiryStatusYellow, product.ExpiryStatus)
		assert.Equal(t, 0, product.DaysRemaining)
	})

	t.Run("resolves category", func(t *testing.T) {
		svc, m := setupProductService(t)
		category := &domain.Category{ID: categoryID, Name: "Dairy"}
		req := validRequest("2024-07-10")
		req.CategoryID = ptr(string(categoryID))

		m.cache.EXPECT().Get(gomock.Any(), "category:"+string(categoryID)).Return(nil, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), categoryID).Return(category, nil)
		m.cache.EXPECT().Set(gomock.Any(), "category:"+string(categoryID), category, categoryCacheTTL).Return(nil)
		m.cache.EXPECT().Get(gomock.Any(), "category:"+string(categoryID)).Return(category, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		product, err := svc.Create(context.Background(), ownerID, req)
		require.NoError(t, err)
		require.NotNil(t, product.Category)
		assert.Equal(t, "Dairy", product.Category.Name)
		assert.Equal(t, domain.ExpiryStatusGreen, product.ExpiryStatus)
	})

	t.Run("unknown category is rejected without writing", func(t *testing.T) {
		svc, m := setupProductService(t)
		req := validRequest("2024-07-10")
		req.CategoryID = ptr(string(categoryID))

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), categoryID).
			Return(nil, serviceerrors.NewNotFoundError("category not found"))

		product, err := svc.Create(context.Background(), ownerID, req)
		assert.Nil(t, product)
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]*dto.ProductRequest{
			"blank name":        {Name: "  ", ExpirationDate: "2024-07-01", Quantity: 1},
			"zero quantity":     {Name: "Milk", ExpirationDate: "2024-07-01", Quantity: 0},
			"malformed date":    {Name: "Milk", ExpirationDate: "01/07/2024", Quantity: 1},
			"date in the past":  {Name: "Milk", ExpirationDate: "2024-06-09", Quantity: 1},
			"impossible date":   {Name: "Milk", ExpirationDate: "2024-02-30", Quantity: 1},
			"negative quantity": {Name: "Milk", ExpirationDate: "2024-07-01", Quantity: -3},
		}

		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				svc, _ := setupProductService(t)

				product, err := svc.Create(context.Background(), ownerID, req)
				assert.Nil(t, product)
				assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest), "got %v", err)
			})
		}
	})

	t.Run("transaction error", func(t *testing.T) {
		svc, m := setupProductService(t)

		passThroughTx(m.txManager)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		product, err := svc.Create(context.Background(), ownerID, validRequest("2024-06-20"))
		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProductService_CreateIdempotent(t *testing.T) {
	t.Run("replay returns stored product", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(20), domain.ExpiryStatusGreen)
		req := validRequest("2024-06-30")
		key := "product:" + string(ownerID) + ":abc"

		m.idemCache.EXPECT().SetNX(gomock.Any(), key, gomock.Any(), 15*time.Minute).Return(false, nil)
		m.idemCache.EXPECT().Get(gomock.Any(), key).Return(&IdempotencyEntry[domain.Product]{
			Status:      IdempotencyCompleted,
			PayloadHash: hashPayload(req),
			Result:      stored,
		}, nil)

		product, err := svc.CreateIdempotent(context.Background(), ownerID, "abc", req)
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, 20, product.DaysRemaining)
	})

	t.Run("first request creates and completes", func(t *testing.T) {
		svc, m := setupProductService(t)
		key := "product:" + string(ownerID) + ":abc"

		m.idemCache.EXPECT().SetNX(gomock.Any(), key, gomock.Any(), 15*time.Minute).Return(true, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		m.idemCache.EXPECT().Set(gomock.Any(), key, gomock.Any(), 15*time.Minute).Return(nil)

		_, err := svc.CreateIdempotent(context.Background(), ownerID, "abc", validRequest("2024-06-30"))
		require.NoError(t, err)
	})

	t.Run("failure releases the key", func(t *testing.T) {
		svc, m := setupProductService(t)
		key := "product:" + string(ownerID) + ":abc"

		m.idemCache.EXPECT().SetNX(gomock.Any(), key, gomock.Any(), 15*time.Minute).Return(true, nil)
		m.idemCache.EXPECT().Del(gomock.Any(), key).Return(nil)

		_, err := svc.CreateIdempotent(context.Background(), ownerID, "abc", validRequest("2020-01-01"))
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
	})

	t.Run("empty key falls back to plain create", func(t *testing.T) {
		svc, m := setupProductService(t)

		passThroughTx(m.txManager)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.CreateIdempotent(context.Background(), ownerID, "", validRequest("2024-06-30"))
		require.NoError(t, err)
	})
}

func TestProductService_Get(t *testing.T) {
	t.Run("owner sees freshly stamped product", func(t *testing.T) {
		svc, m := setupProductService(t)
		// Stored status is stale: it was green when last written.
		stored := newTestProduct(productID, ownerID, day(-1), domain.ExpiryStatusGreen)
		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)

		product, err := svc.Get(context.Background(), ownerID, productID)
		require.NoError(t, err)
		assert.Equal(t, domain.ExpiryStatusRed, product.ExpiryStatus)
		assert.Equal(t, -1, product.DaysRemaining)
	})

	t.Run("other user is unauthorized", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(5), domain.ExpiryStatusYellow)
		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)

		product, err := svc.Get(context.Background(), strangerID, productID)
		assert.Nil(t, product)
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized))
	})

	t.Run("missing product is not found for everyone", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), productID).
			Return(nil, serviceerrors.NewNotFoundError("product not found"))

		_, err := svc.Get(context.Background(), strangerID, productID)
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindNotFound))
	})

	t.Run("category lookup failure leaves category empty", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		stored.CategoryID = ptr(categoryID)

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), categoryID).
			Return(nil, serviceerrors.NewNotFoundError("category not found"))

		product, err := svc.Get(context.Background(), ownerID, productID)
		require.NoError(t, err)
		assert.Nil(t, product.Category)
		assert.Equal(t, categoryID, *product.CategoryID)
	})
}

func TestProductService_List(t *testing.T) {
	svc, m := setupProductService(t)
	m.products.EXPECT().GetByOwner(gomock.Any(), ownerID).Return([]*domain.Product{
		newTestProduct("a00000000000000000000000", ownerID, day(-3), domain.ExpiryStatusGreen),
		newTestProduct("b00000000000000000000000", ownerID, day(7), domain.ExpiryStatusGreen),
		newTestProduct("c00000000000000000000000", ownerID, day(8), domain.ExpiryStatusGreen),
	}, nil)

	products, err := svc.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, domain.ExpiryStatusRed, products[0].ExpiryStatus)
	assert.Equal(t, domain.ExpiryStatusYellow, products[1].ExpiryStatus)
	assert.Equal(t, domain.ExpiryStatusGreen, products[2].ExpiryStatus)
}

func TestProductService_ListByStatus(t *testing.T) {
	t.Run("yellow queries the warning window", func(t *testing.T) {
		svc, m := setupProductService(t)

		m.products.EXPECT().
			GetByOwnerAndExpirationRange(gomock.Any(), ownerID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ID, from, to *time.Time) ([]*domain.Product, error) {
				require.NotNil(t, from)
				require.NotNil(t, to)
				assert.Equal(t, day(0), *from)
				assert.Equal(t, day(7), *to)
				return []*domain.Product{
					newTestProduct(productID, ownerID, day(2), domain.ExpiryStatusGreen),
				}, nil
			})

		products, err := svc.ListByStatus(context.Background(), ownerID, domain.ExpiryStatusYellow)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, domain.ExpiryStatusYellow, products[0].ExpiryStatus)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _ := setupProductService(t)

		_, err := svc.ListByStatus(context.Background(), ownerID, domain.ExpiryStatus("BLUE"))
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
	})

	t.Run("every listed product carries the requested status", func(t *testing.T) {
		all := make([]*domain.Product, 0, 40)
		for offset := -20; offset < 20; offset++ {
			all = append(all, newTestProduct(productID, ownerID, day(offset), domain.ExpiryStatusGreen))
		}

		for _, status := range []domain.ExpiryStatus{domain.ExpiryStatusGreen, domain.ExpiryStatusYellow, domain.ExpiryStatusRed} {
			svc, m := setupProductService(t)
			m.products.EXPECT().
				GetByOwnerAndExpirationRange(gomock.Any(), ownerID, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.ID, from, to *time.Time) ([]*domain.Product, error) {
					var out []*domain.Product
					for _, p := range all {
						if from != nil && p.ExpirationDate.Before(*from) {
							continue
						}
						if to != nil && p.ExpirationDate.After(*to) {
							continue
						}
						copied := *p
						out = append(out, &copied)
					}
					return out, nil
				})

			products, err := svc.ListByStatus(context.Background(), ownerID, status)
			require.NoError(t, err)
			assert.NotEmpty(t, products)
			for _, p := range products {
				assert.Equal(t, status, p.ExpiryStatus, "expiration %s", p.ExpirationDate.Format(domain.DateLayout))
			}
		}
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("replaces fields and restamps", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		req := &dto.ProductRequest{Name: "Oat milk", ExpirationDate: "2024-06-08", Quantity: 4}

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				assert.Equal(t, domain.ExpiryStatusRed, p.ExpiryStatus)
				return nil
			})
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		product, err := svc.Update(context.Background(), ownerID, productID, req)
		require.NoError(t, err)
		assert.Equal(t, "Oat milk", product.Name)
		assert.Equal(t, 4, product.Quantity)
		assert.Equal(t, -2, product.DaysRemaining)
		assert.Equal(t, domain.ExpiryStatusRed, product.ExpiryStatus)
	})

	t.Run("unchanged category is not revalidated", func(t *testing.T) {
		svc, m := setupProductService(t)
		category := &domain.Category{ID: categoryID, Name: "Dairy"}
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		stored.CategoryID = ptr(categoryID)
		req := validRequest("2024-07-01")
		req.CategoryID = ptr(string(categoryID))

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		// Only the read-time stamp resolves the category.
		m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(category, nil).Times(1)

		product, err := svc.Update(context.Background(), ownerID, productID, req)
		require.NoError(t, err)
		assert.Equal(t, "Dairy", product.Category.Name)
	})

	t.Run("switching to unknown category is rejected without writing", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		stored.CategoryID = ptr(categoryID)
		otherCategory := domain.ID("bbccddeeff00112233445566")
		req := validRequest("2024-07-01")
		req.CategoryID = ptr(string(otherCategory))

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		m.cache.EXPECT().Get(gomock.Any(), "category:"+string(otherCategory)).Return(nil, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), otherCategory).
			Return(nil, serviceerrors.NewNotFoundError("category not found"))

		product, err := svc.Update(context.Background(), ownerID, productID, req)
		assert.Nil(t, product)
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
		assert.Equal(t, categoryID, *stored.CategoryID)
	})

	t.Run("missing category_id clears the category", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		stored.CategoryID = ptr(categoryID)
		req := validRequest("2024-07-01")

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				assert.Nil(t, p.CategoryID)
				return nil
			})
		m.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		product, err := svc.Update(context.Background(), ownerID, productID, req)
		require.NoError(t, err)
		assert.Nil(t, product.CategoryID)
		assert.Nil(t, product.Category)
	})

	t.Run("invalid input is rejected without writing", func(t *testing.T) {
		cases := map[string]*dto.ProductRequest{
			"blank name":    {Name: "   ", ExpirationDate: "2024-07-01", Quantity: 1},
			"zero quantity": {Name: "Milk", ExpirationDate: "2024-07-01", Quantity: 0},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				svc, m := setupProductService(t)
				stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
				m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)

				product, err := svc.Update(context.Background(), ownerID, productID, req)
				assert.Nil(t, product)
				assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
				assert.Equal(t, "Milk", stored.Name)
				assert.Equal(t, 1, stored.Quantity)
			})
		}
	})

	t.Run("other user cannot update", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(30), domain.ExpiryStatusGreen)
		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)

		_, err := svc.Update(context.Background(), strangerID, productID, validRequest("2024-07-01"))
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized))
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("owner deletes and records event", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(3), domain.ExpiryStatusYellow)

		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)
		passThroughTx(m.txManager)
		m.products.EXPECT().Delete(gomock.Any(), productID).Return(nil)
		m.events.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event domain.Event) error {
				assert.Equal(t, domain.ProductDeletedEventName, event.GetName())
				return nil
			})

		require.NoError(t, svc.Delete(context.Background(), ownerID, productID))
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		svc, m := setupProductService(t)
		stored := newTestProduct(productID, ownerID, day(3), domain.ExpiryStatusYellow)
		m.products.EXPECT().GetByID(gomock.Any(), productID).Return(stored, nil)

		err := svc.Delete(context.Background(), strangerID, productID)
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized))
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		svc, _ := setupProductService(t)

		err := svc.Delete(context.Background(), ownerID, "not-an-id")
		assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindNotFound))
	})
}
