package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/dto"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
	categoryService   *CategoryService
	guard             *AccessGuard
	idempotency       *IdempotencyService[domain.Product]
	txManager         port.TransactionManager
	events            port.EventPort
	calendar          *Calendar
}

func NewProductService(
	productRepository port.ProductPort,
	categoryService *CategoryService,
	guard *AccessGuard,
	idempotency *IdempotencyService[domain.Product],
	txManager port.TransactionManager,
	events port.EventPort,
	calendar *Calendar,
) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		categoryService:   categoryService,
		guard:             guard,
		idempotency:       idempotency,
		txManager:         txManager,
		events:            events,
		calendar:          calendar,
	}
}

type productInput struct {
	name           string
	expirationDate time.Time
	quantity       int
	categoryID     *domain.ID
}

func parseProductRequest(request *dto.ProductRequest) (*productInput, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, serviceerrors.NewInvalidRequestError("name must not be blank")
	}
	if request.Quantity < 1 {
		return nil, serviceerrors.NewInvalidRequestError("quantity must be at least 1")
	}
	expirationDate, err := domain.ParseDate(request.ExpirationDate)
	if err != nil {
		return nil, serviceerrors.NewInvalidRequestError("expiration_date must be a date in YYYY-MM-DD format")
	}

	input := &productInput{
		name:           name,
		expirationDate: expirationDate,
		quantity:       request.Quantity,
	}
	if request.CategoryID != nil && strings.TrimSpace(*request.CategoryID) != "" {
		id := domain.ID(strings.TrimSpace(*request.CategoryID))
		input.categoryID = &id
	}
	return input, nil
}

func (s *ProductService) validateCategory(ctx context.Context, id domain.ID) error {
	err := s.categoryService.Exists(ctx, id)
	if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return serviceerrors.NewInvalidRequestError(fmt.Sprintf("category %s not found", id))
	}
	return err
}

// stamp fills the read-time fields. The stored status is never trusted here.
func (s *ProductService) stamp(ctx context.Context, product *domain.Product, today time.Time) *domain.Product {
	product.Stamp(today)
	product.Category = nil

	if product.CategoryID != nil {
		category, err := s.categoryService.GetByID(ctx, *product.CategoryID)
		if err != nil {
			logger.Warn(ctx, "product: category lookup failed", map[string]any{
				"product_id":  product.ID,
				"category_id": *product.CategoryID,
				"error":       err.Error(),
			})
		} else {
			product.Category = category
		}
	}

	return product
}

func (s *ProductService) stampAll(ctx context.Context, products []*domain.Product) []*domain.Product {
	today := s.calendar.Today()
	for _, product := range products {
		s.stamp(ctx, product, today)
	}
	return products
}

func (s *ProductService) List(ctx context.Context, callerID domain.ID) ([]*domain.Product, error) {
	products, err := s.productRepository.GetByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.stampAll(ctx, products), nil
}

func (s *ProductService) ListByStatus(ctx context.Context, callerID domain.ID, status domain.ExpiryStatus) ([]*domain.Product, error) {
	if !status.IsValid() {
		return nil, serviceerrors.NewInvalidRequestError("status must be one of GREEN, YELLOW, RED")
	}

	from, to := domain.ExpiryWindow(status, s.calendar.Today())
	products, err := s.productRepository.GetByOwnerAndExpirationRange(ctx, callerID, from, to)
	if err != nil {
		return nil, err
	}
	return s.stampAll(ctx, products), nil
}

func (s *ProductService) Get(ctx context.Context, callerID domain.ID, id domain.ID) (*domain.Product, error) {
	product, err := s.guard.FindOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	return s.stamp(ctx, product, s.calendar.Today()), nil
}

func (s *ProductService) Create(ctx context.Context, callerID domain.ID, request *dto.ProductRequest) (*domain.Product, error) {
	input, err := parseProductRequest(request)
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	if input.expirationDate.Before(today) {
		return nil, serviceerrors.NewInvalidRequestError("expiration_date must not be in the past")
	}

	if input.categoryID != nil {
		if err := s.validateCategory(ctx, *input.categoryID); err != nil {
			return nil, err
		}
	}

	product := domain.NewProduct(callerID, input.name, input.expirationDate, input.quantity, input.categoryID)
	product.Stamp(today)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Create(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductCreatedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"owner_id":        callerID,
			"name":            input.name,
			"expiration_date": request.ExpirationDate,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{
		"product_id": product.ID,
		"owner_id":   callerID,
	})
	return s.stamp(ctx, product, today), nil
}

// CreateIdempotent behaves like Create, except that repeating a request with
// the same key and payload returns the product created by the first one.
func (s *ProductService) CreateIdempotent(ctx context.Context, callerID domain.ID, idempotencyKey string, request *dto.ProductRequest) (*domain.Product, error) {
	if idempotencyKey == "" {
		return s.Create(ctx, callerID, request)
	}

	key := fmt.Sprintf("product:%s:%s", callerID, idempotencyKey)
	product, replayed, err := s.idempotency.Do(ctx, key, request, func(ctx context.Context) (*domain.Product, error) {
		return s.Create(ctx, callerID, request)
	})
	if err != nil {
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			logger.Error(ctx, "product: idempotent create failed", err, map[string]any{
				"idempotency_key": idempotencyKey,
				"owner_id":        callerID,
			})
		}
		return nil, err
	}
	if replayed {
		logger.Debug(ctx, "product: idempotent replay", map[string]any{
			"idempotency_key": idempotencyKey,
			"product_id":      product.ID,
		})
		return s.stamp(ctx, product, s.calendar.Today()), nil
	}

	return product, nil
}

func (s *ProductService) Update(ctx context.Context, callerID domain.ID, id domain.ID, request *dto.ProductRequest) (*domain.Product, error) {
	product, err := s.guard.FindOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	input, err := parseProductRequest(request)
	if err != nil {
		return nil, err
	}

	if input.categoryID != nil && !sameCategory(product.CategoryID, input.categoryID) {
		if err := s.validateCategory(ctx, *input.categoryID); err != nil {
			return nil, err
		}
	}

	today := s.calendar.Today()
	product.Name = input.name
	product.ExpirationDate = input.expirationDate
	product.Quantity = input.quantity
	product.CategoryID = input.categoryID
	product.UpdatedAt = s.calendar.Now()
	product.Stamp(today)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Update(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductUpdatedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: update failed", err, map[string]any{
			"product_id": id,
			"owner_id":   callerID,
		})
		return nil, err
	}

	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return s.stamp(ctx, product, today), nil
}

func (s *ProductService) Delete(ctx context.Context, callerID domain.ID, id domain.ID) error {
	product, err := s.guard.FindOwned(ctx, id, callerID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Delete(txCtx, product.ID); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductDeletedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: delete failed", err, map[string]any{
			"product_id": id,
			"owner_id":   callerID,
		})
		return err
	}

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}

func sameCategory(a, b *domain.ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
