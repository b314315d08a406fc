package domain

import "time"

const productEntityName = "product"

const (
	ProductCreatedEventName             = "product.created"
	ProductUpdatedEventName             = "product.updated"
	ProductDeletedEventName             = "product.deleted"
	ProductExpiryStatusChangedEventName = "product.expiry_status_changed"
)

type ProductEvent struct {
	Name           string       `json:"-"`
	ProductID      ID           `json:"product_id"`
	OwnerID        ID           `json:"owner_id"`
	ProductName    string       `json:"name"`
	ExpirationDate string       `json:"expiration_date"`
	Quantity       int          `json:"quantity"`
	ExpiryStatus   ExpiryStatus `json:"expiry_status"`
	OccurredAt     time.Time    `json:"occurred_at"`
}

func (e *ProductEvent) GetName() string {
	return e.Name
}

func (e *ProductEvent) GetEntityName() string {
	return productEntityName
}

func newProductEvent(name string, p *Product) *ProductEvent {
	return &ProductEvent{
		Name:           name,
		ProductID:      p.ID,
		OwnerID:        p.OwnerID,
		ProductName:    p.Name,
		ExpirationDate: p.ExpirationDate.Format(DateLayout),
		Quantity:       p.Quantity,
		ExpiryStatus:   p.ExpiryStatus,
		OccurredAt:     time.Now(),
	}
}

func NewProductCreatedEvent(p *Product) *ProductEvent {
	return newProductEvent(ProductCreatedEventName, p)
}

func NewProductUpdatedEvent(p *Product) *ProductEvent {
	return newProductEvent(ProductUpdatedEventName, p)
}

func NewProductDeletedEvent(p *Product) *ProductEvent {
	return newProductEvent(ProductDeletedEventName, p)
}

type ProductExpiryStatusChangedEvent struct {
	ProductID     ID           `json:"product_id"`
	OwnerID       ID           `json:"owner_id"`
	Status        ExpiryStatus `json:"status"`
	OldStatus     ExpiryStatus `json:"old_status"`
	DaysRemaining int          `json:"days_remaining"`
	ReferenceDate string       `json:"reference_date"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (e *ProductExpiryStatusChangedEvent) GetName() string {
	return ProductExpiryStatusChangedEventName
}

func (e *ProductExpiryStatusChangedEvent) GetEntityName() string {
	return productEntityName
}

func NewProductExpiryStatusChangedEvent(p *Product, oldStatus ExpiryStatus, freshness Freshness, referenceDate time.Time) *ProductExpiryStatusChangedEvent {
	return &ProductExpiryStatusChangedEvent{
		ProductID:     p.ID,
		OwnerID:       p.OwnerID,
		Status:        freshness.Status,
		OldStatus:     oldStatus,
		DaysRemaining: freshness.DaysRemaining,
		ReferenceDate: DateOf(referenceDate).Format(DateLayout),
		UpdatedAt:     time.Now(),
	}
}
