package domain

import "time"

type Product struct {
	ID             ID           `json:"id"`
	OwnerID        ID           `json:"owner_id"`
	Name           string       `json:"name"`
	ExpirationDate time.Time    `json:"expiration_date"`
	Quantity       int          `json:"quantity"`
	CategoryID     *ID          `json:"category_id,omitempty"`
	ExpiryStatus   ExpiryStatus `json:"expiry_status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Computed on read, never persisted.
	DaysRemaining int       `json:"-"`
	Category      *Category `json:"-"`
}

func NewProduct(ownerID ID, name string, expirationDate time.Time, quantity int, categoryID *ID) *Product {
	now := time.Now()
	return &Product{
		OwnerID:        ownerID,
		Name:           name,
		ExpirationDate: DateOf(expirationDate),
		Quantity:       quantity,
		CategoryID:     categoryID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (p *Product) IsOwnedBy(userID ID) bool {
	return p.OwnerID == userID
}

// Stamp recomputes the freshness fields against today.
func (p *Product) Stamp(today time.Time) Freshness {
	freshness := Classify(p.ExpirationDate, today)
	p.ExpiryStatus = freshness.Status
	p.DaysRemaining = freshness.DaysRemaining
	return freshness
}
