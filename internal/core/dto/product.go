package dto

// ProductRequest carries the writable fields of a product for create and update.
// Update is a full replacement: a missing category_id clears the category.
type ProductRequest struct {
	Name           string  `json:"name" binding:"required"`
	ExpirationDate string  `json:"expiration_date" binding:"required" example:"2026-01-31"`
	Quantity       int     `json:"quantity" binding:"required"`
	CategoryID     *string `json:"category_id,omitempty"`
}
