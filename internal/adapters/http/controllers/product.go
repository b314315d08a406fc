package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http/handlers"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http/middleware"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/dto"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

type ProductController struct {
	productService *service.ProductService
}

type ProductResponse struct {
	ID             string    `json:"id" example:"65f1c2a9e4b0a1b2c3d4e5f6"`
	Name           string    `json:"name" example:"Milk"`
	ExpirationDate string    `json:"expiration_date" example:"2024-06-13"`
	Quantity       int       `json:"quantity" example:"2"`
	CategoryID     *string   `json:"category_id"`
	CategoryName   *string   `json:"category_name"`
	ExpiryStatus   string    `json:"expiry_status" example:"YELLOW"`
	DaysRemaining  int       `json:"days_remaining" example:"3"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	response := ProductResponse{
		ID:             string(product.ID),
		Name:           product.Name,
		ExpirationDate: product.ExpirationDate.Format(domain.DateLayout),
		Quantity:       product.Quantity,
		ExpiryStatus:   string(product.ExpiryStatus),
		DaysRemaining:  product.DaysRemaining,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}

	if product.CategoryID != nil {
		categoryID := string(*product.CategoryID)
		response.CategoryID = &categoryID
	}
	if product.Category != nil {
		response.CategoryName = &product.Category.Name
	}

	return response
}

func newProductListResponse(products []*domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}
	return response
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List godoc
// @Summary     List products
// @Description Returns the caller's products with their current expiry status
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  ProductResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.productService.List(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// ListByStatus godoc
// @Summary     List products by expiry status
// @Description Returns the caller's products whose current status is GREEN, YELLOW or RED
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       status path     string true "Expiry status" Enums(GREEN, YELLOW, RED)
// @Success     200    {array}  ProductResponse
// @Failure     400    {object} handlers.ErrorResponse
// @Failure     401    {object} handlers.ErrorResponse
// @Router      /api/v1/products/status/{status} [get]
func (pc *ProductController) ListByStatus(c *gin.Context) {
	status, ok := domain.ParseExpiryStatus(c.Param("status"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("status must be one of GREEN, YELLOW, RED"))
		return
	}

	products, err := pc.productService.ListByStatus(c.Request.Context(), middleware.CallerID(c), status)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductListResponse(products))
}

// Get godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     403 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.productService.Get(c.Request.Context(), middleware.CallerID(c), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Create godoc
// @Summary     Create a product
// @Description Creates a product owned by the caller, with idempotency support
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key header   string             false "Idempotency key"
// @Param       request         body     dto.ProductRequest true  "Product data"
// @Success     201             {object} ProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) Create(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	product, err := pc.productService.CreateIdempotent(c.Request.Context(), middleware.CallerID(c), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// Update godoc
// @Summary     Replace a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string             true "Product ID"
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     403     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) Update(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	product, err := pc.productService.Update(c.Request.Context(), middleware.CallerID(c), domain.ID(c.Param("id")), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Delete godoc
// @Summary     Delete a product
// @Tags        products
// @Security    BearerAuth
// @Param       id  path string true "Product ID"
// @Success     204
// @Failure     403 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) Delete(c *gin.Context) {
	if err := pc.productService.Delete(c.Request.Context(), middleware.CallerID(c), domain.ID(c.Param("id"))); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
