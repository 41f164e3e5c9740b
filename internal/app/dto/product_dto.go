package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/shopspring/decimal"
)

func init() {
	// Clients send and expect unit prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
}

// UpdateProductRequest represents the request to replace a product's fields
type UpdateProductRequest struct {
	ID                 uuid.UUID       `json:"id"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
}

// DeleteProductRequest represents the request to delete a product
type DeleteProductRequest struct {
	ID uuid.UUID `json:"id"`
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
}

// ProductListResponse wraps the product collection returned by the list route
type ProductListResponse struct {
	GetByIdProductDtos []*ProductResponse `json:"getByIdProductDtos"`
}

// Validate checks that required fields are present
func (r *CreateProductRequest) Validate() error {
	if r.ProductName == "" {
		return fmt.Errorf("%w: productName is required", domain.ErrValidation)
	}
	return nil
}

// Validate checks that required fields are present
func (r *UpdateProductRequest) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if r.ProductName == "" {
		return fmt.Errorf("%w: productName is required", domain.ErrValidation)
	}
	return nil
}

// Validate checks that required fields are present
func (r *DeleteProductRequest) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	return nil
}

// ToProduct converts a creation request into a domain Product without an ID
func (r *CreateProductRequest) ToProduct() *domain.Product {
	return &domain.Product{
		Name:        r.ProductName,
		Description: r.ProductDescription,
		UnitPrice:   r.UnitPrice,
	}
}

// ToProduct converts an update request into a domain Product keyed by its ID
func (r *UpdateProductRequest) ToProduct() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.ProductName,
		Description: r.ProductDescription,
		UnitPrice:   r.UnitPrice,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:                 p.ID,
		ProductName:        p.Name,
		ProductDescription: p.Description,
		UnitPrice:          p.UnitPrice,
	}
}

// ToProductListResponse converts domain Products to a ProductListResponse, keeping their order
func ToProductListResponse(products []*domain.Product) *ProductListResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return &ProductListResponse{GetByIdProductDtos: responses}
}

// EmptyProductListResponse returns a list response with no entries
func EmptyProductListResponse() *ProductListResponse {
	return &ProductListResponse{GetByIdProductDtos: []*ProductResponse{}}
}
