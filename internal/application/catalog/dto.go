package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product.
// Price is in whole FCFA.
type CreateProductRequest struct {
	Name                 string   `json:"name" binding:"required,min=1,max=120"`
	Description          string   `json:"description" binding:"max=2000"`
	Price                int64    `json:"price" binding:"required,gt=0"`
	Brand                string   `json:"brand" binding:"required"`
	Category             string   `json:"category" binding:"required,min=1,max=60"`
	Available            *bool    `json:"available"`
	AvailableInCountries []string `json:"available_in_countries"`
}

// CreateProductWithImageRequest creates a product from an external image
// URL, typically a Google Drive share link.
type CreateProductWithImageRequest struct {
	CreateProductRequest
	ImageURL string `json:"image_url" binding:"required,url"`
}

// UpdateProductRequest represents a partial update of a product.
type UpdateProductRequest struct {
	Name                 *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Description          *string  `json:"description" binding:"omitempty,max=2000"`
	Price                *int64   `json:"price" binding:"omitempty,gt=0"`
	Category             *string  `json:"category" binding:"omitempty,min=1,max=60"`
	Available            *bool    `json:"available"`
	AvailableInCountries []string `json:"available_in_countries"`
}

// DeleteImageRequest removes a hosted image by storage key or by the
// URL it is served under. Exactly one of the two must be set.
type DeleteImageRequest struct {
	Key string `json:"key"`
	URL string `json:"url" binding:"omitempty,url"`
}

// HostedImageResponse describes an image hosted in object storage
// without being attached to a product yet.
type HostedImageResponse struct {
	ImageURL    string `json:"image_url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Price                int64     `json:"price"`
	PriceFormatted       string    `json:"price_formatted"`
	Brand                string    `json:"brand"`
	Category             string    `json:"category"`
	ImageURL             string    `json:"image_url"`
	Available            bool      `json:"available"`
	AvailableInCountries []string  `json:"available_in_countries"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Version              int       `json:"version"`
}

// ProductListFilter represents filter options for the product list.
type ProductListFilter struct {
	Search    string `form:"search"`
	Brand     string `form:"brand"`
	Category  string `form:"category"`
	Available *bool  `form:"available"`
	MinPrice  *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice  *int64 `form:"max_price" binding:"omitempty,min=0"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse.
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Price:                p.Price.IntPart(),
		PriceFormatted:       p.PriceMoney().Format(),
		Brand:                string(p.Brand),
		Category:             p.Category,
		ImageURL:             p.ImageURL,
		Available:            p.Available,
		AvailableInCountries: p.AvailableInCountries,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Version:              p.Version,
	}
}

// ToProductResponses converts a slice of domain products.
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
