package catalog

import (
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated             = "ProductCreated"
	EventTypeProductUpdated             = "ProductUpdated"
	EventTypeProductAvailabilityChanged = "ProductAvailabilityChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Brand     Brand     `json:"brand"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
}

// ProductAvailabilityChangedEvent is published when availability flips
type ProductAvailabilityChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Available bool      `json:"available"`
}

// NewProductAvailabilityChangedEvent creates a new ProductAvailabilityChangedEvent
func NewProductAvailabilityChangedEvent(product *Product) *ProductAvailabilityChangedEvent {
	return &ProductAvailabilityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductAvailabilityChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Available:       product.Available,
	}
}
