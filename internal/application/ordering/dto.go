package ordering

import (
	"time"

	"github.com/google/uuid"

	"github.com/Mdev98/fast-food-api/internal/domain/ordering"
)

// PlaceOrderItemRequest references a catalog product by id. Prices are
// never taken from the client.
type PlaceOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents a new customer order.
type PlaceOrderRequest struct {
	CustomerName   string                  `json:"customer_name" binding:"required,min=1,max=120"`
	CustomerMobile string                  `json:"customer_mobile" binding:"required"`
	Address        string                  `json:"address" binding:"required,min=1,max=255"`
	Brand          string                  `json:"brand" binding:"required"`
	Details        string                  `json:"details" binding:"max=500"`
	Items          []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to the next status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is a snapshotted line item in API responses.
type OrderItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Subtotal  int64     `json:"subtotal"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	CustomerName   string              `json:"customer_name"`
	CustomerMobile string              `json:"customer_mobile"`
	Address        string              `json:"address"`
	Brand          string              `json:"brand"`
	Details        string              `json:"details"`
	Items          []OrderItemResponse `json:"items"`
	Total          int64               `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// OrderListFilter represents filter options for the order list.
type OrderListFilter struct {
	Search        string     `form:"search"`
	Brand         string     `form:"brand"`
	Status        string     `form:"status"`
	Mobile        string     `form:"mobile"`
	CreatedAfter  *time.Time `form:"created_after" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedBefore *time.Time `form:"created_before" time_format:"2006-01-02T15:04:05Z07:00"`
	Page          int        `form:"page"`
	Limit         int        `form:"limit"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts a domain Order to OrderResponse.
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.IntPart(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal.IntPart(),
		}
	}

	return OrderResponse{
		ID:             o.ID,
		CustomerName:   o.CustomerName,
		CustomerMobile: o.CustomerMobile,
		Address:        o.Address,
		Brand:          string(o.Brand),
		Details:        o.Details,
		Items:          items,
		Total:          o.Total.IntPart(),
		TotalFormatted: o.TotalMoney().Format(),
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Version:        o.Version,
	}
}

// ToOrderResponses converts a slice of domain orders.
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
