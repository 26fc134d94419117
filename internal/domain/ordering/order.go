package ordering

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/Mdev98/fast-food-api/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mobilePattern accepts international numbers after local normalization
var mobilePattern = regexp.MustCompile(`^\+?[1-9]\d{8,14}$`)

// OrderItem is a snapshot of a product at the time the order was placed.
// It never changes afterwards, even if the product is edited or deleted.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewOrderItem snapshots a product into a line item
func NewOrderItem(product *catalog.Product, quantity int) (OrderItem, error) {
	if quantity < 1 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	unitPrice := product.PriceMoney()
	return OrderItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: unitPrice.Amount(),
		Quantity:  quantity,
		Subtotal:  unitPrice.MultiplyByInt(int64(quantity)).Amount(),
	}, nil
}

// SubtotalMoney returns the line subtotal as Money
func (i OrderItem) SubtotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.Subtotal, valueobject.XOF)
	return m
}

// OrderItems is the JSON snapshot column holding all line items
type OrderItems []OrderItem

// Value implements driver.Valuer for database storage
func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner for database retrieval
func (items *OrderItems) Scan(value any) error {
	if value == nil {
		*items = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", value)
	}
	return json.Unmarshal(data, items)
}

// Summary renders a short human-readable list such as "2x Kebab Poulet, 1x Coca"
func (items OrderItems) Summary() string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}

// Order represents a customer order placed with one of the brands.
// It is the aggregate root for ordering operations.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName   string          `gorm:"type:varchar(120);not null"`
	CustomerMobile string          `gorm:"type:varchar(20);not null;index"`
	Address        string          `gorm:"type:text;not null"`
	Brand          catalog.Brand   `gorm:"type:varchar(30);not null;index"`
	Details        string          `gorm:"type:varchar(500)"`
	Items          OrderItems      `gorm:"type:jsonb;not null"`
	Total          decimal.Decimal `gorm:"type:decimal(18,0);not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'received';index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order from product snapshots.
// The total is always recomputed from the items.
func NewOrder(customerName, customerMobile, address string, brand catalog.Brand, details string, items OrderItems) (*Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" || len(customerName) > 120 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name must be 1 to 120 characters")
	}

	mobile, err := NormalizeMobile(customerMobile)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(address)) < 5 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address must be at least 5 characters")
	}
	if !brand.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRAND", "Unknown brand: "+string(brand))
	}
	if len(details) > 500 {
		return nil, shared.NewDomainError("INVALID_DETAILS", "Details cannot exceed 500 characters")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerMobile:    mobile,
		Address:           strings.TrimSpace(address),
		Brand:             brand,
		Details:           details,
		Items:             items,
		Status:            OrderStatusReceived,
	}
	order.recalculateTotal()

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// recalculateTotal recomputes the order total from the item subtotals
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.Total = total
}

// TotalMoney returns the order total as Money
func (o *Order) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.Total, valueobject.XOF)
	return m
}

// UpdateStatus moves the order to the target status.
// Only forward single-step transitions are allowed. Setting the current
// status again is a no-op and leaves the record untouched.
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// NormalizeMobile converts local Senegalese numbers to international form
// and validates the result
func NormalizeMobile(mobile string) (string, error) {
	mobile = strings.ReplaceAll(strings.TrimSpace(mobile), " ", "")
	if !strings.HasPrefix(mobile, "+") {
		switch {
		case strings.HasPrefix(mobile, "70"), strings.HasPrefix(mobile, "75"),
			strings.HasPrefix(mobile, "76"), strings.HasPrefix(mobile, "77"),
			strings.HasPrefix(mobile, "78"):
			mobile = "+221" + mobile
		}
	}
	if !mobilePattern.MatchString(mobile) {
		return "", shared.NewDomainError("INVALID_MOBILE", "Mobile number must be in international format")
	}
	return mobile, nil
}
