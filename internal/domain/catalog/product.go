package catalog

import (
	"strings"
	"time"

	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/Mdev98/fast-food-api/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a menu item sold by one of the brands.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Name                 string          `gorm:"type:varchar(120);not null;index"`
	Description          string          `gorm:"type:text"`
	Price                decimal.Decimal `gorm:"type:decimal(18,0);not null"` // whole FCFA
	Brand                Brand           `gorm:"type:varchar(30);not null;index"`
	Category             string          `gorm:"type:varchar(60);index"`
	ImageURL             string          `gorm:"type:text"`
	Available            bool            `gorm:"not null;default:true"`
	AvailableInCountries CountryList     `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price valueobject.Money, brand Brand, category string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if !brand.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRAND", "Unknown brand: "+string(brand))
	}

	product := &Product{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Description:          description,
		Price:                price.Amount(),
		Brand:                brand,
		Category:             category,
		Available:            true,
		AvailableInCountries: DefaultCountryList(),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// PriceMoney returns the price as a Money value
func (p *Product) PriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Price, valueobject.XOF)
	return m
}

// Update replaces the product's basic information
func (p *Product) Update(name, description string, price valueobject.Money, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price.Amount()
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetImage sets the hosted image URL
func (p *Product) SetImage(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ClearImage removes the image URL
func (p *Product) ClearImage() {
	p.ImageURL = ""
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// MarkAvailable puts the product back on the menu
func (p *Product) MarkAvailable() {
	p.setAvailability(true)
}

// MarkUnavailable takes the product off the menu without deleting it
func (p *Product) MarkUnavailable() {
	p.setAvailability(false)
}

func (p *Product) setAvailability(available bool) {
	if p.Available == available {
		return
	}
	p.Available = available
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductAvailabilityChangedEvent(p))
}

// SetCountries replaces the availability country list
func (p *Product) SetCountries(countries CountryList) error {
	if len(countries) == 0 {
		return shared.NewDomainError("INVALID_COUNTRIES", "At least one country is required")
	}
	normalized := make(CountryList, 0, len(countries))
	for _, c := range countries {
		c = strings.ToUpper(strings.TrimSpace(c))
		if len(c) != 2 {
			return shared.NewDomainError("INVALID_COUNTRIES", "Country codes must be 2-letter ISO codes")
		}
		normalized = append(normalized, c)
	}
	p.AvailableInCountries = normalized
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name is required")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 120 characters")
	}
	return nil
}

func validatePrice(price valueobject.Money) error {
	if price.Currency() != valueobject.XOF {
		return shared.NewDomainError("INVALID_PRICE", "Price must be in XOF")
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	return nil
}
