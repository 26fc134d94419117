package catalog

import (
	"fmt"

	"github.com/Mdev98/fast-food-api/internal/domain/shared"
)

// Brand identifies which restaurant a product or order belongs to
type Brand string

const (
	BrandPlaneteKebab Brand = "planete_kebab"
	BrandMamapizza    Brand = "mamapizza"
)

// AllBrands lists every known brand
func AllBrands() []Brand {
	return []Brand{BrandPlaneteKebab, BrandMamapizza}
}

// IsValid returns true if the brand is a known brand
func (b Brand) IsValid() bool {
	switch b {
	case BrandPlaneteKebab, BrandMamapizza:
		return true
	}
	return false
}

// String returns the string representation of the brand
func (b Brand) String() string {
	return string(b)
}

// DisplayName returns the human-readable brand name
func (b Brand) DisplayName() string {
	switch b {
	case BrandPlaneteKebab:
		return "Planete Kebab"
	case BrandMamapizza:
		return "Mamapizza"
	}
	return string(b)
}

// ParseBrand converts a string into a Brand, returning a domain error
// for unknown values
func ParseBrand(s string) (Brand, error) {
	b := Brand(s)
	if !b.IsValid() {
		return "", shared.NewDomainError("INVALID_BRAND", fmt.Sprintf("Unknown brand: %s", s))
	}
	return b, nil
}
