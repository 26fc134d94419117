package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultCountry is the ISO code products are available in by default
const DefaultCountry = "SN"

// CountryList holds the ISO country codes a product is sold in.
// Stored as a JSON array column.
type CountryList []string

// DefaultCountryList returns the default availability list
func DefaultCountryList() CountryList {
	return CountryList{DefaultCountry}
}

// Contains reports whether the list includes the given ISO code
func (c CountryList) Contains(code string) bool {
	code = strings.ToUpper(code)
	for _, v := range c {
		if strings.ToUpper(v) == code {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for database storage
func (c CountryList) Value() (driver.Value, error) {
	if len(c) == 0 {
		c = DefaultCountryList()
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *CountryList) Scan(value any) error {
	if value == nil {
		*c = DefaultCountryList()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CountryList", value)
	}
	return json.Unmarshal(data, c)
}
