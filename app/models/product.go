package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ImageList is an ordered list of image URLs persisted as a JSON-encoded
// string column. Legacy rows may hold a bare URL instead of a JSON array;
// Scan tolerates those and wraps them into a single-element list.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("models: marshal images: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}

	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("models: cannot scan %T into ImageList", src)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = ImageList{}
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		*l = list
		return nil
	}

	// Legacy value: a plain URL stored directly in the column.
	*l = ImageList{raw}
	return nil
}

// Product is a catalogue item. Images round-trip through ImageList; Category
// is preloaded on reads that need it.
type Product struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Discount    float64   `gorm:"not null;default:0" json:"discount"`
	IsOffer     bool      `gorm:"not null;default:false" json:"isOffer"`
	Images      ImageList `gorm:"type:text" json:"images"`
	CategoryID  uint      `gorm:"index" json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
}
