package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// CartItem is one line of a cart blob.
type CartItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

// CartItems is the serialized cart payload, one JSON blob per row.
type CartItems []CartItem

func (c CartItems) Value() (driver.Value, error) {
	if c == nil {
		c = CartItems{}
	}
	raw, err := json.Marshal([]CartItem(c))
	if err != nil {
		return nil, fmt.Errorf("models: marshal cart items: %w", err)
	}
	return string(raw), nil
}

func (c *CartItems) Scan(src interface{}) error {
	if src == nil {
		*c = CartItems{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("models: cannot scan %T into CartItems", src)
	}

	if len(raw) == 0 {
		*c = CartItems{}
		return nil
	}
	return json.Unmarshal(raw, (*[]CartItem)(c))
}

// Cart holds one row per user; replaced wholesale on sync and deleted on
// successful checkout.
type Cart struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Items  CartItems `gorm:"type:text" json:"items"`
}
