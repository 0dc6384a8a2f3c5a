package models

import "gorm.io/gorm"

// Category is the product taxonomy. Slug is the URL-facing identifier used
// by catalog filters.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
}
