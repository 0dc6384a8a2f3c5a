package models

import "gorm.io/gorm"

// Message is one entry in a support-chat thread. UserID 0 marks an
// admin-originated broadcast not tied to a customer thread.
type Message struct {
	gorm.Model
	UserID  uint   `gorm:"index" json:"userId"`
	Content string `gorm:"type:text;not null" json:"content"`
	IsAdmin bool   `gorm:"not null;default:false" json:"isAdmin"`
	User    *User  `json:"user,omitempty"`
}
