package services

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses by the controllers.
var (
	ErrEmailTaken         = errors.New("services: email already registered")
	ErrInvalidCredentials = errors.New("services: invalid credentials")
	ErrNotFound           = errors.New("services: not found")
	ErrForbidden          = errors.New("services: forbidden")
	ErrCategoryInUse      = errors.New("services: category has existing products")
	ErrSlugTaken          = errors.New("services: slug already exists")
	ErrStoreUnavailable   = errors.New("services: store unavailable")
	ErrInvalidStatus      = errors.New("services: invalid order status")
)

// errEmptyStore marks a read that succeeded but found nothing to show, so the
// caller can substitute demo data.
var errEmptyStore = errors.New("services: store has no rows")

// isMiss distinguishes "row not found" from infrastructure failure.
func isMiss(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
