package seeders

import (
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers upserts the demo admin and demo customer so password login
// works out of the box against a fresh store.
func SeedUsers(db *gorm.DB) error {
	accounts := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{config.DemoAdminEmail(), config.DemoAdminPassword(), "Demo Admin", models.RoleAdmin},
		{config.DemoCustomerEmail(), config.DemoCustomerPassword(), "Demo Customer", models.RoleCustomer},
	}

	for _, acct := range accounts {
		hash, err := auth.HashPassword(acct.password)
		if err != nil {
			return err
		}

		var user models.User
		err = db.Where("email = ?", acct.email).First(&user).Error
		switch err {
		case nil:
			user.Password = hash
			user.Role = acct.role
			if err := db.Save(&user).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			user = models.User{
				Email:    acct.email,
				Password: hash,
				Name:     acct.name,
				Role:     acct.role,
				Picture:  "https://via.placeholder.com/150",
			}
			if err := db.Create(&user).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}
