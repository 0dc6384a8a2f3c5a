// Package fallback holds the deterministic demo data served when the store
// is unreachable or empty. The storefront prefers a believable demo
// experience over surfacing infrastructure errors, so catalog reads, auth
// and the dashboard all degrade to this data instead of failing.
package fallback

import (
	"strings"
	"sync"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/auth"
)

// With returns primary's result, substituting demo data when primary fails.
func With[T any](primary func() (T, error), demo func() T) T {
	v, err := primary()
	if err != nil {
		return demo()
	}
	return v
}

// Demo identity IDs. High enough to never collide with store rows in a demo
// deployment; the admin ID doubles as the role-gate allowlist entry.
const (
	DemoAdminID    uint = 9001
	DemoCustomerID uint = 9002
)

var (
	usersOnce sync.Once
	demoUsers []models.User
)

// Users returns the fixed demo user table: one admin and one customer, with
// passwords bcrypt-hashed on first use from the configured demo credentials.
func Users() []models.User {
	usersOnce.Do(func() {
		adminHash, _ := auth.HashPassword(config.DemoAdminPassword())
		custHash, _ := auth.HashPassword(config.DemoCustomerPassword())

		admin := models.User{
			Email:    config.DemoAdminEmail(),
			Password: adminHash,
			Name:     "Demo Admin",
			Role:     models.RoleAdmin,
			Picture:  "https://via.placeholder.com/150",
		}
		admin.ID = DemoAdminID

		customer := models.User{
			Email:    config.DemoCustomerEmail(),
			Password: custHash,
			Name:     "Demo Customer",
			Role:     models.RoleCustomer,
			Picture:  "https://via.placeholder.com/150",
		}
		customer.ID = DemoCustomerID

		demoUsers = []models.User{admin, customer}
	})
	return demoUsers
}

// FindUser looks up a demo user by email, case-insensitive.
func FindUser(email string) (models.User, bool) {
	for _, u := range Users() {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// IsDemoAdminID reports whether id belongs to the demo-admin allowlist.
func IsDemoAdminID(id uint) bool { return id == DemoAdminID }

// Categories returns the fixed 4-category demo taxonomy.
func Categories() []models.Category {
	cats := []models.Category{
		{Name: "Dogs", Slug: "dogs"},
		{Name: "Cats", Slug: "cats"},
		{Name: "Birds", Slug: "birds"},
		{Name: "Fish", Slug: "fish"},
	}
	for i := range cats {
		cats[i].ID = uint(i + 1)
	}
	return cats
}

// Products returns the fixed demo product list, one highlight per category.
func Products() []models.Product {
	bySlug := map[string]models.Category{}
	for _, c := range Categories() {
		bySlug[c.Slug] = c
	}

	products := []models.Product{
		{
			Name:        "Premium Dog Food",
			Description: "Nutrient-rich kibble for adult dogs. Grain-free and packed with protein.",
			Price:       54.99,
			Stock:       50,
			Images:      models.ImageList{"https://images.unsplash.com/photo-1589924691195-41432c84c161?auto=format&fit=crop&w=500&q=80"},
		},
		{
			Name:        "Interactive Laser Toy",
			Description: "Automatic laser pointer to keep your cat entertained.",
			Price:       19.99,
			Stock:       45,
			Images:      models.ImageList{"https://images.unsplash.com/photo-1545249390-6bdfa286032f?auto=format&fit=crop&w=500&q=80"},
		},
		{
			Name:        "Bird Seed Mix",
			Description: "Nutritious blend of seeds and dried fruit.",
			Price:       14.99,
			Stock:       80,
			Images:      models.ImageList{"https://images.unsplash.com/photo-1603013898634-19c286b24519?auto=format&fit=crop&w=500&q=80"},
		},
		{
			Name:        "10 Gallon Aquarium Kit",
			Description: "Starter kit with tank, light, and filter.",
			Price:       79.99,
			Stock:       20,
			Images:      models.ImageList{"https://images.unsplash.com/photo-1522069169874-c58ec4b76be5?auto=format&fit=crop&w=500&q=80"},
		},
	}

	slugs := []string{"dogs", "cats", "birds", "fish"}
	for i := range products {
		cat := bySlug[slugs[i]]
		products[i].ID = uint(i + 1)
		products[i].CategoryID = cat.ID
		products[i].Category = &cat
	}
	return products
}

// FindProduct looks up a demo product by ID.
func FindProduct(id uint) (models.Product, bool) {
	for _, p := range Products() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
