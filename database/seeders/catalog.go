package seeders

import (
	"github.com/pethive/pethive/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedCategories upserts the base taxonomy by slug.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Dogs", Slug: "dogs"},
		{Name: "Cats", Slug: "cats"},
		{Name: "Birds", Slug: "birds"},
		{Name: "Fish", Slug: "fish"},
	}

	for _, cat := range categories {
		var existing models.Category
		err := db.Where("slug = ?", cat.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts fills an empty catalog with the starter inventory.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categoryID := func(slug string) uint {
		var cat models.Category
		if err := db.Where("slug = ?", slug).First(&cat).Error; err != nil {
			return 0
		}
		return cat.ID
	}
	dogs := categoryID("dogs")
	cats := categoryID("cats")
	birds := categoryID("birds")
	fish := categoryID("fish")

	img := func(url string) models.ImageList { return models.ImageList{url} }

	products := []models.Product{
		// Dogs
		{
			Name:        "Premium Dog Food",
			Description: "Nutrient-rich kibble for adult dogs. Grain-free and packed with protein.",
			Price:       54.99,
			Stock:       50,
			Images:      img("https://images.unsplash.com/photo-1589924691195-41432c84c161?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},
		{
			Name:        "Durable Dog Leash",
			Description: "Heavy-duty retractable leash, extends up to 16ft.",
			Price:       24.99,
			Stock:       100,
			Images:      img("https://images.unsplash.com/photo-1597843786271-105124152c98?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},
		{
			Name:        "Plush Squeaky Toy",
			Description: "Soft and cuddly squeaky toy for dogs of all sizes.",
			Price:       12.99,
			Stock:       75,
			Images:      img("https://images.unsplash.com/photo-1576201836106-db1758fd1c97?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},
		{
			Name:        "Orthopedic Dog Bed",
			Description: "Memory foam bed for ultimate comfort and joint support.",
			Price:       89.99,
			Stock:       30,
			Images:      img("https://images.unsplash.com/photo-1591946614720-90a587da4a36?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},
		{
			Name:        "Indestructible Chew Ball",
			Description: "Tough rubber ball for aggressive chewers.",
			Price:       15.99,
			Stock:       120,
			Images:      img("https://images.unsplash.com/photo-1549448103-64214a6018b1?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},
		{
			Name:        "Dog Grooming Kit",
			Description: "Complete set with brush, nail clippers, and shampoo.",
			Price:       34.99,
			IsOffer:     true,
			Stock:       40,
			Images:      img("https://images.unsplash.com/photo-1516734212186-a967f81ad0d7?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  dogs,
		},

		// Cats
		{
			Name:        "Interactive Laser Toy",
			Description: "Automatic laser pointer to keep your cat entertained.",
			Price:       19.99,
			Stock:       45,
			Images:      img("https://images.unsplash.com/photo-1545249390-6bdfa286032f?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  cats,
		},
		{
			Name:        "Cat Scratching Post",
			Description: "Sisal-wrapped scratching post with hanging ball.",
			Price:       34.99,
			Stock:       60,
			Images:      img("https://images.unsplash.com/photo-1513245543132-31f507417b26?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  cats,
		},
		{
			Name:        "Organic Catnip",
			Description: "Premium dried catnip leaves for euphoric playtime.",
			Price:       8.99,
			Discount:    10,
			Stock:       150,
			Images:      img("https://images.unsplash.com/photo-1615266895738-11f1371cd7e5?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  cats,
		},
		{
			Name:        "Modern Cat Tower",
			Description: "Multi-level cat tree with condos and perches.",
			Price:       129.99,
			IsOffer:     true,
			Stock:       15,
			Images:      img("https://images.unsplash.com/photo-1592194996308-7b43878e84a6?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  cats,
		},
		{
			Name:        "Automatic Cat Feeder",
			Description: "Programmable feeder to keep your kitty fed on time.",
			Price:       69.99,
			Stock:       25,
			Images:      img("https://images.unsplash.com/photo-1583337130417-3346a1be7dee?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  cats,
		},

		// Birds
		{
			Name:        "Large Bird Cage",
			Description: "Spacious iron cage suitable for parrots and cockatiels.",
			Price:       149.99,
			Stock:       10,
			Images:      img("https://images.unsplash.com/photo-1552728089-57bdde30ebd1?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  birds,
		},
		{
			Name:        "Bird Seed Mix",
			Description: "Nutritious blend of seeds and dried fruit.",
			Price:       14.99,
			Stock:       80,
			Images:      img("https://images.unsplash.com/photo-1603013898634-19c286b24519?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  birds,
		},
		{
			Name:        "Wooden Perch Swing",
			Description: "Natural wood swing for bird cages.",
			Price:       9.99,
			Stock:       50,
			Images:      img("https://images.unsplash.com/photo-1497206365907-f5e1f31d4c63?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  birds,
		},

		// Fish
		{
			Name:        "10 Gallon Aquarium Kit",
			Description: "Starter kit with tank, light, and filter.",
			Price:       79.99,
			Stock:       20,
			Images:      img("https://images.unsplash.com/photo-1522069169874-c58ec4b76be5?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  fish,
		},
		{
			Name:        "Tropical Fish Flakes",
			Description: "Complete diet for all tropical community fish.",
			Price:       6.99,
			Stock:       200,
			Images:      img("https://images.unsplash.com/photo-1535591273668-578e31182c4f?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  fish,
		},
		{
			Name:        "Aquarium Castle Decor",
			Description: "Resin castle ornament for fish to hide in.",
			Price:       18.99,
			Discount:    15,
			Stock:       45,
			Images:      img("https://images.unsplash.com/photo-1534043464124-3866f9191d4d?auto=format&fit=crop&w=500&q=80"),
			CategoryID:  fish,
		},
	}

	return db.Create(&products).Error
}
