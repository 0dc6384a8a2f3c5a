package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/pkg/testkit"
)

func setupCatalog(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := testkit.SetupDB(t, &models.Category{}, &models.Product{})
	return NewCatalogService(), db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Category) {
	t.Helper()
	dogs := models.Category{Name: "Dogs", Slug: "dogs"}
	cats := models.Category{Name: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(&dogs).Error)
	require.NoError(t, db.Create(&cats).Error)

	products := []models.Product{
		{Name: "Premium Dog Food", Price: 29.99, Stock: 10, CategoryID: dogs.ID},
		{Name: "Dog Leash", Price: 12.50, Stock: 25, CategoryID: dogs.ID},
		{Name: "Organic Catnip", Price: 6.99, Stock: 40, CategoryID: cats.ID},
	}
	require.NoError(t, db.Create(&products).Error)
	return dogs, cats
}

func TestListProductsFiltersByCategory(t *testing.T) {
	svc, db := setupCatalog(t)
	seedCatalog(t, db)

	page := svc.ListProducts(repositories.ProductFilter{CategorySlug: "dogs"})
	require.Len(t, page.Products, 2)
	for _, p := range page.Products {
		assert.Equal(t, "Dogs", p.Category.Name)
	}
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestListProductsSearch(t *testing.T) {
	svc, db := setupCatalog(t)
	seedCatalog(t, db)

	page := svc.ListProducts(repositories.ProductFilter{Search: "catnip"})
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Organic Catnip", page.Products[0].Name)
}

func TestListProductsPagination(t *testing.T) {
	svc, db := setupCatalog(t)
	seedCatalog(t, db)

	page := svc.ListProducts(repositories.ProductFilter{Page: 1, Limit: 2})
	assert.Len(t, page.Products, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	page = svc.ListProducts(repositories.ProductFilter{Page: 2, Limit: 2})
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestListProductsEmptyStoreServesDemo(t *testing.T) {
	svc, _ := setupCatalog(t)

	// An unfiltered empty catalogue means the store was never stocked, so
	// visitors get the demo products instead of an empty shop.
	page := svc.ListProducts(repositories.ProductFilter{})
	assert.Len(t, page.Products, len(fallback.Products()))
}

func TestListProductsEmptyFilteredResultStaysEmpty(t *testing.T) {
	svc, db := setupCatalog(t)
	seedCatalog(t, db)

	page := svc.ListProducts(repositories.ProductFilter{Search: "no-such-thing"})
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.Pagination.Total)
}

func TestGetProduct(t *testing.T) {
	svc, db := setupCatalog(t)
	seedCatalog(t, db)

	var stored models.Product
	require.NoError(t, db.First(&stored, "name = ?", "Dog Leash").Error)

	p, err := svc.GetProduct(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dog Leash", p.Name)

	_, err = svc.GetProduct(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCategoriesServesDemoWhenEmpty(t *testing.T) {
	svc, _ := setupCatalog(t)
	assert.Len(t, svc.ListCategories(), len(fallback.Categories()))
}

func TestCreateCategorySlugs(t *testing.T) {
	svc, _ := setupCatalog(t)

	c, err := svc.CreateCategory("Small Pets", "")
	require.NoError(t, err)
	assert.Equal(t, "small-pets", c.Slug)

	_, err = svc.CreateCategory("Other Small Pets", "small-pets")
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestDeleteCategoryBlockedWhileInUse(t *testing.T) {
	svc, db := setupCatalog(t)
	dogs, _ := seedCatalog(t, db)

	err := svc.DeleteCategory(dogs.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	require.NoError(t, db.Where("category_id = ?", dogs.ID).Delete(&models.Product{}).Error)
	assert.NoError(t, svc.DeleteCategory(dogs.ID))
}

func TestProductCRUD(t *testing.T) {
	svc, db := setupCatalog(t)
	dogs, _ := seedCatalog(t, db)

	created, err := svc.CreateProduct(ProductInput{
		Name:       "Chew Toy",
		Price:      4.99,
		Stock:      100,
		CategoryID: dogs.ID,
		Images:     models.ImageList{"chew.jpg"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	price := 3.49
	updated, err := svc.UpdateProduct(created.ID, ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 3.49, updated.Price)
	assert.Equal(t, "Chew Toy", updated.Name)

	require.NoError(t, svc.DeleteProduct(created.ID))
	err = db.First(&models.Product{}, created.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "small-pets", Slugify("Small Pets"))
	assert.Equal(t, "reptiles", Slugify("  Reptiles  "))
	assert.Equal(t, "small-pets", Slugify("Small Pets!"))
}
