package repositories

import (
	"time"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/orm"
)

const (
	categoriesCacheKey = "pethive:categories"
	categoriesCacheTTL = 5 * time.Minute
)

// CatalogRepository handles database operations for Category and Product.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// AllCategories returns every category sorted by name, served from Redis
// when warm. Category mutations drop the cached list.
func (r *CatalogRepository) AllCategories() ([]models.Category, error) {
	var cats []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name asc").
		Cache(categoriesCacheKey, categoriesCacheTTL, &cats)
	return cats, err
}

// FindCategory looks up a category by primary key.
func (r *CatalogRepository) FindCategory(id uint) (models.Category, error) {
	var cat models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&cat)
	return cat, err
}

// FindCategoryBySlug looks up a category by its slug.
func (r *CatalogRepository) FindCategoryBySlug(slug string) (models.Category, error) {
	var cat models.Category
	err := orm.DB().Model(&models.Category{}).Where("slug = ?", slug).First(&cat)
	return cat, err
}

// CreateCategory persists a new category.
func (r *CatalogRepository) CreateCategory(cat *models.Category) error {
	if err := orm.DB().Create(cat); err != nil {
		return err
	}
	_ = cache.Del(categoriesCacheKey)
	return nil
}

// UpdateCategory persists changes to a category.
func (r *CatalogRepository) UpdateCategory(cat *models.Category) error {
	if err := orm.DB().Save(cat); err != nil {
		return err
	}
	_ = cache.Del(categoriesCacheKey)
	return nil
}

// DeleteCategory removes a category row.
func (r *CatalogRepository) DeleteCategory(id uint) error {
	if err := orm.DB().Delete(&models.Category{}, id); err != nil {
		return err
	}
	_ = cache.Del(categoriesCacheKey)
	return nil
}

// CountProductsInCategory returns how many products reference the category.
func (r *CatalogRepository) CountProductsInCategory(categoryID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n)
	return n, err
}

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug string
	Search       string
	Page         int
	Limit        int
}

// Products returns a filtered, paginated product page with categories
// preloaded, newest first.
func (r *CatalogRepository) Products(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{})

	if f.CategorySlug != "" {
		q = q.Where("category_id IN (?)",
			orm.DB().Gorm().Model(&models.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", like, like)
	}

	var products []models.Product
	pagination, err := q.Preload("Category").Order("created_at desc").
		GetWithPagination(&products, f.Page, f.Limit)
	return products, pagination, err
}

// CountProducts returns the total product count, unfiltered.
func (r *CatalogRepository) CountProducts() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Count(&n)
	return n, err
}

// FindProduct returns one product with its category preloaded.
func (r *CatalogRepository) FindProduct(id uint) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&p)
	return p, err
}

// ProductNames resolves IDs to names in one query.
func (r *CatalogRepository) ProductNames(ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	var products []models.Product
	if err := orm.DB().Model(&models.Product{}).Where("id IN ?", ids).Get(&products); err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

// CreateProduct persists a new product.
func (r *CatalogRepository) CreateProduct(p *models.Product) error {
	return orm.DB().Create(p)
}

// UpdateProduct persists changes to a product.
func (r *CatalogRepository) UpdateProduct(p *models.Product) error {
	return orm.DB().Save(p)
}

// DeleteProduct removes a product row.
func (r *CatalogRepository) DeleteProduct(id uint) error {
	return orm.DB().Delete(&models.Product{}, id)
}
