package services

import (
	"regexp"
	"strings"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/orm"
)

// CatalogService serves the public product/category surface and the admin
// catalog mutations. Public reads degrade to demo data; admin writes report
// real failures.
type CatalogService struct {
	catalog *repositories.CatalogRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{catalog: repositories.NewCatalogRepository()}
}

// ListCategories returns all categories by name. Zero rows or a store error
// substitutes the fixed demo taxonomy.
func (s *CatalogService) ListCategories() []models.Category {
	return fallback.With(func() ([]models.Category, error) {
		if !database.Available() {
			return nil, ErrStoreUnavailable
		}
		cats, err := s.catalog.AllCategories()
		if err != nil {
			logger.Warn("catalog: category list degraded to demo data", "error", err)
			return nil, err
		}
		if len(cats) == 0 {
			return nil, errEmptyStore
		}
		return cats, nil
	}, fallback.Categories)
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products   []models.Product
	Pagination orm.Pagination
}

// ListProducts filters by category slug and case-insensitive substring on
// name/description, then paginates. Demo substitution happens only on a
// store error or an unfiltered empty catalog; a filtered empty result is a
// real empty result.
func (s *CatalogService) ListProducts(f repositories.ProductFilter) ProductPage {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}

	filtered := f.CategorySlug != "" || f.Search != ""

	return fallback.With(func() (ProductPage, error) {
		if !database.Available() {
			return ProductPage{}, ErrStoreUnavailable
		}
		products, pagination, err := s.catalog.Products(f)
		if err != nil {
			logger.Warn("catalog: product list degraded to demo data", "error", err)
			return ProductPage{}, err
		}
		if pagination.Total == 0 && !filtered {
			return ProductPage{}, errEmptyStore
		}
		return ProductPage{Products: products, Pagination: pagination}, nil
	}, func() ProductPage { return s.demoPage(f) })
}

func (s *CatalogService) demoPage(f repositories.ProductFilter) ProductPage {
	products := fallback.Products()

	if f.CategorySlug != "" {
		var kept []models.Product
		for _, p := range products {
			if p.Category != nil && p.Category.Slug == f.CategorySlug {
				kept = append(kept, p)
			}
		}
		products = kept
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		var kept []models.Product
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	total := int64(len(products))
	start := (f.Page - 1) * f.Limit
	if start > len(products) {
		start = len(products)
	}
	end := start + f.Limit
	if end > len(products) {
		end = len(products)
	}

	return ProductPage{
		Products:   products[start:end],
		Pagination: orm.NewPagination(total, f.Page, f.Limit),
	}
}

// GetProduct returns one product with its category. A store miss checks the
// demo list before failing ErrNotFound.
func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	if database.Available() {
		p, err := s.catalog.FindProduct(id)
		if err == nil {
			return p, nil
		}
		if !isMiss(err) {
			logger.Warn("catalog: product lookup degraded to demo data", "error", err)
		}
	}

	if p, ok := fallback.FindProduct(id); ok {
		return p, nil
	}
	return models.Product{}, ErrNotFound
}

// ── Admin mutations ──

var slugCleaner = regexp.MustCompile(`[^\w-]+`)

// Slugify derives a URL slug from a name when none is supplied.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	return slugCleaner.ReplaceAllString(s, "")
}

// CreateCategory persists a new category, generating a slug from the name
// when absent. A duplicate slug is ErrSlugTaken.
func (s *CatalogService) CreateCategory(name, slug string) (models.Category, error) {
	if !database.Available() {
		return models.Category{}, ErrStoreUnavailable
	}
	if slug == "" {
		slug = Slugify(name)
	}

	if _, err := s.catalog.FindCategoryBySlug(slug); err == nil {
		return models.Category{}, ErrSlugTaken
	} else if !isMiss(err) {
		return models.Category{}, ErrStoreUnavailable
	}

	cat := models.Category{Name: name, Slug: slug}
	if err := s.catalog.CreateCategory(&cat); err != nil {
		return models.Category{}, ErrStoreUnavailable
	}
	return cat, nil
}

// UpdateCategory renames a category and refreshes its slug.
func (s *CatalogService) UpdateCategory(id uint, name, slug string) (models.Category, error) {
	if !database.Available() {
		return models.Category{}, ErrStoreUnavailable
	}

	cat, err := s.catalog.FindCategory(id)
	if err != nil {
		if isMiss(err) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, ErrStoreUnavailable
	}

	if slug == "" {
		slug = Slugify(name)
	}
	if other, err := s.catalog.FindCategoryBySlug(slug); err == nil && other.ID != id {
		return models.Category{}, ErrSlugTaken
	}

	cat.Name = name
	cat.Slug = slug
	if err := s.catalog.UpdateCategory(&cat); err != nil {
		return models.Category{}, ErrStoreUnavailable
	}
	return cat, nil
}

// DeleteCategory removes an empty category. A category with referencing
// products is ErrCategoryInUse.
func (s *CatalogService) DeleteCategory(id uint) error {
	if !database.Available() {
		return ErrStoreUnavailable
	}

	if _, err := s.catalog.FindCategory(id); err != nil {
		if isMiss(err) {
			return ErrNotFound
		}
		return ErrStoreUnavailable
	}

	n, err := s.catalog.CountProductsInCategory(id)
	if err != nil {
		return ErrStoreUnavailable
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	if err := s.catalog.DeleteCategory(id); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// ProductInput carries an admin product create/update payload.
type ProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"gte=0"`
	Stock       int              `json:"stock" validate:"gte=0"`
	Discount    float64          `json:"discount" validate:"gte=0,lte=100"`
	IsOffer     bool             `json:"isOffer"`
	Images      models.ImageList `json:"images"`
	CategoryID  uint             `json:"categoryId"`
}

// CreateProduct persists a new product.
func (s *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	if !database.Available() {
		return models.Product{}, ErrStoreUnavailable
	}

	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Discount:    in.Discount,
		IsOffer:     in.IsOffer,
		Images:      in.Images,
		CategoryID:  in.CategoryID,
	}
	if err := s.catalog.CreateProduct(&p); err != nil {
		return models.Product{}, ErrStoreUnavailable
	}
	return p, nil
}

// ProductPatch carries a partial admin update; nil fields are untouched.
type ProductPatch struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Stock       *int              `json:"stock"`
	Discount    *float64          `json:"discount"`
	IsOffer     *bool             `json:"isOffer"`
	Images      *models.ImageList `json:"images"`
	CategoryID  *uint             `json:"categoryId"`
}

// UpdateProduct applies a partial update to a product.
func (s *CatalogService) UpdateProduct(id uint, patch ProductPatch) (models.Product, error) {
	if !database.Available() {
		return models.Product{}, ErrStoreUnavailable
	}

	p, err := s.catalog.FindProduct(id)
	if err != nil {
		if isMiss(err) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, ErrStoreUnavailable
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Discount != nil {
		p.Discount = *patch.Discount
	}
	if patch.IsOffer != nil {
		p.IsOffer = *patch.IsOffer
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}

	if err := s.catalog.UpdateProduct(&p); err != nil {
		return models.Product{}, ErrStoreUnavailable
	}
	return p, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id uint) error {
	if !database.Available() {
		return ErrStoreUnavailable
	}
	if _, err := s.catalog.FindProduct(id); err != nil {
		if isMiss(err) {
			return ErrNotFound
		}
		return ErrStoreUnavailable
	}
	return s.catalog.DeleteProduct(id)
}
