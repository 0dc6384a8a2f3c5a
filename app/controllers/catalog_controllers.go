package controllers

import (
	"net/http"
	"strconv"

	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/response"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"categories": c.service.ListCategories(),
	})
}

func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result := c.service.ListProducts(repositories.ProductFilter{
		CategorySlug: q.Get("category"),
		Search:       q.Get("search"),
		Page:         page,
		Limit:        limit,
	})
	response.Paginated(w, "products", result.Products, result.Pagination)
}

func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}

	product, err := c.service.GetProduct(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}
