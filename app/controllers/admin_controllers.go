package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/bind"
	"github.com/pethive/pethive/pkg/response"
	"github.com/pethive/pethive/pkg/storage"
)

// AdminController serves the dashboard, catalog management, the support
// console and image uploads. Every route sits behind the admin gate.
type AdminController struct {
	stats   *services.StatsService
	catalog *services.CatalogService
	chat    *services.ChatService
}

func NewAdminController(stats *services.StatsService, catalog *services.CatalogService, chat *services.ChatService) *AdminController {
	return &AdminController{stats: stats, catalog: catalog, chat: chat}
}

// ── Dashboard ──

func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.stats.GetStats(r.URL.Query().Get("range")))
}

func (c *AdminController) ResetStats(w http.ResponseWriter, r *http.Request) {
	if err := c.stats.ResetStats(); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Order history cleared"})
}

// ── Products ──

func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body services.ProductInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.CreateProduct(body)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"product": product})
}

func (c *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}

	var patch services.ProductPatch
	if _, err := bind.JSON(r, &patch); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.catalog.UpdateProduct(id, patch)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteProduct(id); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Product deleted"})
}

// ── Categories ──

type categoryInput struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

func (c *AdminController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.catalog.CreateCategory(body.Name, body.Slug)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"category": cat})
}

func (c *AdminController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}

	var body categoryInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.catalog.UpdateCategory(id, body.Name, body.Slug)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"category": cat})
}

func (c *AdminController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteCategory(id); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Category deleted"})
}

// ── Support console ──

func (c *AdminController) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := c.chat.AllMessages()
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"messages": msgs})
}

type adminMessageInput struct {
	Content string `json:"content" validate:"required"`
	UserID  uint   `json:"userId"`
}

func (c *AdminController) PostMessage(w http.ResponseWriter, r *http.Request) {
	var body adminMessageInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.chat.PostAsAdmin(body.UserID, body.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"message": msg})
}

func (c *AdminController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := c.chat.AdminDelete(paramUint(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Deleted"})
}

func (c *AdminController) ClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := c.chat.ClearAll(); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "All messages cleared"})
}

// ── Uploads ──

const maxUploadBytes = 8 << 20 // 8 MB

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Upload stores a product image on the configured disk and returns its
// public URL for use in Product.Images.
func (c *AdminController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ValidationError(w, map[string]string{"file": "A file field is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		response.ValidationError(w, map[string]string{"file": "Unsupported image type"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Could not read upload")
		return
	}

	path := fmt.Sprintf("images/products/%d%s", time.Now().UnixNano(), ext)
	if err := storage.Put(path, data); err != nil {
		response.Unavailable(w, "Storage temporarily unavailable")
		return
	}

	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
