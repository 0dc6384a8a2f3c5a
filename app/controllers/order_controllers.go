package controllers

import (
	"fmt"
	"net/http"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/pkg/bind"
	"github.com/pethive/pethive/pkg/middleware"
	"github.com/pethive/pethive/pkg/response"
	"github.com/pethive/pethive/pkg/validate"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type checkoutInput struct {
	Items []services.CheckoutItem `json:"items" validate:"required"`
	Total float64                 `json:"total" validate:"gte=0"`
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body checkoutInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Items) == 0 {
		response.ValidationError(w, map[string]string{"items": "At least one item is required"})
		return
	}
	// validate.Struct does not descend into slices, so each line is checked
	// on its own; field keys carry the item index.
	itemErrs := map[string]string{}
	for i, item := range body.Items {
		for field, msg := range validate.Struct(item) {
			itemErrs[fmt.Sprintf("items.%d.%s", i, field)] = msg
		}
	}
	if len(itemErrs) > 0 {
		response.ValidationError(w, itemErrs)
		return
	}

	order, err := c.service.CreateOrder(principal.ID, principal.Email, body.Items, body.Total)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"order": order})
}

func (c *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.service.ListMyOrders(principal.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"orders": orders})
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order through its lifecycle; mounted in the admin
// group.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := paramUint(r, "id")
	if id == 0 {
		response.NotFound(w)
		return
	}

	var body statusInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(id, body.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"order": order})
}

type cartInput struct {
	Items models.CartItems `json:"items"`
}

func (c *OrderController) SyncCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body cartInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.service.SyncCart(principal.ID, body.Items)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"cart": cart})
}

func (c *OrderController) GetCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	items, err := c.service.GetCart(principal.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"items": items})
}
