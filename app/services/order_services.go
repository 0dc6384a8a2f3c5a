package services

import (
	"math"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/event"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/metrics"
)

// EventOrderCreated fires after a checkout persists; the listener enqueues
// the confirmation job.
const EventOrderCreated = "order.created"

// OrderService handles checkout, order history and the cart blob.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// CheckoutItem is one line of a checkout request.
type CheckoutItem struct {
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// OrderCreatedPayload travels with the EventOrderCreated event.
type OrderCreatedPayload struct {
	OrderID uint
	UserID  uint
	Email   string
	Total   float64
}

// CreateOrder persists the order with item price snapshots taken from the
// client, then deletes the user's cart, ignoring absence. The total is the
// client's number by contract; a disagreement with the item sum is logged
// but not rejected.
func (s *OrderService) CreateOrder(userID uint, email string, items []CheckoutItem, total float64) (models.Order, error) {
	if !database.Available() {
		return models.Order{}, ErrStoreUnavailable
	}

	order := models.Order{
		UserID: userID,
		Total:  total,
		Status: models.OrderPending,
	}
	var sum float64
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		sum += item.Price * float64(item.Quantity)
	}

	if math.Abs(sum-total) > 0.009 {
		logger.Warn("orders: client total disagrees with item sum",
			"user_id", userID, "total", total, "item_sum", sum)
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, ErrStoreUnavailable
	}

	if err := s.orders.DeleteCart(userID); err != nil {
		logger.Warn("orders: cart cleanup failed", "user_id", userID, "error", err)
	}

	metrics.OrdersCreated.Inc()
	event.FireAsync(EventOrderCreated, OrderCreatedPayload{
		OrderID: order.ID,
		UserID:  userID,
		Email:   email,
		Total:   order.Total,
	})

	return order, nil
}

// ListMyOrders returns the user's orders with items and product detail,
// newest first.
func (s *OrderService) ListMyOrders(userID uint) ([]models.Order, error) {
	if !database.Available() {
		return []models.Order{}, nil
	}
	orders, err := s.orders.ForUser(userID)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. Admin only; the route
// group enforces the gate.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}
	if !database.Available() {
		return models.Order{}, ErrStoreUnavailable
	}

	if _, err := s.orders.FindByID(id); err != nil {
		if isMiss(err) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, ErrStoreUnavailable
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return models.Order{}, ErrStoreUnavailable
	}
	return s.orders.FindByID(id)
}

// SyncCart replaces the user's cart blob.
func (s *OrderService) SyncCart(userID uint, items models.CartItems) (models.Cart, error) {
	if !database.Available() {
		return models.Cart{UserID: userID, Items: items}, nil
	}
	cart, err := s.orders.SaveCart(userID, items)
	if err != nil {
		return models.Cart{}, ErrStoreUnavailable
	}
	return cart, nil
}

// GetCart reads the user's cart items; an absent row is an empty cart.
func (s *OrderService) GetCart(userID uint) (models.CartItems, error) {
	if !database.Available() {
		return models.CartItems{}, nil
	}
	cart, err := s.orders.CartFor(userID)
	if err != nil {
		if isMiss(err) {
			return models.CartItems{}, nil
		}
		return nil, ErrStoreUnavailable
	}
	return cart.Items, nil
}
