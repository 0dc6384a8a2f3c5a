package repositories

import (
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/orm"
)

// OrderRepository handles database operations for Order, OrderItem and Cart.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists an order together with its nested items.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// FindByID returns one order with items and product detail.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").
		Where("id = ?", id).First(&order)
	return order, err
}

// ForUser returns the user's orders with items and product detail,
// newest first.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").Get(&orders)
	return orders, err
}

// All returns every order with its items, for aggregation.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").Get(&orders)
	return orders, err
}

// UpdateStatus moves an order through its lifecycle.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	return orm.DB().Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}

// Reset wipes all order items then all orders. Irreversible.
func (r *OrderRepository) Reset() error {
	if err := orm.DB().Gorm().Where("1 = 1").Unscoped().Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return orm.DB().Gorm().Where("1 = 1").Unscoped().Delete(&models.Order{}).Error
}

// ── Cart ──

// CartFor returns the user's cart row, if any.
func (r *OrderRepository) CartFor(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().Model(&models.Cart{}).Where("user_id = ?", userID).First(&cart)
	return cart, err
}

// SaveCart upserts the user's cart blob.
func (r *OrderRepository) SaveCart(userID uint, items models.CartItems) (models.Cart, error) {
	cart, err := r.CartFor(userID)
	if err != nil {
		cart = models.Cart{UserID: userID, Items: items}
		return cart, orm.DB().Create(&cart)
	}
	cart.Items = items
	return cart, orm.DB().Save(&cart)
}

// DeleteCart removes the user's cart row. Absence is not an error.
func (r *OrderRepository) DeleteCart(userID uint) error {
	return orm.DB().Gorm().Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}
