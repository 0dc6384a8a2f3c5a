package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/testkit"
)

func setupOrders(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := testkit.SetupDB(t,
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Cart{})
	return NewOrderService(), db
}

func TestCreateOrder(t *testing.T) {
	svc, db := setupOrders(t)

	order, err := svc.CreateOrder(1, "jane@example.com", []CheckoutItem{
		{ProductID: 3, Quantity: 2, Price: 10},
		{ProductID: 7, Quantity: 1, Price: 10},
	}, 30)
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 30.0, order.Total)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestCreateOrderClearsCart(t *testing.T) {
	svc, db := setupOrders(t)

	_, err := svc.SyncCart(1, models.CartItems{{ProductID: 3, Quantity: 2}})
	require.NoError(t, err)

	_, err = svc.CreateOrder(1, "jane@example.com", []CheckoutItem{
		{ProductID: 3, Quantity: 2, Price: 10},
	}, 20)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListMyOrders(t *testing.T) {
	svc, _ := setupOrders(t)

	_, err := svc.CreateOrder(1, "", []CheckoutItem{{ProductID: 1, Quantity: 1, Price: 5}}, 5)
	require.NoError(t, err)
	_, err = svc.CreateOrder(2, "", []CheckoutItem{{ProductID: 2, Quantity: 1, Price: 7}}, 7)
	require.NoError(t, err)

	mine, err := svc.ListMyOrders(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].UserID)
	require.Len(t, mine[0].Items, 1)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := setupOrders(t)

	order, err := svc.CreateOrder(1, "", []CheckoutItem{{ProductID: 1, Quantity: 1, Price: 5}}, 5)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	_, err = svc.UpdateStatus(order.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(99999, models.OrderShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartRoundTrip(t *testing.T) {
	svc, _ := setupOrders(t)

	// Absent row reads as an empty cart.
	items, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.SyncCart(1, models.CartItems{{ProductID: 3, Quantity: 2, Price: 9.5}})
	require.NoError(t, err)

	// A later sync replaces the whole blob rather than merging.
	_, err = svc.SyncCart(1, models.CartItems{{ProductID: 4, Quantity: 1}})
	require.NoError(t, err)

	items, err = svc.GetCart(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(4), items[0].ProductID)
}
