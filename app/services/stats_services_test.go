package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/testkit"
)

func setupStats(t *testing.T) (*StatsService, *gorm.DB) {
	t.Helper()
	db := testkit.SetupDB(t,
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{})
	return NewStatsService(), db
}

func seedStats(t *testing.T, db *gorm.DB) {
	t.Helper()

	products := []models.Product{
		{Name: "Premium Dog Food", Price: 10},
		{Name: "Organic Catnip", Price: 5},
	}
	require.NoError(t, db.Create(&products).Error)
	require.NoError(t, db.Create(&models.User{Email: "jane@example.com"}).Error)

	orders := []models.Order{
		{UserID: 1, Total: 20, Status: models.OrderPending, Items: []models.OrderItem{
			{ProductID: products[0].ID, Quantity: 2, Price: 10},
		}},
		{UserID: 1, Total: 10, Status: models.OrderDelivered, Items: []models.OrderItem{
			{ProductID: products[0].ID, Quantity: 3, Price: 10},
			{ProductID: products[1].ID, Quantity: 2, Price: 5},
		}},
	}
	require.NoError(t, db.Create(&orders).Error)
}

func TestGetStats(t *testing.T) {
	svc, db := setupStats(t)
	seedStats(t, db)

	stats := svc.GetStats("week")
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 30.0, stats.TotalSales)

	require.Len(t, stats.TopSelling, 2)
	assert.Equal(t, "Premium Dog Food", stats.TopSelling[0].Name)
	assert.Equal(t, 5, stats.TopSelling[0].Sales)
	assert.Equal(t, "Organic Catnip", stats.TopSelling[1].Name)

	// Fresh orders land in the newest bucket, labeled with today's weekday.
	require.Len(t, stats.SalesHistory, 7)
	assert.Equal(t, 30.0, stats.SalesHistory[6].Sales)
	assert.Equal(t, time.Now().Format("Mon"), stats.SalesHistory[6].Label)
}

func TestGetStatsKeepsSalesOfDeletedProducts(t *testing.T) {
	svc, db := setupStats(t)
	seedStats(t, db)

	require.NoError(t, db.Unscoped().Delete(&models.Product{}, 2).Error)

	stats := svc.GetStats("week")
	require.Len(t, stats.TopSelling, 2)
	assert.Equal(t, "Unknown Product", stats.TopSelling[1].Name)
	assert.Equal(t, 2, stats.TopSelling[1].Sales)
}

func TestGetStatsInvalidRangeDefaultsToMonth(t *testing.T) {
	svc, db := setupStats(t)
	seedStats(t, db)

	stats := svc.GetStats("decade")
	assert.Len(t, stats.SalesHistory, 4)
}

func TestGetStatsRangeShapes(t *testing.T) {
	svc, db := setupStats(t)
	seedStats(t, db)

	assert.Len(t, svc.GetStats("day").SalesHistory, 24)
	assert.Len(t, svc.GetStats("week").SalesHistory, 7)
	assert.Len(t, svc.GetStats("month").SalesHistory, 4)
	assert.Len(t, svc.GetStats("year").SalesHistory, 12)
}

func TestResetStats(t *testing.T) {
	svc, db := setupStats(t)
	seedStats(t, db)

	require.NoError(t, svc.ResetStats())

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}
