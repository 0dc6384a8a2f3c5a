package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/collection"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/workerpool"
)

const statsCacheTTL = 60 * time.Second

// StatsRanges are the accepted sales-history ranges.
var StatsRanges = []string{"day", "week", "month", "year"}

func statsCacheKey(rng string) string { return "pethive:stats:" + rng }

// StatsService computes the admin dashboard aggregates. A store outage
// yields the canned demo numbers so the dashboard never renders empty.
type StatsService struct {
	orders  *repositories.OrderRepository
	catalog *repositories.CatalogRepository
	users   *repositories.UserRepository
}

func NewStatsService() *StatsService {
	return &StatsService{
		orders:  repositories.NewOrderRepository(),
		catalog: repositories.NewCatalogRepository(),
		users:   repositories.NewUserRepository(),
	}
}

// GetStats returns the dashboard aggregates for the range, serving a 60s
// Redis cache when warm.
func (s *StatsService) GetStats(rng string) fallback.Stats {
	if !validRange(rng) {
		rng = "month"
	}

	return fallback.With(func() (fallback.Stats, error) {
		var cached fallback.Stats
		if cache.Get(statsCacheKey(rng), &cached) {
			return cached, nil
		}

		stats, err := s.compute(rng)
		if err != nil {
			logger.Warn("stats: dashboard degraded to demo numbers", "range", rng, "error", err)
			return fallback.Stats{}, err
		}

		if err := cache.Set(statsCacheKey(rng), stats, statsCacheTTL); err != nil {
			logger.Warn("stats: cache write failed", "error", err)
		}
		return stats, nil
	}, func() fallback.Stats { return fallback.DemoStats(rng) })
}

func validRange(rng string) bool {
	for _, r := range StatsRanges {
		if r == rng {
			return true
		}
	}
	return false
}

func (s *StatsService) compute(rng string) (fallback.Stats, error) {
	if !database.Available() {
		return fallback.Stats{}, ErrStoreUnavailable
	}

	totalOrders, err := s.orders.Count()
	if err != nil {
		return fallback.Stats{}, fmt.Errorf("stats: count orders: %w", err)
	}
	totalProducts, err := s.catalog.CountProducts()
	if err != nil {
		return fallback.Stats{}, fmt.Errorf("stats: count products: %w", err)
	}
	totalUsers, err := s.users.Count()
	if err != nil {
		return fallback.Stats{}, fmt.Errorf("stats: count users: %w", err)
	}

	orders, err := s.orders.All()
	if err != nil {
		return fallback.Stats{}, fmt.Errorf("stats: load orders: %w", err)
	}

	totalSales := collection.Sum(orders, func(o models.Order) float64 { return o.Total })

	topSelling, err := s.topSelling(orders)
	if err != nil {
		return fallback.Stats{}, err
	}

	return fallback.Stats{
		TotalOrders:   int(totalOrders),
		TotalProducts: int(totalProducts),
		TotalUsers:    int(totalUsers),
		TotalSales:    totalSales,
		TopSelling:    topSelling,
		SalesHistory:  salesHistory(rng, orders),
	}, nil
}

// topSelling groups order items by product, takes the five best by summed
// quantity and resolves the product names in a single query.
func (s *StatsService) topSelling(orders []models.Order) ([]fallback.TopSeller, error) {
	quantities := map[uint]int{}
	for _, o := range orders {
		for _, item := range o.Items {
			quantities[item.ProductID] += item.Quantity
		}
	}

	type productSales struct {
		ProductID uint
		Sales     int
	}
	ranked := make([]productSales, 0, len(quantities))
	for id, qty := range quantities {
		ranked = append(ranked, productSales{ProductID: id, Sales: qty})
	}
	ranked = collection.SortBy(ranked, func(a, b productSales) bool { return a.Sales > b.Sales })
	ranked = collection.Take(ranked, 5)

	ids := collection.Map(ranked, func(e productSales) uint { return e.ProductID })
	names, err := s.catalog.ProductNames(ids)
	if err != nil {
		return nil, fmt.Errorf("stats: resolve product names: %w", err)
	}

	top := make([]fallback.TopSeller, len(ranked))
	for i, entry := range ranked {
		name, ok := names[entry.ProductID]
		if !ok {
			// Deleted products keep their historical sales.
			name = "Unknown Product"
		}
		top[i] = fallback.TopSeller{Name: name, Sales: entry.Sales}
	}
	return top, nil
}

// salesHistory buckets order totals by CreatedAt for the requested range.
func salesHistory(rng string, orders []models.Order) []fallback.SalesPoint {
	labels := fallback.HistoryLabels(rng)
	points := make([]fallback.SalesPoint, len(labels))
	for i, label := range labels {
		points[i] = fallback.SalesPoint{Label: label}
	}

	now := time.Now()
	for _, o := range orders {
		if idx, ok := bucketIndex(rng, now, o.CreatedAt, len(labels)); ok {
			points[idx].Sales += o.Total
		}
	}
	return points
}

// bucketIndex maps an order timestamp to its bucket: day is hourly over the
// last 24h, week daily over 7 days, month weekly over 4 weeks, year monthly
// over 12 months. Orders outside the window are dropped.
func bucketIndex(rng string, now, at time.Time, buckets int) (int, bool) {
	age := now.Sub(at)
	if age < 0 {
		return 0, false
	}

	var bucketSize time.Duration
	switch rng {
	case "day":
		bucketSize = time.Hour
	case "week":
		bucketSize = 24 * time.Hour
	case "year":
		bucketSize = 365 * 24 * time.Hour / 12
	default:
		bucketSize = 7 * 24 * time.Hour
	}

	idx := int(age / bucketSize)
	if idx >= buckets {
		return 0, false
	}
	// Newest order lands in the last bucket so charts read left to right.
	return buckets - 1 - idx, true
}

// ResetStats wipes all order items and orders, then drops the cached
// aggregates. Irreversible; gated by the admin group.
func (s *StatsService) ResetStats() error {
	if !database.Available() {
		return ErrStoreUnavailable
	}
	if err := s.orders.Reset(); err != nil {
		return ErrStoreUnavailable
	}
	s.InvalidateCache()
	return nil
}

// InvalidateCache drops every cached range.
func (s *StatsService) InvalidateCache() {
	for _, rng := range StatsRanges {
		_ = cache.Del(statsCacheKey(rng))
	}
}

// WarmCache recomputes and stores every range, one worker per range; called
// by the scheduler.
func (s *StatsService) WarmCache() {
	if !cache.Available() || !database.Available() {
		return
	}

	pool := workerpool.New(len(StatsRanges))
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for _, rng := range StatsRanges {
		rng := rng
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			stats, err := s.compute(rng)
			if err != nil {
				logger.Warn("stats: cache warm failed", "range", rng, "error", err)
				return
			}
			if err := cache.Set(statsCacheKey(rng), stats, statsCacheTTL); err != nil {
				logger.Warn("stats: cache warm write failed", "range", rng, "error", err)
			}
		}); err != nil {
			wg.Done()
		}
	}
	wg.Wait()
}
