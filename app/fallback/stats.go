package fallback

import (
	"fmt"
	"time"
)

// SalesPoint is one bucket of a dashboard sales-history series.
type SalesPoint struct {
	Label string  `json:"label"`
	Sales float64 `json:"sales"`
}

// TopSeller is one row of the dashboard top-selling list.
type TopSeller struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// HistoryLabels returns the bucket labels for a sales-history range,
// anchored so the final bucket is the current hour, day or month: day has
// 24 hourly buckets, week 7 daily, month 4 weekly, year 12 monthly.
// Unknown ranges fall back to the month shape.
func HistoryLabels(rng string) []string {
	return historyLabels(rng, time.Now())
}

func historyLabels(rng string, now time.Time) []string {
	switch rng {
	case "day":
		labels := make([]string, 24)
		for i := range labels {
			labels[i] = fmt.Sprintf("%02d:00", (now.Hour()+i+1)%24)
		}
		return labels
	case "week":
		labels := make([]string, 7)
		for i := range labels {
			labels[i] = now.AddDate(0, 0, i-6).Format("Mon")
		}
		return labels
	case "year":
		labels := make([]string, 12)
		for i := range labels {
			// time.Date normalizes out-of-range months, which sidesteps
			// AddDate's month-end clamping.
			labels[i] = time.Date(now.Year(), now.Month()-time.Month(11-i), 1,
				0, 0, 0, 0, now.Location()).Format("Jan")
		}
		return labels
	default:
		return []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	}
}

// Stats is the canned dashboard payload. The numbers are arbitrary but
// stable, so a dashboard rendered during an outage always looks alive.
type Stats struct {
	TotalOrders   int          `json:"totalOrders"`
	TotalProducts int          `json:"totalProducts"`
	TotalUsers    int          `json:"totalUsers"`
	TotalSales    float64      `json:"totalSales"`
	TopSelling    []TopSeller  `json:"topSelling"`
	SalesHistory  []SalesPoint `json:"salesHistory"`
}

// DemoStats returns the range-appropriate canned dashboard numbers.
func DemoStats(rng string) Stats {
	labels := HistoryLabels(rng)

	// A fixed pseudo-random walk keeps the chart shape interesting without
	// an RNG, so repeated renders are identical.
	history := make([]SalesPoint, len(labels))
	sales := 120.0
	for i, label := range labels {
		sales += float64((i*37)%90) - 40
		if sales < 20 {
			sales = 20
		}
		history[i] = SalesPoint{Label: label, Sales: sales}
	}

	return Stats{
		TotalOrders:   48,
		TotalProducts: len(Products()),
		TotalUsers:    132,
		TotalSales:    4820.50,
		TopSelling: []TopSeller{
			{Name: "Premium Dog Food", Sales: 34},
			{Name: "Interactive Laser Toy", Sales: 27},
			{Name: "10 Gallon Aquarium Kit", Sales: 19},
			{Name: "Bird Seed Mix", Sales: 15},
			{Name: "Organic Catnip", Sales: 11},
		},
		SalesHistory: history,
	}
}
