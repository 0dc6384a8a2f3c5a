package fallback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pethive/pethive/app/models"
)

func TestUsers(t *testing.T) {
	users := Users()
	require.Len(t, users, 2)

	admin := users[0]
	assert.Equal(t, uint(DemoAdminID), admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.Password)
	// Passwords are stored hashed, never in the clear.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
}

func TestFindUser(t *testing.T) {
	u, ok := FindUser("ADMIN@pethive.dev")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, ok = FindUser("nobody@pethive.dev")
	assert.False(t, ok)
}

func TestIsDemoAdminID(t *testing.T) {
	assert.True(t, IsDemoAdminID(DemoAdminID))
	assert.False(t, IsDemoAdminID(DemoCustomerID))
}

func TestCatalog(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 4)

	products := Products()
	require.Len(t, products, 4)
	for _, p := range products {
		require.NotNil(t, p.Category, "product %q has no category", p.Name)
		assert.Equal(t, p.CategoryID, p.Category.ID)
	}

	p, ok := FindProduct(products[0].ID)
	require.True(t, ok)
	assert.Equal(t, products[0].Name, p.Name)

	_, ok = FindProduct(9999)
	assert.False(t, ok)
}

func TestHistoryLabels(t *testing.T) {
	assert.Len(t, HistoryLabels("day"), 24)
	assert.Len(t, HistoryLabels("week"), 7)
	assert.Len(t, HistoryLabels("month"), 4)
	assert.Len(t, HistoryLabels("year"), 12)
	assert.Len(t, HistoryLabels("bogus"), 4)
}

// Labels are anchored to the clock so the newest bucket carries today's
// hour, weekday or month, not a fixed calendar position.
func TestHistoryLabelsAnchored(t *testing.T) {
	now := time.Date(2026, time.March, 18, 14, 30, 0, 0, time.UTC) // a Wednesday

	day := historyLabels("day", now)
	assert.Equal(t, "14:00", day[23])
	assert.Equal(t, "15:00", day[0])

	week := historyLabels("week", now)
	assert.Equal(t, "Wed", week[6])
	assert.Equal(t, "Thu", week[0])

	year := historyLabels("year", now)
	assert.Equal(t, "Mar", year[11])
	assert.Equal(t, "Apr", year[0])

	// A month-end anchor must not skip short months.
	year = historyLabels("year", time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Apr", year[10])
	assert.Equal(t, "Feb", year[8])
}

func TestDemoStats(t *testing.T) {
	s := DemoStats("week")
	assert.Len(t, s.SalesHistory, 7)
	assert.NotEmpty(t, s.TopSelling)
	assert.Greater(t, s.TotalSales, 0.0)

	// Deterministic for a given range.
	assert.Equal(t, s, DemoStats("week"))
}

func TestWith(t *testing.T) {
	got := With(func() ([]int, error) { return []int{1, 2}, nil }, func() []int { return []int{9} })
	assert.Equal(t, []int{1, 2}, got)

	got = With(func() ([]int, error) { return nil, assert.AnError }, func() []int { return []int{9} })
	assert.Equal(t, []int{9}, got)
}
