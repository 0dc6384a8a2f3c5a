package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageListValue(t *testing.T) {
	v, err := ImageList{"a.jpg", "b.jpg"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a.jpg","b.jpg"]`, v)

	v, err = ImageList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestImageListScan(t *testing.T) {
	var l ImageList
	require.NoError(t, l.Scan(`["a.jpg","b.jpg"]`))
	assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, l)

	require.NoError(t, l.Scan([]byte(`["c.jpg"]`)))
	assert.Equal(t, ImageList{"c.jpg"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	require.NoError(t, l.Scan("  "))
	assert.Empty(t, l)
}

func TestImageListScanLegacyBareURL(t *testing.T) {
	// Old rows stored a single URL directly in the column.
	var l ImageList
	require.NoError(t, l.Scan("https://example.com/dog.jpg"))
	assert.Equal(t, ImageList{"https://example.com/dog.jpg"}, l)
}

func TestCartItemsRoundTrip(t *testing.T) {
	items := CartItems{{ProductID: 3, Quantity: 2, Price: 9.5}}
	v, err := items.Value()
	require.NoError(t, err)

	var out CartItems
	require.NoError(t, out.Scan(v))
	assert.Equal(t, items, out)
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderShipped))
	assert.False(t, ValidOrderStatus("lost"))
}
