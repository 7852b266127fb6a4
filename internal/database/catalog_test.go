package database

import (
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_DefaultEmbedded(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	require.NotEmpty(t, c.ListProducts())

	p, ok := c.GetProduct(1).Get()
	require.True(t, ok)
	assert.Equal(t, "Wireless Earbuds", p.Name)
	assert.LessOrEqual(t, p.DiscountPrice, p.Price)

	assert.True(t, c.GetProduct(999).IsAbsent())
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`products:
  - id: 10
    name: Lamp
    price: 20
    discount_price: 15
    tags: [home]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	products := c.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, 15.0, products[0].DiscountPrice)
	assert.NotNil(t, products[0].Sold)
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := NewCatalog([]models.Product{{ID: 1, Price: 10, DiscountPrice: 5}, {ID: 1, Price: 3, DiscountPrice: 3}})
	assert.ErrorContains(t, err, "duplicate product id 1")

	_, err = NewCatalog([]models.Product{{ID: 2, Price: 10, DiscountPrice: 12}})
	assert.ErrorContains(t, err, "exceeds price")

	_, err = NewCatalog([]models.Product{{ID: 3, Price: -1, DiscountPrice: -2}})
	assert.ErrorContains(t, err, "negative price")
}

func TestCatalog_Queries(t *testing.T) {
	c, err := NewCatalog([]models.Product{
		{ID: 1, Name: "Red Sneaker", Price: 10, DiscountPrice: 9, Tags: []string{"shoes"}, Sold: map[string]int{models.PeriodAllTime: 5}},
		{ID: 2, Name: "Phone", Price: 100, DiscountPrice: 90, Tags: []string{"gadgets"}, Sold: map[string]int{models.PeriodAllTime: 9, models.PeriodLast30Days: 2}},
		{ID: 3, Name: "Sandal", Price: 20, DiscountPrice: 20, Tags: []string{"shoes"}, Sold: map[string]int{models.PeriodAllTime: 9}},
	})
	require.NoError(t, err)

	shoes := c.ByTag("shoes")
	require.Len(t, shoes, 2)
	assert.Equal(t, 1, shoes[0].ID)

	best := c.BestSelling(models.PeriodAllTime, 2)
	require.Len(t, best, 2)
	assert.Equal(t, []int{2, 3}, []int{best[0].ID, best[1].ID})

	recent := c.BestSelling(models.PeriodLast30Days, 0)
	require.Len(t, recent, 1)
	assert.Equal(t, 2, recent[0].ID)

	assert.Len(t, c.Search("SNEAK"), 1)
	assert.Len(t, c.Search("gadg"), 1)
	assert.Empty(t, c.Search("  "))
	assert.Empty(t, c.ByTag("hats"))
}
