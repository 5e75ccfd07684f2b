package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	businessID := uuid.New()

	t.Run("creates unpublished product", func(t *testing.T) {
		p, err := NewProduct(businessID, "Dried Basil", "Agriculture", decimal.NewFromInt(5), "usd")

		require.NoError(t, err)
		assert.Equal(t, businessID, p.BusinessID)
		assert.Equal(t, "USD", p.Currency)
		assert.Equal(t, StockStatusInStock, p.StockStatus)
		assert.False(t, p.IsPublished)
	})

	t.Run("defaults currency to USD", func(t *testing.T) {
		p, err := NewProduct(businessID, "Dried Basil", "Agriculture", decimal.Zero, "")
		require.NoError(t, err)
		assert.Equal(t, "USD", p.Currency)
	})

	t.Run("rejects orphan product", func(t *testing.T) {
		_, err := NewProduct(uuid.Nil, "Dried Basil", "Agriculture", decimal.Zero, "USD")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(businessID, "Dried Basil", "Agriculture", decimal.NewFromInt(-1), "USD")
		assert.Error(t, err)
	})
}

func TestProduct_SetStock(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Dried Basil", "Agriculture", decimal.NewFromInt(5), "USD")
	require.NoError(t, err)

	qty := 3
	require.NoError(t, p.SetStock(StockStatusLimited, &qty))
	assert.Equal(t, StockStatusLimited, p.StockStatus)
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 3, *p.Quantity)

	neg := -1
	assert.Error(t, p.SetStock(StockStatusInStock, &neg))
	assert.Error(t, p.SetStock(StockStatus("backorder"), nil))
}

func TestProduct_PublishLifecycle(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Dried Basil", "Agriculture", decimal.NewFromInt(5), "USD")
	require.NoError(t, err)

	p.Publish()
	assert.True(t, p.IsPublished)

	p.Unpublish()
	assert.False(t, p.IsPublished)
}

func TestProduct_RecordSale(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Dried Basil", "Agriculture", decimal.NewFromInt(5), "USD")
	require.NoError(t, err)

	p.RecordSale()
	p.RecordSale()
	assert.Equal(t, 2, p.SalesCount)
}
