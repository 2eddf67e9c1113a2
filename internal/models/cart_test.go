// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotalsEmpty(t *testing.T) {
	cart := &Cart{}

	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartTotals(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{
				Quantity: 2,
				Product:  Product{Price: decimal.RequireFromString("9.99")},
			},
			{
				Quantity: 3,
				Product:  Product{Price: decimal.RequireFromString("15.50")},
			},
		},
	}

	assert.Equal(t, 5, cart.TotalItems())
	assert.Equal(t, "66.48", cart.TotalPrice().StringFixed(2))
}

func TestCartTotalPriceExactDecimal(t *testing.T) {
	// 0.1 + 0.2 style sums must not drift the way they would with floats.
	cart := &Cart{
		Items: []CartItem{
			{Quantity: 1, Product: Product{Price: decimal.RequireFromString("0.10")}},
			{Quantity: 1, Product: Product{Price: decimal.RequireFromString("0.20")}},
		},
	}

	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("0.30")))
}
