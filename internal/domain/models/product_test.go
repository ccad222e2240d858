package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryTotalValue(t *testing.T) {
	t.Run("SingleProduct", func(t *testing.T) {
		inv := Inventory{
			{ID: 1, Name: "Widget", Quantity: 10, Price: 2.50},
		}

		assert.Equal(t, "25", inv.TotalValue().String())
	})

	t.Run("AvoidsFloatDrift", func(t *testing.T) {
		inv := Inventory{
			{ID: 1, Name: "Bolt", Quantity: 3, Price: 0.1},
			{ID: 2, Name: "Washer", Quantity: 3, Price: 0.2},
		}

		// 3*0.1 + 3*0.2 would already drift in float64 arithmetic.
		assert.Equal(t, "0.9", inv.TotalValue().String())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.True(t, Inventory(nil).TotalValue().IsZero())
	})
}
