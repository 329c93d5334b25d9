package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeBasketItemPriceResolution(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawBasketItem
		wantUnit  float64
		wantQty   float64
		wantTotal float64
	}{
		{
			name:      "price per unit wins",
			raw:       RawBasketItem{PricePerUnit: ptr(200), Price: ptr(150), Quantity: ptr(3)},
			wantUnit:  200,
			wantQty:   3,
			wantTotal: 600,
		},
		{
			name:      "plain price",
			raw:       RawBasketItem{Price: ptr(80), Quantity: ptr(2)},
			wantUnit:  80,
			wantQty:   2,
			wantTotal: 160,
		},
		{
			name:      "derived from total",
			raw:       RawBasketItem{TotalPrice: ptr(90), Quantity: ptr(3)},
			wantUnit:  30,
			wantQty:   3,
			wantTotal: 90,
		},
		{
			name:      "supplied total kept",
			raw:       RawBasketItem{PricePerUnit: ptr(200), TotalPrice: ptr(590), Quantity: ptr(3)},
			wantUnit:  200,
			wantQty:   3,
			wantTotal: 590,
		},
		{
			name:      "quantity defaults to one",
			raw:       RawBasketItem{Price: ptr(45)},
			wantUnit:  45,
			wantQty:   1,
			wantTotal: 45,
		},
		{
			name:      "no price",
			raw:       RawBasketItem{Quantity: ptr(2)},
			wantUnit:  0,
			wantQty:   2,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBasketItem(tt.raw)
			assert.Equal(t, tt.wantUnit, got.PricePerUnit)
			assert.Equal(t, tt.wantQty, got.Quantity)
			assert.Equal(t, tt.wantTotal, got.TotalPrice)
		})
	}
}

func TestNormalizeBasketItemFromJSON(t *testing.T) {
	payload := `[
		{"id": 7, "product_name": "Milk 1L", "price": 89.9, "quantity": 2, "embedding": [0.1, 0.2, 0.3]},
		{"id": 8, "name": "Bread", "total_price": 120, "meal_components": ["side"]}
	]`

	var raw []RawBasketItem
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	basket := NormalizeBasket(raw)
	require.Len(t, basket, 2)

	assert.Equal(t, "Milk 1L", basket[0].Name)
	assert.InDelta(t, 179.8, basket[0].TotalPrice, 1e-9)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, basket[0].Embedding)

	assert.Equal(t, "Bread", basket[1].Name)
	assert.Equal(t, 120.0, basket[1].PricePerUnit)
	assert.Nil(t, basket[1].Embedding)
	assert.Equal(t, []string{"side"}, basket[1].MealComponents)
}

func TestNewBasketItemFromProduct(t *testing.T) {
	p := Product{ID: 3, Name: "Rice", Category: "grocery", PricePerUnit: 70, Unit: "kg", Embedding: []float32{1, 0}}

	item := NewBasketItemFromProduct(p, 2)
	assert.Equal(t, int64(3), item.ID)
	assert.Equal(t, 140.0, item.TotalPrice)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, p.Embedding, item.Embedding)
}

func TestProductHelpers(t *testing.T) {
	p := Product{PricePerUnit: 10, Tags: []string{"vegan", "organic"}, MealComponents: []string{"main", "side"}}

	assert.False(t, p.IsDummy())
	assert.True(t, DummyProduct().IsDummy())
	assert.True(t, p.HasAnyTag(TagSet([]string{"organic"})))
	assert.False(t, p.HasAnyTag(TagSet([]string{"pork"})))
	assert.False(t, p.HasAnyTag(TagSet(nil)))
	assert.Equal(t, "main", p.PrimaryMealComponent())
	assert.Equal(t, "", Product{}.PrimaryMealComponent())
}

func TestTagSetSkipsEmpty(t *testing.T) {
	set := TagSet([]string{"a", "", "b", "a"})
	assert.Len(t, set, 2)
}
