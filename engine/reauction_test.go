package engine

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestAdviseReauction_TriggersAtThreshold(t *testing.T) {
	supply := BuildSupplyCurve([]SellerOffer{NewSellerOffer("s1", "S1", 10, 0, 1000)})
	allocations := []Allocation{
		{BuyerID: "b1", SellerID: "s1", Quantity: AmountFromFloat(200)},
	}

	advice := AdviseReauction(supply, allocations, 0.70)

	check.True(t, advice.ShouldReauction)
	check.Equal(t, 0.8, advice.UnsoldRatio)
	check.Equal(t, AmountFromFloat(1000), advice.TotalSupply)
	check.Equal(t, AmountFromFloat(200), advice.TotalAllocated)

	assert.Equal(t, 1, len(advice.Leftovers))
	check.Equal(t, "s1", advice.Leftovers[0].SellerID)
	check.Equal(t, AmountFromFloat(800), advice.Leftovers[0].Quantity)
}

func TestAdviseReauction_BelowThreshold(t *testing.T) {
	supply := BuildSupplyCurve([]SellerOffer{NewSellerOffer("s1", "S1", 10, 0, 100)})
	allocations := []Allocation{
		{BuyerID: "b1", SellerID: "s1", Quantity: AmountFromFloat(40)},
	}

	advice := AdviseReauction(supply, allocations, 0.70)

	check.False(t, advice.ShouldReauction)
	check.Equal(t, 0.6, advice.UnsoldRatio)
	check.Equal(t, 0, len(advice.Leftovers))
}

func TestAdviseReauction_ZeroSupply(t *testing.T) {
	advice := AdviseReauction(nil, nil, 0.70)

	check.False(t, advice.ShouldReauction)
	check.Equal(t, 0.0, advice.UnsoldRatio)
	check.Equal(t, Amount(0), advice.TotalSupply)
}

func TestAdviseReauction_CombinesOffersPerSeller(t *testing.T) {
	// One seller with two offer rows carries a single combined leftover.
	supply := BuildSupplyCurve([]SellerOffer{
		NewSellerOffer("s1", "S1", 10, 0, 300),
		NewSellerOffer("s1", "S1", 12, 0, 200),
		NewSellerOffer("s2", "S2", 11, 0, 500),
	})
	allocations := []Allocation{
		{BuyerID: "b1", SellerID: "s1", Quantity: AmountFromFloat(100)},
	}

	advice := AdviseReauction(supply, allocations, 0.70)

	check.True(t, advice.ShouldReauction)
	assert.Equal(t, 2, len(advice.Leftovers))
	check.Equal(t, "s1", advice.Leftovers[0].SellerID)
	check.Equal(t, AmountFromFloat(400), advice.Leftovers[0].Quantity)
	check.Equal(t, "s2", advice.Leftovers[1].SellerID)
	check.Equal(t, AmountFromFloat(500), advice.Leftovers[1].Quantity)
}

func TestAdviseReauction_FullyAllocated(t *testing.T) {
	supply := BuildSupplyCurve([]SellerOffer{NewSellerOffer("s1", "S1", 10, 0, 100)})
	allocations := []Allocation{
		{BuyerID: "b1", SellerID: "s1", Quantity: AmountFromFloat(100)},
	}

	advice := AdviseReauction(supply, allocations, 0.70)

	check.False(t, advice.ShouldReauction)
	check.Equal(t, 0.0, advice.UnsoldRatio)
	check.Equal(t, 0, len(advice.Leftovers))
}
