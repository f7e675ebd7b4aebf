package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AdviseReauction computes the unsold-supply ratio and, when it reaches
// the threshold, flags a follow-on auction seeded with each seller's
// leftover quantity. The advisor only recommends; creating the follow-on
// auction belongs to the caller.
func AdviseReauction(supply []SupplyPoint, allocations []Allocation, threshold float64) ReauctionAdvice {
	var totalSupply Amount
	if len(supply) > 0 {
		totalSupply = supply[len(supply)-1].CumulativeSupply
	}

	allocatedBySeller := make(map[string]Amount, len(supply))
	var totalAllocated Amount
	for _, alloc := range allocations {
		allocatedBySeller[alloc.SellerID] += alloc.Quantity
		totalAllocated += alloc.Quantity
	}

	advice := ReauctionAdvice{
		TotalSupply:    totalSupply,
		TotalAllocated: totalAllocated,
	}
	if totalSupply <= 0 {
		return advice
	}

	unsold := (totalSupply - totalAllocated).Decimal()
	ratio := unsold.Div(totalSupply.Decimal()).Round(amountPlaces)
	advice.UnsoldRatio, _ = ratio.Float64()

	if ratio.LessThan(decimal.NewFromFloat(threshold).Round(amountPlaces)) {
		return advice
	}

	advice.ShouldReauction = true
	advice.Reason = fmt.Sprintf("%s%% of offered supply is unsold (threshold %s%%)",
		ratio.Mul(decimal.NewFromInt(100)).StringFixed(1),
		decimal.NewFromFloat(threshold).Mul(decimal.NewFromInt(100)).StringFixed(1))

	// Leftovers are per seller, not per offer row: a seller with several
	// offers carries one combined leftover forward.
	offeredBySeller := make(map[string]Amount, len(supply))
	seen := make(map[string]bool, len(supply))
	order := make([]SupplyPoint, 0, len(supply))
	for _, sp := range supply {
		offeredBySeller[sp.SellerID] += sp.Quantity
		if !seen[sp.SellerID] {
			seen[sp.SellerID] = true
			order = append(order, sp)
		}
	}

	for _, sp := range order {
		leftover := offeredBySeller[sp.SellerID] - allocatedBySeller[sp.SellerID]
		if leftover <= 0 {
			continue
		}
		advice.Leftovers = append(advice.Leftovers, LeftoverOffer{
			SellerID:    sp.SellerID,
			DisplayName: sp.DisplayName,
			OfferPrice:  sp.Price,
			Quantity:    leftover,
		})
	}
	return advice
}
