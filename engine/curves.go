package engine

import (
	"fmt"
	"sort"
)

// BuildSupplyCurve sorts seller offers by landed cost ascending and
// cumulates their quantities. Ties are broken by offer price ascending,
// then quantity descending (the larger offer wins the tie), then display
// name, so the curve is deterministic for any input order.
func BuildSupplyCurve(offers []SellerOffer) []SupplyPoint {
	sorted := make([]SellerOffer, len(offers))
	copy(sorted, offers)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.LandedCost != b.LandedCost {
			return a.LandedCost < b.LandedCost
		}
		if a.OfferPrice != b.OfferPrice {
			return a.OfferPrice < b.OfferPrice
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.DisplayName < b.DisplayName
	})

	curve := make([]SupplyPoint, len(sorted))
	var running Amount
	for i, offer := range sorted {
		running += offer.Quantity
		curve[i] = SupplyPoint{
			SellerID:         offer.SellerID,
			DisplayName:      offer.DisplayName,
			Price:            offer.OfferPrice,
			LandedCost:       offer.LandedCost,
			Quantity:         offer.Quantity,
			CumulativeSupply: running,
		}
	}
	return curve
}

// BuildDemandCurve aggregates bids by exact price (fixed-point equality,
// never float comparison), sorts the rows price descending, and cumulates
// from the lowest price upward so the highest-price row carries the full
// total demand.
func BuildDemandCurve(bids []BuyerBid) []MarketDemandPoint {
	byPrice := make(map[Amount]Amount, len(bids))
	for _, bid := range bids {
		byPrice[bid.BidPrice] += bid.Quantity
	}

	curve := make([]MarketDemandPoint, 0, len(byPrice))
	for price, qty := range byPrice {
		curve = append(curve, MarketDemandPoint{Price: price, Quantity: qty})
	}
	sort.Slice(curve, func(i, j int) bool {
		return curve[i].Price > curve[j].Price
	})

	var running Amount
	for i := len(curve) - 1; i >= 0; i-- {
		running += curve[i].Quantity
		curve[i].CumulativeDemand = running
	}
	return curve
}

// BuildBuyerDemand returns the flat, unaggregated bid list used by the
// allocator, sorted price descending with larger quantities first on
// price ties and buyer ID as the final tie-break.
func BuildBuyerDemand(bids []BuyerBid) []BuyerBid {
	sorted := make([]BuyerBid, len(bids))
	copy(sorted, bids)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.BidPrice != b.BidPrice {
			return a.BidPrice > b.BidPrice
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.BuyerID < b.BuyerID
	})
	return sorted
}

// CheckTickSize flags bids whose price is not an exact multiple of the
// tick size. Violating bids still participate in clearing; rejecting them
// is pending a product decision, so the engine only reports.
func CheckTickSize(bids []BuyerBid, tick Amount) []ValidationWarning {
	if tick <= 0 {
		return nil
	}
	var warnings []ValidationWarning
	for _, bid := range bids {
		if bid.BidPrice.IsMultipleOf(tick) {
			continue
		}
		warnings = append(warnings, ValidationWarning{
			BuyerID:  bid.BuyerID,
			BidPrice: bid.BidPrice,
			Message:  fmt.Sprintf("bid price %s is not a multiple of tick size %s", bid.BidPrice, tick),
		})
	}
	return warnings
}
