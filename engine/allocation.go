package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// kgPerMT converts per-kg prices against MT quantities in value formulas.
var kgPerMT = decimal.NewFromInt(1000)

// sellerFill is one seller's share of the clearing quantity, in
// seller-priority order.
type sellerFill struct {
	point     SupplyPoint
	remaining Amount
}

// Allocate distributes the clearing quantity between sellers and buyer
// bids at the clearing price. Sellers are walked in landed-cost priority
// order; a seller participates only while its offer price stays within
// tolerance of the clearing price, and receives at most its own quantity.
// Each seller's fill is then handed out across eligible bids (price at or
// above clearing) in price priority, smaller bids first on price ties as a
// proxy for time priority. A bid's remaining quantity is tracked per bid,
// never per buyer, so one buyer's multiple bids fill independently.
//
// Returns the allocation records and the summed trade value.
func Allocate(supply []SupplyPoint, buyerDemand []BuyerBid, clearingPrice, clearingQuantity, tolerance Amount) ([]Allocation, Amount) {
	fills := sellerFills(supply, clearingPrice, clearingQuantity, tolerance)
	bids := eligibleBids(buyerDemand, clearingPrice)

	remaining := make([]Amount, len(bids))
	for i, bid := range bids {
		remaining[i] = bid.Quantity
	}

	allocations := make([]Allocation, 0, len(fills))
	var totalValue Amount

	for f := range fills {
		fill := &fills[f]
		for i := range bids {
			if fill.remaining <= 0 {
				break
			}
			if remaining[i] <= 0 {
				continue
			}
			take := minAmount(fill.remaining, remaining[i])
			fill.remaining -= take
			remaining[i] -= take

			alloc := newAllocation(bids[i], fill.point, take, clearingPrice)
			totalValue += alloc.TradeValue
			allocations = append(allocations, alloc)
		}
	}

	return allocations, totalValue
}

// sellerFills walks the supply curve in priority order, giving each
// in-tolerance seller the lesser of its quantity and what remains of the
// clearing quantity, and stopping once the clearing quantity is spent.
func sellerFills(supply []SupplyPoint, clearingPrice, clearingQuantity, tolerance Amount) []sellerFill {
	fills := make([]sellerFill, 0, len(supply))
	remaining := clearingQuantity

	for _, sp := range supply {
		if remaining <= 0 {
			break
		}
		if sp.Price > clearingPrice+tolerance {
			continue
		}
		take := minAmount(remaining, sp.Quantity)
		if take <= 0 {
			continue
		}
		remaining -= take
		fills = append(fills, sellerFill{point: sp, remaining: take})
	}
	return fills
}

// eligibleBids filters the buyer-level demand list to bids at or above the
// clearing price and orders them for allocation: price descending, then
// quantity ascending, then buyer ID.
func eligibleBids(buyerDemand []BuyerBid, clearingPrice Amount) []BuyerBid {
	bids := make([]BuyerBid, 0, len(buyerDemand))
	for _, bid := range buyerDemand {
		if bid.BidPrice >= clearingPrice {
			bids = append(bids, bid)
		}
	}

	sort.Slice(bids, func(i, j int) bool {
		a, b := bids[i], bids[j]
		if a.BidPrice != b.BidPrice {
			return a.BidPrice > b.BidPrice
		}
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return a.BuyerID < b.BuyerID
	})
	return bids
}

// newAllocation derives the monetary fields for one transfer. Quantities
// are MT and prices per kg, hence the ×1000. Savings and bonus keep their
// sign; the engine never clamps.
func newAllocation(bid BuyerBid, sp SupplyPoint, quantity, clearingPrice Amount) Allocation {
	qty := quantity.Decimal()
	price := clearingPrice.Decimal()

	tradeValue := qty.Mul(price).Mul(kgPerMT)
	savings := bid.BidPrice.Decimal().Sub(price).Mul(qty).Mul(kgPerMT)
	bonus := price.Sub(sp.Price.Decimal()).Mul(qty).Mul(kgPerMT)

	return Allocation{
		BuyerID:          bid.BuyerID,
		SellerID:         sp.SellerID,
		Quantity:         quantity,
		FinalPrice:       clearingPrice,
		BuyerBidPrice:    bid.BidPrice,
		SellerOfferPrice: sp.Price,
		TradeValue:       AmountFromDecimal(tradeValue),
		BuyerSavings:     AmountFromDecimal(savings),
		SellerBonus:      AmountFromDecimal(bonus),
	}
}
