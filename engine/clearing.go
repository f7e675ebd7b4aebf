package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ResolveClearing locates the market-clearing point from the gap table.
// Resolution order, first match wins:
//
//  1. EXACT: a gap of exactly zero clears at that supply point.
//  2. INTERPOLATED: the first adjacent pair flipping from shortage
//     (gap < 0) to surplus (gap > 0) clears between the two points.
//  3. EXACT at the boundary: supply already exceeds demand at the first
//     point, with demand actually present; clears at the first point for
//     the lesser of the two sides.
//  4. NO_CLEARING: demand exceeds supply at every observed price, or no
//     demand ever intersects the supply stack.
//
// The price returned here is the candidate price; the second-price
// adjustment is applied afterwards by SecondPrice.
func ResolveClearing(supply []SupplyPoint, gaps []GapPoint) (price, quantity Amount, clearingType ClearingType) {
	if len(gaps) == 0 {
		return 0, 0, ClearingNone
	}

	for i, gp := range gaps {
		if gp.Gap == 0 {
			return supply[i].Price, supply[i].CumulativeSupply, ClearingExact
		}
	}

	for i := 1; i < len(gaps); i++ {
		if gaps[i-1].Gap < 0 && gaps[i].Gap > 0 {
			return interpolate(supply[i-1], supply[i], gaps[i-1].Gap, gaps[i].Gap)
		}
	}

	// Surplus from the very first point. Demand must be non-zero there,
	// otherwise the curves never intersect and nothing can trade.
	if gaps[0].Gap > 0 && gaps[0].Demand > 0 {
		return supply[0].Price, minAmount(supply[0].CumulativeSupply, gaps[0].Demand), ClearingExact
	}

	return 0, 0, ClearingNone
}

// interpolate clears between two supply points around a sign flip.
// fraction = |shortage| / (|shortage| + surplus); both price and
// cumulative quantity move linearly by that fraction, with decimal
// division rounded back to fixed-point at the end.
func interpolate(lo, hi SupplyPoint, shortage, surplus Amount) (Amount, Amount, ClearingType) {
	num := decimal.New(-int64(shortage), 0)
	den := decimal.New(int64(surplus)-int64(shortage), 0)
	fraction := num.Div(den)

	price := lo.Price.Decimal().
		Add(hi.Price.Decimal().Sub(lo.Price.Decimal()).Mul(fraction))
	quantity := lo.CumulativeSupply.Decimal().
		Add(hi.CumulativeSupply.Decimal().Sub(lo.CumulativeSupply.Decimal()).Mul(fraction))

	return AmountFromDecimal(price), AmountFromDecimal(quantity), ClearingInterpolated
}

// SecondPrice applies the second-price adjustment to a candidate clearing
// price. Among bids at or above the candidate, sorted descending, two or
// more competing bids move the charged price to the higher of the
// candidate and the second-highest eligible bid; a lone eligible bid
// leaves the candidate untouched. Truthful high bidding is therefore
// never penalized.
func SecondPrice(candidate Amount, bids []BuyerBid) Amount {
	eligible := make([]Amount, 0, len(bids))
	for _, bid := range bids {
		if bid.BidPrice >= candidate {
			eligible = append(eligible, bid.BidPrice)
		}
	}
	if len(eligible) < 2 {
		return candidate
	}

	sort.Slice(eligible, func(i, j int) bool { return eligible[i] > eligible[j] })

	if second := eligible[1]; second > candidate {
		return second
	}
	return candidate
}
