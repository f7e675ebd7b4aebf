package engine

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func curvesFor(offers []SellerOffer, bids []BuyerBid) ([]SupplyPoint, []GapPoint, []BuyerBid) {
	supply := BuildSupplyCurve(offers)
	demand := BuildDemandCurve(bids)
	gaps := ComputeGaps(supply, ProjectDemand(supply, demand))
	return supply, gaps, BuildBuyerDemand(bids)
}

func TestResolveClearing_Exact(t *testing.T) {
	supply, gaps, _ := curvesFor(
		[]SellerOffer{NewSellerOffer("s1", "S1", 20, 0, 100)},
		[]BuyerBid{NewBuyerBid("b1", "B1", 20, 100)},
	)

	price, quantity, clearingType := ResolveClearing(supply, gaps)

	check.Equal(t, ClearingExact, clearingType)
	check.Equal(t, AmountFromFloat(20), price)
	check.Equal(t, AmountFromFloat(100), quantity)
}

func TestResolveClearing_Interpolated(t *testing.T) {
	supply, gaps, _ := curvesFor(
		[]SellerOffer{
			NewSellerOffer("s1", "S1", 10, 0, 50),
			NewSellerOffer("s2", "S2", 12, 0, 50),
		},
		[]BuyerBid{
			NewBuyerBid("b1", "B1", 13, 40),
			NewBuyerBid("b2", "B2", 9, 80),
		},
	)

	// Gap table: 50−120 = −70 at price 10, 100−80 = +20 at price 12.
	check.Equal(t, AmountFromFloat(-70), gaps[0].Gap)
	check.Equal(t, AmountFromFloat(20), gaps[1].Gap)

	price, quantity, clearingType := ResolveClearing(supply, gaps)

	// fraction = 70/90: price 10 + 2×0.7778, quantity 50 + 50×0.7778.
	check.Equal(t, ClearingInterpolated, clearingType)
	check.Equal(t, AmountFromFloat(11.5556), price)
	check.Equal(t, AmountFromFloat(88.8889), quantity)
}

func TestResolveClearing_BoundarySurplus(t *testing.T) {
	// Supply already exceeds demand at the first point, with real demand
	// present: clears at the first point for the demand side.
	supply, gaps, _ := curvesFor(
		[]SellerOffer{
			NewSellerOffer("s1", "S1", 8, 0, 100),
			NewSellerOffer("s2", "S2", 9, 0, 50),
		},
		[]BuyerBid{NewBuyerBid("b1", "B1", 10, 60)},
	)

	price, quantity, clearingType := ResolveClearing(supply, gaps)

	check.Equal(t, ClearingExact, clearingType)
	check.Equal(t, AmountFromFloat(8), price)
	check.Equal(t, AmountFromFloat(60), quantity)
}

func TestResolveClearing_NoClearing(t *testing.T) {
	supply, gaps, _ := curvesFor(
		[]SellerOffer{NewSellerOffer("s1", "S1", 20, 0, 10)},
		[]BuyerBid{NewBuyerBid("b1", "B1", 5, 100)},
	)

	price, quantity, clearingType := ResolveClearing(supply, gaps)

	check.Equal(t, ClearingNone, clearingType)
	check.Equal(t, Amount(0), price)
	check.Equal(t, Amount(0), quantity)
}

func TestResolveClearing_EmptyGapTable(t *testing.T) {
	_, _, clearingType := ResolveClearing(nil, nil)
	check.Equal(t, ClearingNone, clearingType)
}

func TestSecondPrice_TwoCompetingBidsRaiseToSecondHighest(t *testing.T) {
	bids := []BuyerBid{
		NewBuyerBid("b1", "B1", 12, 60),
		NewBuyerBid("b2", "B2", 11, 40),
	}

	check.Equal(t, AmountFromFloat(11), SecondPrice(AmountFromFloat(10), bids))
}

func TestSecondPrice_SingleEligibleBidKeepsCandidate(t *testing.T) {
	bids := []BuyerBid{
		NewBuyerBid("b1", "B1", 13, 40),
		NewBuyerBid("b2", "B2", 9, 80),
	}

	check.Equal(t, AmountFromFloat(11.5556), SecondPrice(AmountFromFloat(11.5556), bids))
}

func TestSecondPrice_SecondBidBelowCandidateKeepsCandidate(t *testing.T) {
	bids := []BuyerBid{
		NewBuyerBid("b1", "B1", 12, 60),
		NewBuyerBid("b2", "B2", 10, 40),
	}

	// Both eligible at candidate 10, but the second-highest equals the
	// candidate, so nothing moves.
	check.Equal(t, AmountFromFloat(10), SecondPrice(AmountFromFloat(10), bids))
}

func TestSecondPrice_NoEligibleBids(t *testing.T) {
	bids := []BuyerBid{NewBuyerBid("b1", "B1", 9, 80)}
	check.Equal(t, AmountFromFloat(10), SecondPrice(AmountFromFloat(10), bids))
}
