// Package engine implements the auction clearing and allocation pipeline:
// curve construction, gap analysis, second-price clearing resolution,
// buyer-seller allocation, and re-auction advice. The engine is a pure
// function over an immutable input snapshot; it performs no I/O, holds no
// state between runs, and is safe to re-invoke with the same inputs.
package engine

import (
	"log/slog"

	"github.com/google/uuid"
)

// Default engine parameters.
const (
	// DefaultReauctionThreshold is the unsold-supply ratio at or above
	// which a follow-on auction is recommended.
	DefaultReauctionThreshold = 0.70
	// DefaultPriceTolerance is the slack allowed between a seller's offer
	// price and the clearing price during the seller pass, one fixed-point
	// unit to absorb interpolation rounding.
	DefaultPriceTolerance = 0.0001
)

// Params tunes clearing behavior. The zero value selects all defaults.
type Params struct {
	ReauctionThreshold float64
	PriceTolerance     float64
}

func (p Params) withDefaults() Params {
	if p.ReauctionThreshold == 0 {
		p.ReauctionThreshold = DefaultReauctionThreshold
	}
	if p.PriceTolerance == 0 {
		p.PriceTolerance = DefaultPriceTolerance
	}
	return p
}

// Engine runs clearing with a fixed set of parameters. It is stateless
// and may be shared; each Clear call is independent.
type Engine struct {
	params Params
	logger *slog.Logger
}

// New returns an engine with the given parameters. A nil logger falls
// back to slog.Default().
func New(params Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{params: params.withDefaults(), logger: logger}
}

// Clear runs a single auction through the full pipeline and returns the
// clearing result. It never returns an error: degenerate inputs resolve
// to a valid NO_CLEARING result, and tick-size violations are surfaced as
// warnings rather than rejections.
func (e *Engine) Clear(req Request) *ClearingResult {
	warnings := CheckTickSize(req.BuyerBids, req.TickSize)
	for _, w := range warnings {
		e.logger.Warn("tick size violation",
			"auction_id", req.AuctionID,
			"buyer_id", w.BuyerID,
			"bid_price", w.BidPrice.String())
	}

	supply := BuildSupplyCurve(req.SellerOffers)
	demand := BuildDemandCurve(req.BuyerBids)
	buyerDemand := BuildBuyerDemand(req.BuyerBids)

	result := &ClearingResult{
		AuctionID:    req.AuctionID,
		ClearingType: ClearingNone,
		SupplyCurve:  supply,
		DemandCurve:  demand,
		Allocations:  []Allocation{},
		Warnings:     warnings,
	}

	// Zero sellers or zero buyers resolves to NO_CLEARING with re-auction
	// advice still computed from whatever supply is on the table.
	if len(supply) == 0 || len(demand) == 0 {
		result.GapTable = []GapPoint{}
		result.Reauction = AdviseReauction(supply, nil, e.params.ReauctionThreshold)
		return result
	}

	projected := ProjectDemand(supply, demand)
	gaps := ComputeGaps(supply, projected)
	result.GapTable = gaps

	price, quantity, clearingType := ResolveClearing(supply, gaps)
	result.ClearingType = clearingType

	if clearingType == ClearingNone {
		// Short-circuit: no allocation pass at all.
		result.Reauction = AdviseReauction(supply, nil, e.params.ReauctionThreshold)
		return result
	}

	price = SecondPrice(price, buyerDemand)
	result.ClearingPrice = price
	result.ClearingQuantity = quantity

	tolerance := AmountFromFloat(e.params.PriceTolerance)
	result.Allocations, result.TotalTradeValue = Allocate(supply, buyerDemand, price, quantity, tolerance)
	result.Reauction = AdviseReauction(supply, result.Allocations, e.params.ReauctionThreshold)
	return result
}

// Clear runs one auction with default parameters and the default logger.
// Offers and bids should be built with NewSellerOffer and NewBuyerBid so
// that float conversion happens exactly once at the boundary.
func Clear(auctionID uuid.UUID, offers []SellerOffer, bids []BuyerBid, tickSize Amount) *ClearingResult {
	return New(Params{}, nil).Clear(Request{
		AuctionID:    auctionID,
		SellerOffers: offers,
		BuyerBids:    bids,
		TickSize:     tickSize,
	})
}
