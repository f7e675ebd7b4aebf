package engine

import "github.com/google/uuid"

// ClearingType classifies how (or whether) the market cleared.
type ClearingType string

const (
	// ClearingExact means a supply point closed the supply/demand gap exactly.
	ClearingExact ClearingType = "EXACT"
	// ClearingInterpolated means the gap changed sign between two supply
	// points and the clearing point was interpolated between them.
	ClearingInterpolated ClearingType = "INTERPOLATED"
	// ClearingNone means demand and supply never intersect; no trades occur.
	ClearingNone ClearingType = "NO_CLEARING"
)

// SellerOffer is a single fixed price-quantity offer. LandedCost orders the
// supply curve but is never used for settlement. Offers are immutable for
// the duration of a clearing run.
type SellerOffer struct {
	SellerID     string `json:"seller_id"`
	DisplayName  string `json:"display_name"`
	OfferPrice   Amount `json:"offer_price"`   // currency per kg
	DeliveryCost Amount `json:"delivery_cost"` // currency per kg, from distance lookup
	LandedCost   Amount `json:"landed_cost"`   // offer price + delivery cost, ranking only
	Quantity     Amount `json:"quantity"`      // metric tons
}

// NewSellerOffer converts boundary float values into a fixed-point offer.
// The delivery cost is expected to be precomputed by the caller from its
// distance lookup; the engine never computes distance itself.
func NewSellerOffer(sellerID, displayName string, offerPrice, deliveryCost, quantity float64) SellerOffer {
	price := AmountFromFloat(offerPrice)
	delivery := AmountFromFloat(deliveryCost)
	return SellerOffer{
		SellerID:     sellerID,
		DisplayName:  displayName,
		OfferPrice:   price,
		DeliveryCost: delivery,
		LandedCost:   price + delivery,
		Quantity:     AmountFromFloat(quantity),
	}
}

// BuyerBid is one independent price-quantity bid. A buyer may submit any
// number of bids; each is allocated independently and never merged into a
// per-buyer total.
type BuyerBid struct {
	BuyerID     string `json:"buyer_id"`
	DisplayName string `json:"display_name"`
	BidPrice    Amount `json:"bid_price"` // currency per kg
	Quantity    Amount `json:"quantity"`  // metric tons
}

// NewBuyerBid converts boundary float values into a fixed-point bid.
func NewBuyerBid(buyerID, displayName string, bidPrice, quantity float64) BuyerBid {
	return BuyerBid{
		BuyerID:     buyerID,
		DisplayName: displayName,
		BidPrice:    AmountFromFloat(bidPrice),
		Quantity:    AmountFromFloat(quantity),
	}
}

// SupplyPoint is one row of the supply curve: a seller offer in landed-cost
// order with the running supply total. Price carries the offer price, not
// the landed cost, because settlement comparisons happen at offer prices.
type SupplyPoint struct {
	SellerID         string `json:"seller_id"`
	DisplayName      string `json:"display_name"`
	Price            Amount `json:"price"`
	LandedCost       Amount `json:"landed_cost"`
	Quantity         Amount `json:"quantity"`
	CumulativeSupply Amount `json:"cumulative_supply"`
}

// MarketDemandPoint is one row of the aggregated demand curve: all bid
// quantity at a single distinct price. Rows are sorted price descending and
// cumulated from the lowest price upward, so the highest-price row carries
// total demand. Used only to locate the clearing price, never to allocate.
type MarketDemandPoint struct {
	Price            Amount `json:"price"`
	Quantity         Amount `json:"quantity"`
	CumulativeDemand Amount `json:"cumulative_demand"`
}

// GapPoint is one row of the gap table, index-aligned with the supply curve.
type GapPoint struct {
	Price            Amount `json:"price"`
	CumulativeSupply Amount `json:"cumulative_supply"`
	Demand           Amount `json:"demand"`
	Gap              Amount `json:"gap"`
}

// Allocation records one buyer-seller quantity transfer at the clearing
// price. Savings and bonus may be negative; clamping to zero is a
// presentation concern, not an engine concern.
type Allocation struct {
	BuyerID          string `json:"buyer_id"`
	SellerID         string `json:"seller_id"`
	Quantity         Amount `json:"quantity"`
	FinalPrice       Amount `json:"final_price"`
	BuyerBidPrice    Amount `json:"buyer_bid_price"`
	SellerOfferPrice Amount `json:"seller_offer_price"`
	TradeValue       Amount `json:"trade_value"`
	BuyerSavings     Amount `json:"buyer_savings"`
	SellerBonus      Amount `json:"seller_bonus"`
}

// LeftoverOffer is unsold seller quantity carried forward as a seed offer
// for a follow-on auction. Creating that auction is the caller's job.
type LeftoverOffer struct {
	SellerID    string `json:"seller_id"`
	DisplayName string `json:"display_name"`
	OfferPrice  Amount `json:"offer_price"`
	Quantity    Amount `json:"quantity"`
}

// ReauctionAdvice reports how much supply went unsold and whether a
// follow-on auction should be seeded from the leftovers.
type ReauctionAdvice struct {
	TotalSupply     Amount          `json:"total_supply"`
	TotalAllocated  Amount          `json:"total_allocated"`
	UnsoldRatio     float64         `json:"unsold_ratio"`
	ShouldReauction bool            `json:"should_reauction"`
	Reason          string          `json:"reason,omitempty"`
	Leftovers       []LeftoverOffer `json:"leftovers,omitempty"`
}

// ValidationWarning flags a bid that violates an input rule but was still
// admitted to clearing. Reference behavior is warn-not-reject.
type ValidationWarning struct {
	BuyerID  string `json:"buyer_id"`
	BidPrice Amount `json:"bid_price"`
	Message  string `json:"message"`
}

// Request is one immutable clearing invocation. AuctionID identifies the
// auction being ended; it is an explicit parameter rather than ambient
// state so that concurrent auctions cannot bleed into each other.
type Request struct {
	AuctionID    uuid.UUID     `json:"auction_id"`
	SellerOffers []SellerOffer `json:"seller_offers"`
	BuyerBids    []BuyerBid    `json:"buyer_bids"`
	TickSize     Amount        `json:"tick_size"`
}

// ClearingResult bundles the clearing point, the audit curves that located
// it, the trade allocations, and the re-auction advisory. Callers must
// check ClearingType before trusting Allocations.
type ClearingResult struct {
	AuctionID        uuid.UUID           `json:"auction_id"`
	ClearingType     ClearingType        `json:"clearing_type"`
	ClearingPrice    Amount              `json:"clearing_price"`
	ClearingQuantity Amount              `json:"clearing_quantity"`
	SupplyCurve      []SupplyPoint       `json:"supply_curve"`
	DemandCurve      []MarketDemandPoint `json:"demand_curve"`
	GapTable         []GapPoint          `json:"gap_table"`
	Allocations      []Allocation        `json:"allocations"`
	TotalTradeValue  Amount              `json:"total_trade_value"`
	Reauction        ReauctionAdvice     `json:"reauction"`
	Warnings         []ValidationWarning `json:"warnings,omitempty"`
}
