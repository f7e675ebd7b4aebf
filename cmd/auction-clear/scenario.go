package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/agrimarket/openclearing/engine"
)

// scenario is the YAML input format: one auction's offers and bids.
type scenario struct {
	AuctionID string           `yaml:"auction_id"`
	TickSize  float64          `yaml:"tick_size"`
	Sellers   []scenarioSeller `yaml:"sellers"`
	Buyers    []scenarioBuyer  `yaml:"buyers"`
}

type scenarioSeller struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	OfferPrice   float64 `yaml:"offer_price"`
	DeliveryCost float64 `yaml:"delivery_cost"`
	Quantity     float64 `yaml:"quantity"`
}

type scenarioBuyer struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	BidPrice float64 `yaml:"bid_price"`
	Quantity float64 `yaml:"quantity"`
}

// loadScenario reads a scenario file and converts it into an engine
// request. Float values cross into fixed-point exactly once, here.
func loadScenario(path string, tickSize float64) (engine.Request, error) {
	var req engine.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read scenario file: %w", err)
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return req, fmt.Errorf("parse scenario yaml: %w", err)
	}

	auctionID := uuid.New()
	if sc.AuctionID != "" {
		auctionID, err = uuid.Parse(sc.AuctionID)
		if err != nil {
			return req, fmt.Errorf("parse auction_id: %w", err)
		}
	}

	if sc.TickSize > 0 {
		tickSize = sc.TickSize
	}

	offers := make([]engine.SellerOffer, 0, len(sc.Sellers))
	for _, s := range sc.Sellers {
		offers = append(offers, engine.NewSellerOffer(s.ID, s.Name, s.OfferPrice, s.DeliveryCost, s.Quantity))
	}

	bids := make([]engine.BuyerBid, 0, len(sc.Buyers))
	for _, b := range sc.Buyers {
		bids = append(bids, engine.NewBuyerBid(b.ID, b.Name, b.BidPrice, b.Quantity))
	}

	return engine.Request{
		AuctionID:    auctionID,
		SellerOffers: offers,
		BuyerBids:    bids,
		TickSize:     engine.AmountFromFloat(tickSize),
	}, nil
}
