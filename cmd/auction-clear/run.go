package main

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/agrimarket/openclearing/config"
	"github.com/agrimarket/openclearing/engine"
	"github.com/agrimarket/openclearing/receipt"
)

func loadParams(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(configPath)
}

func doRun(scenarioPath, configPath, receiptPath string) error {
	cfg, err := loadParams(configPath)
	if err != nil {
		return err
	}

	req, err := loadScenario(scenarioPath, cfg.Engine.TickSize)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Params{
		ReauctionThreshold: cfg.Engine.ReauctionThreshold,
		PriceTolerance:     cfg.Engine.PriceTolerance,
	}, nil)

	res := eng.Clear(req)

	fmt.Printf("auction:           %s\n", res.AuctionID)
	fmt.Printf("clearing type:     %s\n", res.ClearingType)
	fmt.Printf("clearing price:    %s\n", res.ClearingPrice)
	fmt.Printf("clearing quantity: %s MT\n", res.ClearingQuantity)
	fmt.Printf("total trade value: %s\n", res.TotalTradeValue)
	fmt.Printf("allocations:       %d\n", len(res.Allocations))
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w.Message)
	}
	if res.Reauction.ShouldReauction {
		fmt.Printf("re-auction advised: %s (%d leftover offers)\n",
			res.Reauction.Reason, len(res.Reauction.Leftovers))
	}

	out, err := json.MarshalIndent(res.Allocations, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal allocations: %w", err)
	}
	fmt.Println(string(out))

	if receiptPath == "" {
		return nil
	}
	return writeReceipt(res, receiptPath)
}

// writeReceipt signs the result with an ephemeral ES256 key and writes the
// receipt as JSON. Production callers hold a long-lived key; the CLI only
// demonstrates the envelope format.
func writeReceipt(res *engine.ClearingResult, path string) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate signing key: %w", err)
	}

	rcpt, err := receipt.Sign(res, key)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rcpt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write receipt file: %w", err)
	}

	fmt.Printf("receipt %s written to %s (digest %s)\n", rcpt.ReceiptID, path, rcpt.Digest)
	return nil
}

// doDigest clears the scenario twice and prints the canonical digest,
// failing loudly if the two runs ever diverge.
func doDigest(scenarioPath, configPath string) error {
	cfg, err := loadParams(configPath)
	if err != nil {
		return err
	}

	req, err := loadScenario(scenarioPath, cfg.Engine.TickSize)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Params{
		ReauctionThreshold: cfg.Engine.ReauctionThreshold,
		PriceTolerance:     cfg.Engine.PriceTolerance,
	}, nil)

	first, err := receipt.Encode(eng.Clear(req))
	if err != nil {
		return err
	}
	second, err := receipt.Encode(eng.Clear(req))
	if err != nil {
		return err
	}
	if !bytes.Equal(first, second) {
		return fmt.Errorf("clearing is not deterministic: %d byte and %d byte encodings differ", len(first), len(second))
	}

	digest, err := receipt.Digest(eng.Clear(req))
	if err != nil {
		return err
	}
	fmt.Println(digest)
	return nil
}
