// Package receipt produces verifiable snapshots of clearing results.
// Results are encoded with deterministic CBOR so that identical inputs
// yield byte-identical payloads, hashed for audit references, and
// optionally wrapped in a COSE_Sign1 envelope so downstream consumers can
// verify that an allocation set really came from a given clearing run.
package receipt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"

	"github.com/agrimarket/openclearing/engine"
)

// encMode is the deterministic encoder shared by Encode and Digest.
// Core Deterministic Encoding guarantees one byte representation per
// value, which is what makes result digests comparable across runs.
var encMode cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("receipt: build CBOR encode mode: %v", err))
	}
	encMode = em
}

// Receipt is a signed clearing-result snapshot.
type Receipt struct {
	ReceiptID  uuid.UUID `json:"receipt_id"`
	AuctionID  uuid.UUID `json:"auction_id"`
	Digest     string    `json:"digest"`      // SHA-256 hex of the canonical payload
	SignedCBOR string    `json:"signed_cbor"` // base64 COSE_Sign1 envelope
}

// Encode serializes a clearing result to its canonical CBOR form.
// Encoding the same result twice produces identical bytes.
func Encode(res *engine.ClearingResult) ([]byte, error) {
	data, err := encMode.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode clearing result: %w", err)
	}
	return data, nil
}

// Decode parses a canonical payload back into a clearing result.
func Decode(data []byte) (*engine.ClearingResult, error) {
	var res engine.ClearingResult
	if err := cbor.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode clearing result: %w", err)
	}
	return &res, nil
}

// Digest returns the SHA-256 hex digest of the canonical encoding.
func Digest(res *engine.ClearingResult) (string, error) {
	data, err := Encode(res)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}

// Sign wraps the canonical encoding of a result in a COSE_Sign1 envelope
// (ES256) and returns the receipt.
func Sign(res *engine.ClearingResult, key crypto.Signer) (*Receipt, error) {
	payload, err := Encode(res)
	if err != nil {
		return nil, err
	}

	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return nil, fmt.Errorf("create COSE signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Payload = payload
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("sign clearing result: %w", err)
	}

	envelope, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("marshal COSE envelope: %w", err)
	}

	sum := sha256.Sum256(payload)
	return &Receipt{
		ReceiptID:  uuid.New(),
		AuctionID:  res.AuctionID,
		Digest:     fmt.Sprintf("%x", sum),
		SignedCBOR: base64.StdEncoding.EncodeToString(envelope),
	}, nil
}

// Verify checks the COSE signature and digest of a receipt against a
// public key and returns the embedded clearing result on success.
func Verify(rcpt *Receipt, key *ecdsa.PublicKey) (*engine.ClearingResult, error) {
	envelope, err := base64.StdEncoding.DecodeString(rcpt.SignedCBOR)
	if err != nil {
		return nil, fmt.Errorf("decode COSE envelope: %w", err)
	}

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(envelope); err != nil {
		return nil, fmt.Errorf("parse COSE envelope: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, key)
	if err != nil {
		return nil, fmt.Errorf("create COSE verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return nil, fmt.Errorf("COSE signature verification failed: %w", err)
	}

	sum := sha256.Sum256(msg.Payload)
	if digest := fmt.Sprintf("%x", sum); digest != rcpt.Digest {
		return nil, fmt.Errorf("payload digest mismatch: receipt has %s, payload is %s", rcpt.Digest, digest)
	}

	return Decode(msg.Payload)
}
