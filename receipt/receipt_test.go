package receipt

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/agrimarket/openclearing/engine"
)

func clearedResult(t *testing.T) *engine.ClearingResult {
	t.Helper()
	return engine.Clear(
		uuid.MustParse("5a2b6c8e-1f3d-4a5b-9c7d-2e4f6a8b0c1d"),
		[]engine.SellerOffer{
			engine.NewSellerOffer("s1", "S1", 10, 0, 50),
			engine.NewSellerOffer("s2", "S2", 12, 0, 50),
		},
		[]engine.BuyerBid{
			engine.NewBuyerBid("b1", "B1", 13, 40),
			engine.NewBuyerBid("b2", "B2", 9, 80),
		},
		engine.AmountFromFloat(1),
	)
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Encode(clearedResult(t))
	assert.Nil(t, err)
	second, err := Encode(clearedResult(t))
	assert.Nil(t, err)

	// Identical clearing runs produce byte-identical canonical payloads.
	check.True(t, bytes.Equal(first, second))
}

func TestDecode_RoundTrip(t *testing.T) {
	res := clearedResult(t)

	data, err := Encode(res)
	assert.Nil(t, err)

	decoded, err := Decode(data)
	assert.Nil(t, err)
	check.Equal(t, res, decoded)
}

func TestDigest_Stable(t *testing.T) {
	first, err := Digest(clearedResult(t))
	assert.Nil(t, err)
	second, err := Digest(clearedResult(t))
	assert.Nil(t, err)

	check.Equal(t, first, second)
	check.Equal(t, 64, len(first)) // SHA-256 hex
}

func TestSignAndVerify(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)

	res := clearedResult(t)
	rcpt, err := Sign(res, key)
	assert.Nil(t, err)

	check.Equal(t, res.AuctionID, rcpt.AuctionID)
	check.NotEqual(t, uuid.Nil, rcpt.ReceiptID)

	verified, err := Verify(rcpt, &key.PublicKey)
	assert.Nil(t, err)
	check.Equal(t, res, verified)
}

func TestVerify_WrongKeyFails(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)

	rcpt, err := Sign(clearedResult(t), key)
	assert.Nil(t, err)

	_, err = Verify(rcpt, &otherKey.PublicKey)
	check.Error(t, err)
}

func TestVerify_TamperedDigestFails(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)

	rcpt, err := Sign(clearedResult(t), key)
	assert.Nil(t, err)
	rcpt.Digest = "0000000000000000000000000000000000000000000000000000000000000000"

	_, err = Verify(rcpt, &key.PublicKey)
	check.Error(t, err)
}
