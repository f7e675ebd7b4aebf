package engine

import (
	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places carried by Amount
// (0.0001 precision for currency-per-kg prices and MT quantities).
const amountPlaces int32 = 4

// Scale is the fixed-point scale factor: Amount stores value × Scale.
const Scale int64 = 10_000

var scaleDec = decimal.NewFromInt(Scale)

// Amount is a fixed-point monetary or quantity value scaled by Scale.
// All comparisons and accumulations inside the engine operate on Amount;
// float64 values exist only at the input and output boundaries. Naive
// float accumulation produces clearing price/quantity mismatches against
// the reference model, so this is a correctness requirement rather than
// a style choice.
type Amount int64

// AmountFromFloat converts a boundary float64 into fixed-point,
// rounding half away from zero at the fourth decimal place.
func AmountFromFloat(v float64) Amount {
	return AmountFromDecimal(decimal.NewFromFloat(v))
}

// AmountFromDecimal converts a decimal value into fixed-point.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(scaleDec).Round(0).IntPart())
}

// Decimal returns the exact decimal value of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -amountPlaces)
}

// Float64 returns the amount as a float64 for display use only.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// String formats the amount with all four decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(amountPlaces)
}

// IsMultipleOf reports whether the amount is an exact multiple of step.
// A non-positive step matches everything.
func (a Amount) IsMultipleOf(step Amount) bool {
	if step <= 0 {
		return true
	}
	return int64(a)%int64(step) == 0
}

// MarshalJSON renders the amount as a plain JSON number with its
// decimal point restored, e.g. 11.5556.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().String()), nil
}

// UnmarshalJSON accepts any JSON number and converts it to fixed-point.
func (a *Amount) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	*a = AmountFromDecimal(d)
	return nil
}

func minAmount(a, b Amount) Amount {
	if a < b {
		return a
	}
	return b
}
