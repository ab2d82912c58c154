package orderbook

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimal is an arbitrary-precision signed decimal truncated to a fixed
// number of significant digits at construction time. Precision here always
// means significant digits, never fractional digits: "0.00000030003" at
// precision 11 keeps all five of its significant digits untouched, while
// the same value at precision 3 truncates to "0.0000003".
type Decimal struct {
	d decimal.Decimal
}

// NewDecimalFromString parses s and truncates it to the leftmost sig
// significant digits. sig must be positive.
func NewDecimalFromString(s string, sig uint64) (Decimal, error) {
	if sig == 0 {
		return Decimal{}, fmt.Errorf("orderbook: precision must be positive")
	}

	raw, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("orderbook: invalid decimal %q: %w", s, err)
	}

	return Decimal{d: truncateSignificant(raw, sig)}, nil
}

// truncateSignificant keeps the leftmost n significant digits of d, dropping
// the rest without rounding. Sign is preserved.
func truncateSignificant(d decimal.Decimal, sig uint64) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	neg := d.IsNegative()
	abs := d.Abs()

	coeff := abs.Coefficient()
	exp := abs.Exponent()

	digits := len(coeff.String())
	n := int(sig)
	if digits <= n {
		if neg {
			return abs.Neg()
		}
		return abs
	}

	drop := digits - n
	truncatedStr := coeff.String()[:n]
	truncatedCoeff, ok := new(big.Int).SetString(truncatedStr, 10)
	if !ok {
		// unreachable: coeff.String() only ever contains decimal digits
		truncatedCoeff = big.NewInt(0)
	}
	result := decimal.NewFromBigInt(truncatedCoeff, exp+int32(drop))

	if neg {
		return result.Neg()
	}
	return result
}

// Sub subtracts other from d, exact (no truncation applied here).
func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{d: d.d.Sub(other.d)}
}

// TruncateSignificant truncates d to sig significant digits.
func (d Decimal) TruncateSignificant(sig uint64) Decimal {
	return Decimal{d: truncateSignificant(d.d, sig)}
}

// Float64 performs the lossy conversion to a 64-bit float.
func (d Decimal) Float64() float64 {
	f, _ := d.d.Float64()
	return f
}

// Raw exposes the underlying decimal.Decimal, used as an ordered map key.
func (d Decimal) Raw() decimal.Decimal {
	return d.d
}

// String renders the exact decimal value.
func (d Decimal) String() string {
	return d.d.String()
}
