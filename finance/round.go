package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// round rounds half away from zero on the shortest decimal representation
// of v, so 1.005 becomes 1.01 instead of 1.00.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 { return round(v, 2) }

// Round4 rounds a rate or a percentage to four decimals.
func Round4(v float64) float64 { return round(v, 4) }
