package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billón
	MaxInterestRate = 1000.0          // 1000% anual, en porcentaje
	MaxTermMonths   = 600             // 50 años
	MinTermMonths   = 1
	MaxTermYears    = MaxTermMonths / 12

	// tasa anual máxima de un plan, en decimal
	MaxAnnualRate = MaxInterestRate / 100

	DefaultCacheTTL = 24 * time.Hour
	cacheKeyPrefix  = "plan:"
)

// Limits bounds the size of a single simulation request.
type Limits struct {
	MaxLoanAmount float64
	MaxTermYears  int
	MaxAnnualRate float64
}

func DefaultLimits() Limits {
	return Limits{
		MaxLoanAmount: MaxLoanAmount,
		MaxTermYears:  MaxTermYears,
		MaxAnnualRate: MaxAnnualRate,
	}
}
