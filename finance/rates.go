package finance

import (
	"fmt"
	"math"

	"loan-planner/domain"
)

// ValidatePaymentsPerYear accepts only frequencies that split a year in whole months.
func ValidatePaymentsPerYear(paymentsPerYear int) error {
	switch paymentsPerYear {
	case 1, 2, 4, 6, 12:
		return nil
	}
	return fmt.Errorf("%w: frecuencia de pago no soportada: %d (use 1, 2, 4, 6 o 12)", ErrInvalidInput, paymentsPerYear)
}

// MonthsPerPeriod is the length of one payment period in months.
func MonthsPerPeriod(paymentsPerYear int) float64 {
	return 12 / float64(paymentsPerYear)
}

// EffectiveAnnualToMonthly converts a TEA to its equivalent TEM.
func EffectiveAnnualToMonthly(tea float64) float64 {
	return math.Pow(1+tea, 1.0/12) - 1
}

// NominalAnnualToMonthly converts a TNA compounded with the given
// capitalization to its equivalent TEM.
func NominalAnnualToMonthly(tna float64, capitalization domain.Capitalization) (float64, error) {
	m := capitalization.PeriodsPerYear()
	if m == 0 {
		return 0, fmt.Errorf("%w: capitalización desconocida: %v", ErrInvalidInput, capitalization)
	}
	tea := math.Pow(1+tna/float64(m), float64(m)) - 1
	return EffectiveAnnualToMonthly(tea), nil
}

// MonthlyRate derives the TEM of a rate configuration.
func MonthlyRate(cfg domain.RateConfiguration) (float64, error) {
	cfg = cfg.WithDefaults()
	switch cfg.RateType {
	case domain.RateEffective:
		return EffectiveAnnualToMonthly(cfg.AnnualRate), nil
	case domain.RateNominal:
		return NominalAnnualToMonthly(cfg.AnnualRate, cfg.Capitalization)
	}
	return 0, fmt.Errorf("%w: tipo de tasa desconocido: %v", ErrInvalidInput, cfg.RateType)
}

// MonthlyToPeriod compounds a TEM over one payment period.
func MonthlyToPeriod(tem float64, paymentsPerYear int) (float64, error) {
	if err := ValidatePaymentsPerYear(paymentsPerYear); err != nil {
		return 0, err
	}
	return math.Pow(1+tem, MonthsPerPeriod(paymentsPerYear)) - 1, nil
}

// PeriodicRate chains MonthlyRate and MonthlyToPeriod.
func PeriodicRate(cfg domain.RateConfiguration, paymentsPerYear int) (float64, error) {
	tem, err := MonthlyRate(cfg)
	if err != nil {
		return 0, err
	}
	return MonthlyToPeriod(tem, paymentsPerYear)
}
