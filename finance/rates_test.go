package finance

import (
	"errors"
	"math"
	"testing"

	"loan-planner/domain"
)

func TestEffectiveAnnualToMonthly(t *testing.T) {
	tem := EffectiveAnnualToMonthly(math.Pow(1.01, 12) - 1)
	if math.Abs(tem-0.01) > 1e-12 {
		t.Errorf("expected 0.01, got %.15f", tem)
	}
}

func TestNominalAnnualToMonthly(t *testing.T) {
	tests := []struct {
		cap  domain.Capitalization
		want float64
	}{
		// 12% nominal capitalizable mensual es exactamente 1% mensual
		{domain.CapitalizationMonthly, 0.01},
		{domain.CapitalizationQuarterly, math.Pow(1.03, 1.0/3) - 1},
		{domain.CapitalizationSemiannual, math.Pow(1.06, 1.0/6) - 1},
		{domain.CapitalizationAnnual, math.Pow(1.12, 1.0/12) - 1},
		{domain.CapitalizationBimonthly, math.Pow(1.02, 0.5) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			got, err := NominalAnnualToMonthly(0.12, tt.cap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %.12f, got %.12f", tt.want, got)
			}
		})
	}

	if _, err := NominalAnnualToMonthly(0.12, domain.Capitalization(42)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMonthlyToPeriod(t *testing.T) {
	got, err := MonthlyToPeriod(0.01, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Pow(1.01, 3) - 1
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %.12f, got %.12f", want, got)
	}
}

func TestValidatePaymentsPerYear(t *testing.T) {
	for _, n := range []int{1, 2, 4, 6, 12} {
		if err := ValidatePaymentsPerYear(n); err != nil {
			t.Errorf("%d: unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{0, -12, 3, 5, 24, 52} {
		if err := ValidatePaymentsPerYear(n); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%d: expected ErrInvalidInput, got %v", n, err)
		}
	}
	if _, err := MonthlyToPeriod(0.01, 3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected MonthlyToPeriod to reject 3 payments per year, got %v", err)
	}
}

func TestPeriodicRate_DefaultsNominalToMonthly(t *testing.T) {
	cfg := domain.RateConfiguration{
		Currency:   domain.CurrencyPEN,
		RateType:   domain.RateNominal,
		AnnualRate: 0.12,
	}
	got, err := PeriodicRate(cfg, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.01) > 1e-12 {
		t.Errorf("expected 0.01, got %.12f", got)
	}

	if _, err := MonthlyRate(domain.RateConfiguration{AnnualRate: 0.1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a missing rate type, got %v", err)
	}
}
