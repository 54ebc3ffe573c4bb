package finance

import (
	"math"
	"testing"

	"loan-planner/domain"
)

func loanFlows(t *testing.T) []float64 {
	t.Helper()
	s, err := GenerateSchedule(200000, effective(0.085), domain.CostStructure{}, 20, 12, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s.Summary.CashFlows
}

func TestNPV(t *testing.T) {
	flows := []float64{-1000, 1100}
	if got := NPV(flows, 0.1, 1); math.Abs(got) > 1e-9 {
		t.Errorf("expected 0, got %v", got)
	}
	// 21% anual equivale a 10% semestral
	flows = []float64{-1000, 0, 1210}
	if got := NPV(flows, 0.21, 2); math.Abs(got) > 1e-9 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := NPV([]float64{5, 5, 5}, 0, 12); got != 15 {
		t.Errorf("expected 15 at a zero rate, got %v", got)
	}
}

func TestIRRPeriod_Simple(t *testing.T) {
	r, ok := IRRPeriod([]float64{100, -110})
	if !ok {
		t.Fatalf("expected a rate")
	}
	if math.Abs(r-0.1) > 1e-6 {
		t.Errorf("expected 0.1, got %v", r)
	}

	pct, ok := IRRAnnualPct([]float64{100, -110}, 1)
	if !ok || math.Abs(pct-10) > 1e-4 {
		t.Errorf("expected 10%%, got %v (ok=%v)", pct, ok)
	}
}

func TestIRR_RoundTrip(t *testing.T) {
	flows := loanFlows(t)

	irr, ok := IRRAnnualPct(flows, 12)
	if !ok {
		t.Fatalf("expected an IRR for a 240 installment loan")
	}
	if npv := NPV(flows, irr/100, 12); math.Abs(npv) > 0.01 {
		t.Errorf("expected NPV ≈ 0 at the IRR, got %v", npv)
	}
	// sin costos la TIR del préstamo es su TEA
	if math.Abs(irr-8.5) > 0.01 {
		t.Errorf("expected IRR ≈ 8.5%%, got %.4f", irr)
	}
}

func TestIRR_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
	}{
		{"all negative", []float64{-100, -10, -10, -10}},
		{"all positive", []float64{100, 10, 10}},
		{"all zero", []float64{0, 0, 0}},
		{"single flow", []float64{-100}},
		{"empty", nil},
		{"NaN", []float64{100, math.NaN(), -120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r, ok := IRRPeriod(tt.flows); ok {
				t.Errorf("expected no IRR, got %v", r)
			}
			if r, ok := IRRAnnualPct(tt.flows, 12); ok {
				t.Errorf("expected no annual IRR, got %v", r)
			}
		})
	}
}

func TestNPV_Monotonic(t *testing.T) {
	flows := loanFlows(t)
	lender := make([]float64, len(flows))
	for i, f := range flows {
		lender[i] = -f
	}

	rates := []float64{0, 0.02, 0.05, 0.085, 0.12, 0.3}
	for i := 1; i < len(rates); i++ {
		// para quien presta, más descuento es menos valor
		prev, cur := NPV(lender, rates[i-1], 12), NPV(lender, rates[i], 12)
		if !(cur < prev) {
			t.Errorf("lender NPV should decrease: %.2f at %.3f, %.2f at %.3f", prev, rates[i-1], cur, rates[i])
		}
		// y para el prestatario, el espejo
		if b0, b1 := NPV(flows, rates[i-1], 12), NPV(flows, rates[i], 12); !(b1 > b0) {
			t.Errorf("borrower NPV should increase: %.2f at %.3f, %.2f at %.3f", b0, rates[i-1], b1, rates[i])
		}
	}
}

func TestTCEAPct(t *testing.T) {
	s, err := GenerateSchedule(100000, effective(onePercentMonthly), domain.CostStructure{}, 1, 12, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bare, ok := TCEAPct(s.Summary.FinancedAmount, s.Rows, s.Summary.InitialCosts, 12)
	if !ok {
		t.Fatalf("expected a TCEA")
	}
	tea := onePercentMonthly * 100
	if math.Abs(bare-tea) > 0.01 {
		t.Errorf("expected TCEA ≈ TEA %.4f without costs, got %.4f", tea, bare)
	}

	costs := domain.CostStructure{NotarialFee: 500, AllRiskInsurancePct: 0.003, AdministrativeFee: 10}
	s, err = GenerateSchedule(100000, effective(onePercentMonthly), costs, 1, 12, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, ok := TCEAPct(s.Summary.FinancedAmount, s.Rows, s.Summary.InitialCosts, 12)
	if !ok {
		t.Fatalf("expected a TCEA")
	}
	if loaded <= bare {
		t.Errorf("expected costs to raise the TCEA: %.4f <= %.4f", loaded, bare)
	}
}

func TestDurationAndConvexity_SingleFlow(t *testing.T) {
	rows := make([]domain.InstallmentRow, 12)
	rows[11].NetCashFlow = -1000

	if got := Duration(rows, 0.01, 12); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected a duration of 1 year, got %v", got)
	}
	want := 12.0 * 13 / math.Pow(1.01, 2) / 144
	if got := Convexity(rows, 0.01, 12); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected convexity %v, got %v", want, got)
	}

	if Duration(nil, 0.01, 12) != 0 || Convexity(make([]domain.InstallmentRow, 3), 0.01, 12) != 0 {
		t.Errorf("expected 0 when there is no flow to weigh")
	}
}

func TestDuration_Annuity(t *testing.T) {
	s, err := GenerateSchedule(200000, effective(0.085), domain.CostStructure{}, 20, 12, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := Duration(s.Rows, s.Summary.PeriodicRate, 12)
	if d <= 0 || d >= 10 {
		t.Errorf("expected a duration under half the term, got %v", d)
	}
	if c := Convexity(s.Rows, s.Summary.PeriodicRate, 12); c <= d {
		t.Errorf("expected convexity %v to exceed duration %v over a 20 year plan", c, d)
	}
}
