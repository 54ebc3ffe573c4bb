package finance

import (
	"math"

	"loan-planner/domain"
)

const (
	irrLow       = -0.99
	irrHigh      = 5.0
	irrHighRetry = 10.0
	irrTolerance = 1e-7
	irrMaxIter   = 300
)

// NPV discounts flows at the periodic equivalent of an annual rate.
// flows[0] is not discounted.
func NPV(flows []float64, annualDiscountRate float64, paymentsPerYear int) float64 {
	r := math.Pow(1+annualDiscountRate, 1/float64(paymentsPerYear)) - 1
	return presentValue(flows, r)
}

func presentValue(flows []float64, r float64) float64 {
	sum := 0.0
	for i, f := range flows {
		sum += f / math.Pow(1+r, float64(i))
	}
	return sum
}

// futureValue is presentValue scaled by (1+r)^n. It has the same sign and
// the same roots for r > -1 and stays finite where presentValue overflows
// near r = -1.
func futureValue(flows []float64, r float64) float64 {
	n := len(flows) - 1
	sum := 0.0
	for i, f := range flows {
		sum += f * math.Pow(1+r, float64(n-i))
	}
	return sum
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// npvSign returns the sign of the present value at r, and false when it
// cannot be told.
func npvSign(flows []float64, r float64) (float64, bool) {
	if v := presentValue(flows, r); finite(v) {
		return v, true
	}
	if v := futureValue(flows, r); finite(v) {
		return v, true
	}
	return 0, false
}

// mixedSigns reports whether flows hold at least one positive and one
// negative value; without both there is no rate to find.
func mixedSigns(flows []float64) bool {
	pos, neg := false, false
	for _, f := range flows {
		pos = pos || f > 0
		neg = neg || f < 0
	}
	return pos && neg
}

// bracket looks for an interval whose endpoints have opposite signs.
func bracket(flows []float64) (low, high, fLow float64, ok bool) {
	for _, hi := range []float64{irrHigh, irrHighRetry} {
		fl, okLow := npvSign(flows, irrLow)
		fh, okHigh := npvSign(flows, hi)
		if !okLow || !okHigh {
			return 0, 0, 0, false
		}
		if fl*fh <= 0 {
			return irrLow, hi, fl, true
		}
	}
	return 0, 0, 0, false
}

// IRRPeriod finds the periodic rate that zeroes the present value of flows
// by bisection. It reports false when there is no sign change to bracket or
// the evaluation stops being finite.
func IRRPeriod(flows []float64) (float64, bool) {
	if !mixedSigns(flows) {
		return 0, false
	}
	low, high, fLow, ok := bracket(flows)
	if !ok {
		return 0, false
	}

	mid := 0.0
	for i := 0; i < irrMaxIter; i++ {
		mid = (low + high) / 2
		fMid := presentValue(flows, mid)
		if !finite(fMid) {
			return 0, false
		}
		if math.Abs(fMid) < irrTolerance {
			return mid, true
		}
		if fLow*fMid <= 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
	}
	return mid, true
}

// IRRAnnualPct annualizes IRRPeriod, in percent.
func IRRAnnualPct(flows []float64, paymentsPerYear int) (float64, bool) {
	r, ok := IRRPeriod(flows)
	if !ok {
		return 0, false
	}
	return (math.Pow(1+r, float64(paymentsPerYear)) - 1) * 100, true
}

// TCEAPct is the all-in annual cost of the credit, in percent: the IRR of
// the amount received against every payment, insurance and fee.
func TCEAPct(financed float64, rows []domain.InstallmentRow, initialCosts float64, paymentsPerYear int) (float64, bool) {
	flows := make([]float64, 0, len(rows)+1)
	flows = append(flows, financed-initialCosts)
	for _, r := range rows {
		flows = append(flows, -r.TotalOutflow())
	}
	return IRRAnnualPct(flows, paymentsPerYear)
}

// Duration is the Macaulay duration of the installment flows, in years.
func Duration(rows []domain.InstallmentRow, periodicRate float64, paymentsPerYear int) float64 {
	weighted, total := 0.0, 0.0
	for i, r := range rows {
		t := float64(i + 1)
		pv := math.Abs(r.NetCashFlow) / math.Pow(1+periodicRate, t)
		weighted += t * pv
		total += pv
	}
	if total == 0 {
		return 0
	}
	return weighted / total / float64(paymentsPerYear)
}

// Convexity is the second-order analogue of Duration, in years².
func Convexity(rows []domain.InstallmentRow, periodicRate float64, paymentsPerYear int) float64 {
	weighted, total := 0.0, 0.0
	for i, r := range rows {
		t := float64(i + 1)
		pv := math.Abs(r.NetCashFlow) / math.Pow(1+periodicRate, t)
		weighted += t * (t + 1) * pv
		total += pv
	}
	if total == 0 {
		return 0
	}
	ppy := float64(paymentsPerYear)
	return weighted / (total * math.Pow(1+periodicRate, 2)) / (ppy * ppy)
}

// Analyze computes the indicator set of a schedule.
func Analyze(s Schedule, cfg domain.RateConfiguration, paymentsPerYear int) (domain.Indicators, error) {
	tem, err := MonthlyRate(cfg)
	if err != nil {
		return domain.Indicators{}, err
	}
	rate, err := MonthlyToPeriod(tem, paymentsPerYear)
	if err != nil {
		return domain.Indicators{}, err
	}

	ind := domain.Indicators{
		NPV:          Round2(NPV(s.Summary.CashFlows, cfg.DiscountRate, paymentsPerYear)),
		Duration:     Round4(Duration(s.Rows, rate, paymentsPerYear)),
		Convexity:    Round4(Convexity(s.Rows, rate, paymentsPerYear)),
		TEA:          Round4((math.Pow(1+tem, 12) - 1) * 100),
		TEM:          Round4(tem * 100),
		DiscountRate: Round4(cfg.DiscountRate * 100),
	}
	if irr, ok := IRRAnnualPct(s.Summary.CashFlows, paymentsPerYear); ok {
		v := Round4(irr)
		ind.IRR = &v
	}
	if tcea, ok := TCEAPct(s.Summary.FinancedAmount, s.Rows, s.Summary.InitialCosts, paymentsPerYear); ok {
		v := Round4(tcea)
		ind.TCEA = &v
	}
	return ind, nil
}
