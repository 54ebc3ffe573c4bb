package finance

import (
	"fmt"
	"math"

	"loan-planner/domain"
)

// Schedule is the installment plan of a loan under the French system.
type Schedule struct {
	Rows    []domain.InstallmentRow
	Summary domain.PlanSummary
}

// FixedPayment returns the constant installment of the French system.
// Under total grace the unpaid interest of the grace window is capitalized
// and only the remaining installments amortize; when none remain the plan
// is degenerate and the payment is 0.
func FixedPayment(
	principal float64,
	periodicRate float64,
	installments int,
	gracePeriods int,
	graceType domain.GraceType,
) float64 {
	n := installments
	pv := principal
	if graceType == domain.GraceTotal {
		n = installments - gracePeriods
		if n <= 0 {
			return 0
		}
		if gracePeriods > 0 {
			pv = principal * math.Pow(1+periodicRate, float64(gracePeriods))
		}
	}
	if n <= 0 {
		return 0
	}

	if periodicRate == 0 {
		return pv / float64(n)
	}
	factor := math.Pow(1+periodicRate, float64(n))
	return pv * (periodicRate * factor) / (factor - 1)
}

// remainingBalance is the present value of the installments still to pay.
// Subtracting payment minus interest row by row loses every digit of the
// amortization when the rate is high and the term long.
func remainingBalance(payment, periodicRate float64, remaining int) float64 {
	if remaining <= 0 {
		return 0
	}
	if periodicRate == 0 {
		return payment * float64(remaining)
	}
	return payment * (1 - math.Pow(1+periodicRate, -float64(remaining))) / periodicRate
}

// InitialCosts is what the borrower pays upfront on the financed amount.
func InitialCosts(financed float64, costs domain.CostStructure) float64 {
	costs = costs.Normalize()
	return costs.FixedInitialCosts() +
		financed*costs.ActivationCommissionPct +
		financed*costs.LifeInsurancePct
}

// periodicInsuranceRate compounds an annual insurance rate over one payment period.
func periodicInsuranceRate(annualPct float64, paymentsPerYear int) float64 {
	if annualPct <= 0 {
		return 0
	}
	return math.Pow(1+annualPct, MonthsPerPeriod(paymentsPerYear)/12) - 1
}

// GenerateSchedule builds the full installment plan. Bonus is subtracted
// from the principal before anything else is computed.
func GenerateSchedule(
	principal float64,
	cfg domain.RateConfiguration,
	costs domain.CostStructure,
	termYears int,
	paymentsPerYear int,
	bonus float64,
) (Schedule, error) {
	cfg = cfg.WithDefaults()
	if err := validateSchedule(principal, cfg, costs, termYears, paymentsPerYear, bonus); err != nil {
		return Schedule{}, err
	}

	rate, err := PeriodicRate(cfg, paymentsPerYear)
	if err != nil {
		return Schedule{}, err
	}

	installments := termYears * paymentsPerYear
	financed := max(0, principal-bonus)
	initialCosts := InitialCosts(financed, costs)
	costs = costs.Normalize()
	payment := FixedPayment(financed, rate, installments, cfg.GracePeriods, cfg.GraceType)

	var warnings []string
	degenerate := false
	reportedPayment := payment
	if cfg.GraceType == domain.GraceTotal && installments <= cfg.GracePeriods {
		degenerate = true
		warnings = append(warnings, fmt.Sprintf(
			"la gracia total de %d periodos cubre las %d cuotas: no queda ninguna cuota que amortice el préstamo",
			cfg.GracePeriods, installments))
	}
	if cfg.GraceType == domain.GracePartial && installments <= cfg.GracePeriods {
		warnings = append(warnings, fmt.Sprintf(
			"la gracia parcial de %d periodos cubre las %d cuotas: el capital nunca se amortiza",
			cfg.GracePeriods, installments))
		reportedPayment = 0
	}

	// Si la cuota se calculó sobre las mismas filas que la pagan, el saldo es
	// el valor presente de las cuotas restantes.
	annuityBalance := cfg.GraceType != domain.GracePartial || cfg.GracePeriods == 0

	lifeRate := periodicInsuranceRate(costs.LifeInsurancePct, paymentsPerYear)
	allRiskRate := periodicInsuranceRate(costs.AllRiskInsurancePct, paymentsPerYear)
	allRisk := financed * allRiskRate
	flatFees := costs.FlatPeriodicFees()

	rows := make([]domain.InstallmentRow, 0, installments)
	balance := financed
	totalInterest := 0.0
	totalPaid := 0.0

	for i := 1; i <= installments; i++ {
		opening := balance
		interest := balance * rate

		var paid, prepayment float64
		capitalized := false
		switch {
		case i <= cfg.GracePeriods && cfg.GraceType == domain.GraceTotal:
			balance += interest
			capitalized = true
		case i <= cfg.GracePeriods && cfg.GraceType == domain.GracePartial:
			paid = interest
		default:
			paid = payment
			if annuityBalance {
				balance = remainingBalance(payment, rate, installments-i)
			} else {
				balance -= paid - interest
			}
		}

		life := balance * lifeRate
		flow := -(paid + life + allRisk + flatFees + prepayment)

		// Los saldos se redondean una sola vez y la amortización (o el interés
		// capitalizado) se deriva de ellos, así el cuadre del saldo no acumula deriva.
		openingR, closingR := Round2(opening), Round2(balance)
		interestR, amortizationR := Round2(interest), 0.0
		if capitalized {
			interestR = Round2(closingR - openingR)
		} else {
			amortizationR = Round2(openingR - closingR)
		}

		row := domain.InstallmentRow{
			Number:             i,
			OpeningBalance:     openingR,
			Interest:           interestR,
			Amortization:       amortizationR,
			Payment:            Round2(paid),
			Prepayment:         Round2(prepayment),
			LifeInsurance:      Round2(life),
			AllRiskInsurance:   Round2(allRisk),
			Commission:         Round2(costs.PeriodicCommission),
			Postage:            Round2(costs.Postage),
			AdministrativeFees: Round2(costs.AdministrativeFee + costs.AccountMaintenanceFee),
			ClosingBalance:     closingR,
			NetCashFlow:        Round2(flow),
		}
		rows = append(rows, row)

		totalInterest += interest
		totalPaid -= row.NetCashFlow
	}

	return Schedule{
		Rows: rows,
		Summary: domain.PlanSummary{
			FixedPayment:   Round2(reportedPayment),
			TotalInterest:  Round2(totalInterest),
			InitialCosts:   Round2(initialCosts),
			CashFlows:      BuildCashFlows(financed, initialCosts, rows),
			FinancedAmount: Round2(financed),
			PeriodicRate:   rate,
			Installments:   installments,
			TotalPaid:      Round2(totalPaid),
			Degenerate:     degenerate,
			Warnings:       warnings,
		},
	}, nil
}

func validateSchedule(
	principal float64,
	cfg domain.RateConfiguration,
	costs domain.CostStructure,
	termYears int,
	paymentsPerYear int,
	bonus float64,
) error {
	// Validar entrada
	if !(principal > 0) || math.IsInf(principal, 0) {
		return fmt.Errorf("%w: monto inválido: %v", ErrInvalidInput, principal)
	}
	if termYears <= 0 {
		return fmt.Errorf("%w: plazo inválido: %d años", ErrInvalidInput, termYears)
	}
	if err := ValidatePaymentsPerYear(paymentsPerYear); err != nil {
		return err
	}
	if !(bonus >= 0) {
		return fmt.Errorf("%w: bono inválido: %v", ErrInvalidInput, bonus)
	}
	if !cfg.Currency.Valid() {
		return fmt.Errorf("%w: moneda desconocida: %v", ErrInvalidInput, cfg.Currency)
	}
	if !cfg.RateType.Valid() {
		return fmt.Errorf("%w: tipo de tasa desconocido: %v", ErrInvalidInput, cfg.RateType)
	}
	if cfg.RateType == domain.RateNominal && !cfg.Capitalization.Valid() {
		return fmt.Errorf("%w: capitalización desconocida: %v", ErrInvalidInput, cfg.Capitalization)
	}
	if !cfg.GraceType.Valid() {
		return fmt.Errorf("%w: tipo de gracia desconocido: %v", ErrInvalidInput, cfg.GraceType)
	}
	if !(cfg.AnnualRate >= 0) || math.IsInf(cfg.AnnualRate, 0) {
		return fmt.Errorf("%w: tasa inválida: %v", ErrInvalidInput, cfg.AnnualRate)
	}
	if !(cfg.DiscountRate >= 0) || math.IsInf(cfg.DiscountRate, 0) {
		return fmt.Errorf("%w: tasa de descuento inválida: %v", ErrInvalidInput, cfg.DiscountRate)
	}
	if cfg.GracePeriods < 0 {
		return fmt.Errorf("%w: periodo de gracia inválido: %d", ErrInvalidInput, cfg.GracePeriods)
	}

	for _, c := range []struct {
		name  string
		value float64
	}{
		{"costes notariales", costs.NotarialFee},
		{"costes registrales", costs.RegistryFee},
		{"tasación", costs.AppraisalFee},
		{"comisión de estudio", costs.StudyFee},
		{"seguro de riesgo inicial", costs.AllRiskInitialFee},
		{"comisión de activación", costs.ActivationCommissionPct},
		{"seguro de desgravamen", costs.LifeInsurancePct},
		{"seguro contra todo riesgo", costs.AllRiskInsurancePct},
		{"gastos de administración", costs.AdministrativeFee},
		{"mantenimiento de cuenta", costs.AccountMaintenanceFee},
		{"comisión periódica", costs.PeriodicCommission},
		{"portes", costs.Postage},
	} {
		if !(c.value >= 0) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s inválido: %v", ErrInvalidInput, c.name, c.value)
		}
	}
	return nil
}
