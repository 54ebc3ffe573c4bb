package service

import (
	"fmt"
	"log/slog"

	"loan-planner/domain"
	"loan-planner/finance"
)

// LoanService answers quick monthly quotes on a nominal annual rate, without
// costs or grace.
type LoanService struct {
	log *slog.Logger
}

// NewLoanService creates a new LoanService. A nil logger means slog.Default().
func NewLoanService(log *slog.Logger) *LoanService {
	if log == nil {
		log = slog.Default()
	}
	return &LoanService{log: log}
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	// Validar entrada
	if !(input.Amount > 0) {
		return domain.LoanResult{}, fmt.Errorf("%w: monto inválido", finance.ErrInvalidInput)
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, fmt.Errorf("%w: monto excede el máximo permitido de $%.2f", finance.ErrInvalidInput, MaxLoanAmount)
	}
	if !(input.InterestRate >= 0) {
		return domain.LoanResult{}, fmt.Errorf("%w: tasa inválida", finance.ErrInvalidInput)
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, fmt.Errorf("%w: tasa de interés excede el máximo permitido de %.2f%%", finance.ErrInvalidInput, MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, fmt.Errorf("%w: plazo inválido", finance.ErrInvalidInput)
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, fmt.Errorf("%w: plazo excede el máximo permitido de %d meses", finance.ErrInvalidInput, MaxTermMonths)
	}

	tasaMensual := (input.InterestRate / 100) / 12
	cuota := finance.FixedPayment(input.Amount, tasaMensual, input.TermMonths, 0, domain.GraceNone)

	// Los totales se calculan sobre la cuota que efectivamente se cobra
	cuota = finance.Round2(cuota)
	total := finance.Round2(cuota * float64(input.TermMonths))
	intereses := finance.Round2(total - input.Amount)

	result := domain.LoanResult{
		MonthlyPayment: cuota,
		TotalPayment:   total,
		TotalInterest:  intereses,
	}

	s.log.Debug("loan quote",
		"amount", input.Amount,
		"interest_rate", input.InterestRate,
		"term_months", input.TermMonths,
		"monthly_payment", result.MonthlyPayment,
	)

	return result, nil
}
