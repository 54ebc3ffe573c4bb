package finance

import "loan-planner/domain"

// BuildCashFlows returns the borrower's signed cash flows: the net
// disbursement at period 0 followed by the net flow of each installment.
func BuildCashFlows(financed, initialCosts float64, rows []domain.InstallmentRow) []float64 {
	flows := make([]float64, 0, len(rows)+1)
	flows = append(flows, financed-initialCosts)
	for _, r := range rows {
		flows = append(flows, r.NetCashFlow)
	}
	return flows
}
