package finance

import "loan-planner/domain"

// Simulate runs the whole engine on a request: schedule, cash flows and
// indicators. It reads nothing but its argument.
func Simulate(req domain.PlanRequest) (domain.Simulation, error) {
	cfg := req.Rate.WithDefaults()
	s, err := GenerateSchedule(req.LoanAmount(), cfg, req.Costs, req.TermYears, req.PaymentsPerYear, req.Bonus)
	if err != nil {
		return domain.Simulation{}, err
	}
	ind, err := Analyze(s, cfg, req.PaymentsPerYear)
	if err != nil {
		return domain.Simulation{}, err
	}
	return domain.Simulation{
		Summary:    s.Summary,
		Rows:       s.Rows,
		Indicators: ind,
	}, nil
}
