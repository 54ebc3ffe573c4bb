package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"loan-planner/domain"
	"loan-planner/report"
	"loan-planner/service"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	out io.Writer

	file     string
	asJSON   bool
	maxRows  int
	req      domain.PlanRequest
	currency string
	rateType string
	capital  string
	grace    string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "print the payment plan and indicators of a loan" }
func (*simulateCmd) Usage() string {
	return `loan-planner simulate [-f <request.json>] [-principal <n>] [-rate <tea>] [-years <n>] [-json]

  Simulates a payment plan under the French system. A request file, when
  given, replaces every other input flag.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "JSON plan request to simulate")
	f.BoolVar(&c.asJSON, "json", false, "Print the simulation as JSON instead of a report")
	f.IntVar(&c.maxRows, "rows", 0, "Maximum number of installments in the report, 0 for all")

	f.Float64Var(&c.req.Principal, "principal", 0, "Amount to finance")
	f.Float64Var(&c.req.PropertyPrice, "price", 0, "Property price; when set the principal is price minus down payment")
	f.Float64Var(&c.req.DownPayment, "down", 0, "Down payment")
	f.IntVar(&c.req.TermYears, "years", 20, "Term in years")
	f.IntVar(&c.req.PaymentsPerYear, "ppy", 12, "Payments per year: 1, 2, 4, 6 or 12")
	f.Float64Var(&c.req.Bonus, "bonus", 0, "Bonus subtracted from the principal")

	f.StringVar(&c.currency, "currency", "PEN", "Currency: PEN or USD")
	f.StringVar(&c.rateType, "rate-type", "EFFECTIVE", "Rate type: EFFECTIVE or NOMINAL")
	f.StringVar(&c.capital, "capitalization", "", "Capitalization of a nominal rate, MONTHLY by default")
	f.Float64Var(&c.req.Rate.AnnualRate, "rate", 0, "Annual rate as a decimal, 0.085 for 8.5%")
	f.Float64Var(&c.req.Rate.DiscountRate, "discount", 0, "Annual discount rate for the NPV, as a decimal")
	f.IntVar(&c.req.Rate.GracePeriods, "grace", 0, "Grace periods")
	f.StringVar(&c.grace, "grace-type", "NONE", "Grace type: NONE, TOTAL or PARTIAL")

	costs := &c.req.Costs
	f.Float64Var(&costs.NotarialFee, "notarial", 0, "Notarial fee")
	f.Float64Var(&costs.RegistryFee, "registry", 0, "Registry fee")
	f.Float64Var(&costs.AppraisalFee, "appraisal", 0, "Appraisal fee")
	f.Float64Var(&costs.StudyFee, "study", 0, "Study fee")
	f.Float64Var(&costs.AllRiskInitialFee, "all-risk-initial", 0, "Initial all-risk premium")
	f.Float64Var(&costs.ActivationCommissionPct, "activation", 0, "Activation commission, percent of the financed amount")
	f.Float64Var(&costs.LifeInsurancePct, "life", 0, "Life insurance rate")
	f.Float64Var(&costs.AllRiskInsurancePct, "all-risk", 0, "Annual all-risk insurance rate")
	f.Float64Var(&costs.AdministrativeFee, "admin", 0, "Administrative fee per installment")
	f.Float64Var(&costs.AccountMaintenanceFee, "maintenance", 0, "Account maintenance fee per installment")
	f.Float64Var(&costs.PeriodicCommission, "commission", 0, "Commission per installment")
	f.Float64Var(&costs.Postage, "postage", 0, "Postage per installment")

	f.StringVar(&c.req.BankID, "bank", "", "Bank tag shown in the report")
	f.StringVar(&c.req.PropertyID, "property", "", "Property tag shown in the report")
}

func (c *simulateCmd) request() (domain.PlanRequest, error) {
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return domain.PlanRequest{}, err
		}
		var req domain.PlanRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return domain.PlanRequest{}, fmt.Errorf("decoding %s: %w", c.file, err)
		}
		return req, nil
	}

	req := c.req
	if err := req.Rate.Currency.UnmarshalText([]byte(c.currency)); err != nil {
		return domain.PlanRequest{}, err
	}
	if err := req.Rate.RateType.UnmarshalText([]byte(c.rateType)); err != nil {
		return domain.PlanRequest{}, err
	}
	if c.capital != "" {
		if err := req.Rate.Capitalization.UnmarshalText([]byte(c.capital)); err != nil {
			return domain.PlanRequest{}, err
		}
	}
	if err := req.Rate.GraceType.UnmarshalText([]byte(c.grace)); err != nil {
		return domain.PlanRequest{}, err
	}
	return req, nil
}

func (c *simulateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading the request: %v\n", err)
		return subcommands.ExitUsageError
	}

	sim, err := service.NewPlanService(nil, nil).Simulate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating the plan: %v\n", err)
		return subcommands.ExitFailure
	}

	w := stdout(c.out)
	if c.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sim); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding the simulation: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(w, report.Markdown(req, sim, report.Options{MaxRows: c.maxRows}))
	return subcommands.ExitSuccess
}
