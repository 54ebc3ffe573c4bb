package domain

import "time"

// RateConfiguration describes how the lender quotes the loan rate.
// Rates are decimals: 0.085 means 8.5%.
type RateConfiguration struct {
	Currency       Currency       `json:"currency"`
	RateType       RateType       `json:"rate_type"`
	Capitalization Capitalization `json:"capitalization,omitempty"`
	AnnualRate     float64        `json:"annual_rate"`
	DiscountRate   float64        `json:"discount_rate,omitempty"`
	GracePeriods   int            `json:"grace_periods"`
	GraceType      GraceType      `json:"grace_type"`
}

// WithDefaults fills the tags that lender data usually omits: a nominal
// rate without capitalization compounds monthly and a missing grace type
// means no grace.
func (c RateConfiguration) WithDefaults() RateConfiguration {
	if c.RateType == RateNominal && c.Capitalization == 0 {
		c.Capitalization = CapitalizationMonthly
	}
	if c.GraceType == 0 {
		c.GraceType = GraceNone
	}
	return c
}

// CostStructure is the lender's cost schedule. Every field defaults to zero.
type CostStructure struct {
	// one-time fixed costs
	NotarialFee       float64 `json:"notarial_fee,omitempty"`
	RegistryFee       float64 `json:"registry_fee,omitempty"`
	AppraisalFee      float64 `json:"appraisal_fee,omitempty"`
	StudyFee          float64 `json:"study_fee,omitempty"`
	AllRiskInitialFee float64 `json:"all_risk_initial_fee,omitempty"`

	// one-time percentages over the financed amount
	ActivationCommissionPct float64 `json:"activation_commission_pct,omitempty"`
	// LifeInsurancePct (desgravamen) is charged once upfront and, compounded
	// per period, on the outstanding balance of every installment.
	LifeInsurancePct float64 `json:"life_insurance_pct,omitempty"`

	// annual all-risk insurance over the financed amount
	AllRiskInsurancePct float64 `json:"all_risk_insurance_pct,omitempty"`

	// flat fees charged with every installment
	AdministrativeFee     float64 `json:"administrative_fee,omitempty"`
	AccountMaintenanceFee float64 `json:"account_maintenance_fee,omitempty"`
	PeriodicCommission    float64 `json:"periodic_commission,omitempty"`
	Postage               float64 `json:"postage,omitempty"`
}

// Normalize returns a copy where percentages above 1 are read as already
// expressed in percent: 1.2 means 1.2%, 0.012 means the same.
func (c CostStructure) Normalize() CostStructure {
	c.ActivationCommissionPct = normalizePct(c.ActivationCommissionPct)
	c.LifeInsurancePct = normalizePct(c.LifeInsurancePct)
	c.AllRiskInsurancePct = normalizePct(c.AllRiskInsurancePct)
	return c
}

func normalizePct(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// FixedInitialCosts is the sum of the flat one-time costs.
func (c CostStructure) FixedInitialCosts() float64 {
	return c.NotarialFee + c.RegistryFee + c.AppraisalFee + c.StudyFee + c.AllRiskInitialFee
}

// FlatPeriodicFees is the sum of the flat fees charged every installment.
func (c CostStructure) FlatPeriodicFees() float64 {
	return c.AdministrativeFee + c.AccountMaintenanceFee + c.PeriodicCommission + c.Postage
}

type InstallmentRow struct {
	Number             int     `json:"number"`
	OpeningBalance     float64 `json:"opening_balance"`
	Interest           float64 `json:"interest"`
	Amortization       float64 `json:"amortization"`
	Payment            float64 `json:"payment"`
	Prepayment         float64 `json:"prepayment"`
	LifeInsurance      float64 `json:"life_insurance"`
	AllRiskInsurance   float64 `json:"all_risk_insurance"`
	Commission         float64 `json:"commission"`
	Postage            float64 `json:"postage"`
	AdministrativeFees float64 `json:"administrative_fees"`
	ClosingBalance     float64 `json:"closing_balance"`
	NetCashFlow        float64 `json:"net_cash_flow"`
}

// TotalOutflow is everything the borrower pays in the installment.
func (r InstallmentRow) TotalOutflow() float64 {
	return r.Payment + r.LifeInsurance + r.AllRiskInsurance +
		r.Commission + r.Postage + r.AdministrativeFees + r.Prepayment
}

type PlanSummary struct {
	FixedPayment   float64   `json:"fixed_payment"`
	TotalInterest  float64   `json:"total_interest"`
	InitialCosts   float64   `json:"initial_costs"`
	CashFlows      []float64 `json:"cash_flows"`
	FinancedAmount float64   `json:"financed_amount"`
	PeriodicRate   float64   `json:"periodic_rate"`
	Installments   int       `json:"installments"`
	TotalPaid      float64   `json:"total_paid"`
	Degenerate     bool      `json:"degenerate,omitempty"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// Indicators are the profitability measures of a plan. IRR and TCEA are nil
// when no rate could be found.
type Indicators struct {
	IRR          *float64 `json:"irr"`
	NPV          float64  `json:"npv"`
	TCEA         *float64 `json:"tcea"`
	Duration     float64  `json:"duration"`
	Convexity    float64  `json:"convexity"`
	TEA          float64  `json:"tea"`
	TEM          float64  `json:"tem"`
	DiscountRate float64  `json:"discount_rate"`
}

type Simulation struct {
	Summary    PlanSummary      `json:"summary"`
	Rows       []InstallmentRow `json:"rows"`
	Indicators Indicators       `json:"indicators"`
}

// PlanRequest is what a client sends to simulate a plan. When PropertyPrice
// is set the principal is the price minus the down payment.
type PlanRequest struct {
	Principal       float64           `json:"principal"`
	PropertyPrice   float64           `json:"property_price,omitempty"`
	DownPayment     float64           `json:"down_payment,omitempty"`
	TermYears       int               `json:"term_years"`
	PaymentsPerYear int               `json:"payments_per_year"`
	Bonus           float64           `json:"bonus,omitempty"`
	Rate            RateConfiguration `json:"rate"`
	Costs           CostStructure     `json:"costs"`
	BankID          string            `json:"bank_id,omitempty"`
	PropertyID      string            `json:"property_id,omitempty"`
}

// LoanAmount is the principal the request asks to finance.
func (r PlanRequest) LoanAmount() float64 {
	if r.PropertyPrice > 0 {
		return max(0, r.PropertyPrice-r.DownPayment)
	}
	return r.Principal
}

// PlanRecord is a stored simulation.
type PlanRecord struct {
	ID         string      `json:"id"`
	BankID     string      `json:"bank_id,omitempty"`
	PropertyID string      `json:"property_id,omitempty"`
	Request    PlanRequest `json:"request"`
	Simulation Simulation  `json:"simulation"`
	CreatedAt  time.Time   `json:"created_at"`
}
