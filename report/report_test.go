package report

import (
	"strings"
	"testing"

	"loan-planner/domain"
)

func sample() (domain.PlanRequest, domain.Simulation) {
	irr := 12.6825
	req := domain.PlanRequest{
		Rate:   domain.RateConfiguration{Currency: domain.CurrencyUSD},
		BankID: "bcp",
	}
	sim := domain.Simulation{
		Summary: domain.PlanSummary{
			FixedPayment:   8884.88,
			FinancedAmount: 100000,
			Installments:   3,
			Warnings:       []string{"gracia total"},
		},
		Rows: []domain.InstallmentRow{
			{Number: 1, OpeningBalance: 100000, Payment: 8884.88},
			{Number: 2},
			{Number: 3},
		},
		Indicators: domain.Indicators{IRR: &irr, TEA: 12.6825},
	}
	return req, sim
}

func TestMarkdown(t *testing.T) {
	req, sim := sample()
	out := Markdown(req, sim, Options{})

	for _, want := range []string{
		"# Plan de pagos",
		"Entidad: bcp · Inmueble: -",
		"| Cuota fija | $8,884.88 |",
		"| Monto financiado | $100,000.00 |",
		"- gracia total",
		"| TIR | 12.6825% |",
		"| TCEA | no disponible |",
		"| 1 | 100000.00 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cuotas mostradas") {
		t.Errorf("did not expect a truncation note")
	}
}

func TestMarkdown_MaxRows(t *testing.T) {
	req, sim := sample()
	out := Markdown(req, sim, Options{MaxRows: 2})

	if strings.Contains(out, "\n| 3 |") {
		t.Errorf("expected the third row to be cut")
	}
	if !strings.Contains(out, "_2 de 3 cuotas mostradas._") {
		t.Errorf("expected a truncation note:\n%s", out)
	}
}
