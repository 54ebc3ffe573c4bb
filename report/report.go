// Package report renders a simulation as a markdown document.
package report

import (
	"fmt"
	"io"
	"strings"

	"loan-planner/domain"
)

// Options controls how much of the schedule is printed. MaxRows <= 0 prints
// every installment.
type Options struct {
	MaxRows int
}

// Markdown returns the report of a simulation.
func Markdown(req domain.PlanRequest, sim domain.Simulation, opts Options) string {
	var b strings.Builder
	Write(&b, req, sim, opts)
	return b.String()
}

func Write(w io.Writer, req domain.PlanRequest, sim domain.Simulation, opts Options) {
	cur := req.Rate.Currency
	s := sim.Summary

	fmt.Fprintf(w, "# Plan de pagos\n\n")
	if req.BankID != "" || req.PropertyID != "" {
		fmt.Fprintf(w, "Entidad: %s · Inmueble: %s\n\n", orDash(req.BankID), orDash(req.PropertyID))
	}

	fmt.Fprintf(w, "## Resumen\n\n")
	fmt.Fprintf(w, "| Concepto | Valor |\n|:--|--:|\n")
	fmt.Fprintf(w, "| Monto financiado | %s |\n", cur.Format(s.FinancedAmount))
	fmt.Fprintf(w, "| Cuota fija | %s |\n", cur.Format(s.FixedPayment))
	fmt.Fprintf(w, "| Cuotas | %d |\n", s.Installments)
	fmt.Fprintf(w, "| Intereses totales | %s |\n", cur.Format(s.TotalInterest))
	fmt.Fprintf(w, "| Costos iniciales | %s |\n", cur.Format(s.InitialCosts))
	fmt.Fprintf(w, "| Total pagado | %s |\n", cur.Format(s.TotalPaid))
	fmt.Fprintf(w, "\n")

	if len(s.Warnings) > 0 {
		fmt.Fprintf(w, "## Advertencias\n\n")
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "- %s\n", warn)
		}
		fmt.Fprintf(w, "\n")
	}

	ind := sim.Indicators
	fmt.Fprintf(w, "## Indicadores\n\n")
	fmt.Fprintf(w, "| Indicador | Valor |\n|:--|--:|\n")
	fmt.Fprintf(w, "| TEA | %.4f%% |\n", ind.TEA)
	fmt.Fprintf(w, "| TEM | %.4f%% |\n", ind.TEM)
	fmt.Fprintf(w, "| TIR | %s |\n", pct(ind.IRR))
	fmt.Fprintf(w, "| TCEA | %s |\n", pct(ind.TCEA))
	fmt.Fprintf(w, "| VAN (%.4f%%) | %s |\n", ind.DiscountRate, cur.Format(ind.NPV))
	fmt.Fprintf(w, "| Duración | %.4f años |\n", ind.Duration)
	fmt.Fprintf(w, "| Convexidad | %.4f |\n", ind.Convexity)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "## Cronograma\n\n")
	fmt.Fprintf(w, "| N° | Saldo inicial | Interés | Amortización | Cuota | Seg. desgravamen | Seg. riesgo | Comisiones | Saldo final | Flujo |\n")
	fmt.Fprintf(w, "|--:|--:|--:|--:|--:|--:|--:|--:|--:|--:|\n")
	rows := sim.Rows
	truncated := opts.MaxRows > 0 && len(rows) > opts.MaxRows
	if truncated {
		rows = rows[:opts.MaxRows]
	}
	for _, r := range rows {
		fees := r.Commission + r.Postage + r.AdministrativeFees
		fmt.Fprintf(w, "| %d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			r.Number, r.OpeningBalance, r.Interest, r.Amortization, r.Payment,
			r.LifeInsurance, r.AllRiskInsurance, fees, r.ClosingBalance, r.NetCashFlow)
	}
	if truncated {
		fmt.Fprintf(w, "\n_%d de %d cuotas mostradas._\n", len(rows), len(sim.Rows))
	}
}

func pct(v *float64) string {
	if v == nil {
		return "no disponible"
	}
	return fmt.Sprintf("%.4f%%", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
