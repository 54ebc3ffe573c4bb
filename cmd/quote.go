package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"loan-planner/domain"
	"loan-planner/service"
)

type quoteCmd struct {
	out   io.Writer
	input domain.LoanInput
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "quick monthly payment of a loan" }
func (*quoteCmd) Usage() string {
	return `loan-planner quote -amount <n> -rate <percent> -months <n>

  Prints the monthly installment at a nominal annual rate, without costs.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.input.Amount, "amount", 0, "Loan amount")
	f.Float64Var(&c.input.InterestRate, "rate", 0, "Nominal annual rate in percent, 12 for 12%")
	f.IntVar(&c.input.TermMonths, "months", 0, "Term in months")
}

func (c *quoteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := service.NewLoanService(nil).CalculateLoan(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	md := fmt.Sprintf("| Cuota mensual | Total pagado | Intereses |\n|--:|--:|--:|\n| %.2f | %.2f | %.2f |\n",
		result.MonthlyPayment, result.TotalPayment, result.TotalInterest)
	printMarkdown(stdout(c.out), md)
	return subcommands.ExitSuccess
}
