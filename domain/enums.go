package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the currency a plan is denominated in.
type Currency int

const (
	CurrencyPEN Currency = iota + 1
	CurrencyUSD
)

func (c Currency) String() string {
	switch c {
	case CurrencyPEN:
		return money.PEN
	case CurrencyUSD:
		return money.USD
	}
	return fmt.Sprintf("Currency(%d)", int(c))
}

// Valid reports whether c is a known currency registered in go-money.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyPEN, CurrencyUSD:
		return money.GetCurrency(c.String()) != nil
	}
	return false
}

// Fraction is the number of minor-unit digits of the currency.
func (c Currency) Fraction() int {
	if cur := money.GetCurrency(c.String()); cur != nil {
		return cur.Fraction
	}
	return 2
}

// Format renders an amount with the currency symbol and separators, rounded
// half away from zero to the currency's minor unit.
func (c Currency) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprint(amount)
	}
	if !c.Valid() {
		return decimal.NewFromFloat(amount).StringFixed(2)
	}
	// money.NewFromFloat trunca, así que se redondea antes
	minor := decimal.NewFromFloat(amount).Round(int32(c.Fraction())).Shift(int32(c.Fraction())).IntPart()
	return money.New(minor, c.String()).Display()
}

func (c Currency) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("moneda desconocida: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Currency) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case money.PEN, "SOLES":
		*c = CurrencyPEN
	case money.USD, "DOLARES", "DÓLARES":
		*c = CurrencyUSD
	default:
		return fmt.Errorf("moneda desconocida: %q", text)
	}
	return nil
}

// RateType tells whether the annual rate is effective or nominal.
type RateType int

const (
	RateEffective RateType = iota + 1
	RateNominal
)

func (t RateType) String() string {
	switch t {
	case RateEffective:
		return "EFFECTIVE"
	case RateNominal:
		return "NOMINAL"
	}
	return fmt.Sprintf("RateType(%d)", int(t))
}

func (t RateType) Valid() bool { return t == RateEffective || t == RateNominal }

func (t RateType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tipo de tasa desconocido: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *RateType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "EFFECTIVE", "EFECTIVA", "TEA":
		*t = RateEffective
	case "NOMINAL", "TNA":
		*t = RateNominal
	default:
		return fmt.Errorf("tipo de tasa desconocido: %q", text)
	}
	return nil
}

// Capitalization is the compounding frequency of a nominal rate.
type Capitalization int

const (
	CapitalizationMonthly Capitalization = iota + 1
	CapitalizationBimonthly
	CapitalizationQuarterly
	CapitalizationSemiannual
	CapitalizationAnnual
)

func (c Capitalization) String() string {
	switch c {
	case CapitalizationMonthly:
		return "MONTHLY"
	case CapitalizationBimonthly:
		return "BIMONTHLY"
	case CapitalizationQuarterly:
		return "QUARTERLY"
	case CapitalizationSemiannual:
		return "SEMIANNUAL"
	case CapitalizationAnnual:
		return "ANNUAL"
	}
	return fmt.Sprintf("Capitalization(%d)", int(c))
}

// PeriodsPerYear returns how many times a year interest is compounded,
// or 0 for an unknown value.
func (c Capitalization) PeriodsPerYear() int {
	switch c {
	case CapitalizationMonthly:
		return 12
	case CapitalizationBimonthly:
		return 6
	case CapitalizationQuarterly:
		return 4
	case CapitalizationSemiannual:
		return 2
	case CapitalizationAnnual:
		return 1
	}
	return 0
}

func (c Capitalization) Valid() bool { return c.PeriodsPerYear() > 0 }

func (c Capitalization) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("capitalización desconocida: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Capitalization) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "MONTHLY", "MENSUAL":
		*c = CapitalizationMonthly
	case "BIMONTHLY", "BIMESTRAL":
		*c = CapitalizationBimonthly
	case "QUARTERLY", "TRIMESTRAL":
		*c = CapitalizationQuarterly
	case "SEMIANNUAL", "SEMESTRAL":
		*c = CapitalizationSemiannual
	case "ANNUAL", "ANUAL":
		*c = CapitalizationAnnual
	default:
		return fmt.Errorf("capitalización desconocida: %q", text)
	}
	return nil
}

// GraceType is the policy applied during the initial grace window.
type GraceType int

const (
	GraceNone GraceType = iota + 1
	// GraceTotal capitalizes the unpaid interest into the balance.
	GraceTotal
	// GracePartial pays interest only.
	GracePartial
)

func (g GraceType) String() string {
	switch g {
	case GraceNone:
		return "NONE"
	case GraceTotal:
		return "TOTAL"
	case GracePartial:
		return "PARTIAL"
	}
	return fmt.Sprintf("GraceType(%d)", int(g))
}

func (g GraceType) Valid() bool { return g == GraceNone || g == GraceTotal || g == GracePartial }

func (g GraceType) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("tipo de gracia desconocido: %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *GraceType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "NONE", "NINGUNO", "":
		*g = GraceNone
	case "TOTAL":
		*g = GraceTotal
	case "PARTIAL", "PARCIAL":
		*g = GracePartial
	default:
		return fmt.Errorf("tipo de gracia desconocido: %q", text)
	}
	return nil
}
