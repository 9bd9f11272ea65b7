// Package taxrules holds the year-indexed statutory constants and field
// layouts the extractors consult. All tables are built once at package
// init and only read afterwards.
package taxrules

import (
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

// DefaultRulesKey selects the fallback entry of the year rules table
const DefaultRulesKey = "DEFAULT"

// DefaultTaxYear is returned by DetectTaxYear when the text names no year
const DefaultTaxYear = "2024"

// TaxYearRules are the payroll tax constants of one tax year
type TaxYearRules struct {
	SSTaxRate       decimal.Decimal
	MedicareTaxRate decimal.Decimal
	SSWageBaseLimit decimal.Decimal
	MaxSSTax        decimal.Decimal
}

var (
	ssRate       = decimal.RequireFromString("0.062")
	medicareRate = decimal.RequireFromString("0.0145")

	// AdditionalMedicareRate applies to Medicare wages above the threshold
	AdditionalMedicareRate      = decimal.RequireFromString("0.009")
	AdditionalMedicareThreshold = decimal.NewFromInt(200000)
)

func payrollRules(wageBase int64) TaxYearRules {
	base := decimal.NewFromInt(wageBase)
	return TaxYearRules{
		SSTaxRate:       ssRate,
		MedicareTaxRate: medicareRate,
		SSWageBaseLimit: base,
		MaxSSTax:        base.Mul(ssRate).Round(2),
	}
}

var yearRules = map[string]TaxYearRules{
	"2015":          payrollRules(118500),
	"2016":          payrollRules(118500),
	"2017":          payrollRules(127200),
	"2018":          payrollRules(128400),
	"2019":          payrollRules(132900),
	"2020":          payrollRules(137700),
	"2021":          payrollRules(142800),
	"2022":          payrollRules(147000),
	"2023":          payrollRules(160200),
	"2024":          payrollRules(168600),
	"2025":          payrollRules(176100),
	DefaultRulesKey: payrollRules(168600),
}

// GetYearRules returns the rules of year, or the DEFAULT entry
func GetYearRules(year string) TaxYearRules {
	if r, ok := yearRules[year]; ok {
		return r
	}
	return yearRules[DefaultRulesKey]
}

// ExpectedSocialSecurityTax is min(wages * rate, cap) rounded to cents
func (r TaxYearRules) ExpectedSocialSecurityTax(wages float64) float64 {
	tax := decimal.NewFromFloat(wages).Mul(r.SSTaxRate)
	if tax.GreaterThan(r.MaxSSTax) {
		tax = r.MaxSSTax
	}
	return tax.Round(2).InexactFloat64()
}

// ExpectedMedicareTax is the employee Medicare withholding on wages,
// including the additional rate above the threshold.
func (r TaxYearRules) ExpectedMedicareTax(wages float64) float64 {
	w := decimal.NewFromFloat(wages)
	tax := w.Mul(r.MedicareTaxRate)
	if w.GreaterThan(AdditionalMedicareThreshold) {
		tax = tax.Add(w.Sub(AdditionalMedicareThreshold).Mul(AdditionalMedicareRate))
	}
	return tax.Round(2).InexactFloat64()
}

var yearRe = regexp.MustCompile(`\b(20(?:1[5-9]|2[0-6]))\b`)

// FindTaxYear returns the first plausible tax year (2015-2026) in text
func FindTaxYear(text string) (string, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DetectTaxYear is FindTaxYear with DefaultTaxYear as fallback
func DetectTaxYear(text string) string {
	if y, ok := FindTaxYear(text); ok {
		return y
	}
	return DefaultTaxYear
}

// IsApproximately reports whether actual is within tolerance of expected
func IsApproximately(actual, expected, tolerance float64) bool {
	return math.Abs(actual-expected) <= tolerance
}
