package utils

import (
	"github.com/shopspring/decimal"

	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/utils/taxrules"
)

// Extract1040Data reads the 1040 lines for the tax year found in text,
// following the line numbering of that year's revision.
func Extract1040Data(text string) dto.Form1040Fields {
	cfg := taxrules.GetFieldConfig(taxrules.Form1040, taxrules.DetectTaxYear(text))

	f := dto.Form1040Fields{
		Wages:              locateField(text, cfg, taxrules.FieldWages),
		AGI:                locateField(text, cfg, taxrules.FieldAGI),
		TotalTax:           locateField(text, cfg, taxrules.FieldTotalTax),
		ItemizedDeductions: locateField(text, cfg, taxrules.FieldItemized),
		IRADistributions:   locateField(text, cfg, taxrules.FieldIRADistributions),
		IRATaxable:         locateField(text, cfg, taxrules.FieldIRATaxable),
		DividendIncome:     locateField(text, cfg, taxrules.FieldDividends),
	}
	f.UntaxedIRA = untaxedPortion(f.IRADistributions, f.IRATaxable)

	return f
}

// untaxedPortion is max(0, total - taxable)
func untaxedPortion(total, taxable float64) float64 {
	diff := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(taxable))
	if !diff.IsPositive() {
		return 0
	}
	return diff.Round(2).InexactFloat64()
}
