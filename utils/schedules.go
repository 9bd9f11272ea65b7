package utils

import (
	"regexp"

	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/utils/taxrules"
)

var (
	scheduleARe = regexp.MustCompile(`(?i)\bschedule\s+a\b`)
	scheduleCRe = regexp.MustCompile(`(?i)\bschedule\s+c\b`)
)

// ExtractScheduleAData reads the itemized deduction lines. Text that does not
// name Schedule A yields zero values.
func ExtractScheduleAData(text string) dto.ScheduleAFields {
	if !scheduleARe.MatchString(text) {
		return dto.ScheduleAFields{}
	}
	cfg := taxrules.GetFieldConfig(taxrules.FormScheduleA, taxrules.DetectTaxYear(text))

	return dto.ScheduleAFields{
		MedicalExpenses:    locateField(text, cfg, taxrules.FieldMedical),
		TaxesPaid:          locateField(text, cfg, taxrules.FieldTaxesPaid),
		MortgageInterest:   locateField(text, cfg, taxrules.FieldMortgageInterest),
		CharitableGifts:    locateField(text, cfg, taxrules.FieldCharitableGifts),
		ItemizedDeductions: locateField(text, cfg, taxrules.FieldTotalItemized),
	}
}

// ExtractScheduleCData reads business income lines. Text that does not name
// Schedule C yields zero values.
func ExtractScheduleCData(text string) dto.ScheduleCFields {
	if !scheduleCRe.MatchString(text) {
		return dto.ScheduleCFields{}
	}
	cfg := taxrules.GetFieldConfig(taxrules.FormScheduleC, taxrules.DetectTaxYear(text))

	return dto.ScheduleCFields{
		GrossReceipts: locateField(text, cfg, taxrules.FieldGrossReceipts),
		TotalExpenses: locateField(text, cfg, taxrules.FieldTotalExpenses),
		NetProfit:     locateField(text, cfg, taxrules.FieldNetProfit),
	}
}
