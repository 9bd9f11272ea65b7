package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/utils/taxrules"
)

const (
	// amountTolerance is the allowed gap between a reported and a computed tax
	amountTolerance = 5.0

	ssMismatchPenalty       = 15
	medicareMismatchPenalty = 10
)

var (
	// "Form(s) W-2" is how a 1040 refers to attached W-2s
	w2ReferenceRe = regexp.MustCompile(`(?i)forms?\s*\(s\)\s*W[-\s]?2\b`)
	w2SignatureRe = regexp.MustCompile(`(?i)\bW[-\s]?2\b|wage\s+and\s+tax|employer\s+identification`)

	scheduleAContentRe = regexp.MustCompile(`(?i)medical|dental|gifts\s+to\s+charity`)
	scheduleCContentRe = regexp.MustCompile(`(?i)profit\s+or\s+loss|business`)

	form1040Re        = regexp.MustCompile(`(?i)1040|income\s+tax\s+return`)
	form1040ContentRe = regexp.MustCompile(`(?i)adjusted\s+gross|total\s+tax|refund`)

	ssnRe = regexp.MustCompile(`\b(\d{3})-(\d{2})-(\d{4})\b`)
	einRe = regexp.MustCompile(`\b\d{2}-\d{7}\b`)
)

// ClassifyDocument detects the form type from text signatures. Rules are
// checked in order and the first match wins; every rule except the last
// needs both a title and a content signature, so a 1040 that mentions
// Schedule A in an instruction is still a 1040.
func ClassifyDocument(text string) dto.FormType {
	unreferenced := w2ReferenceRe.ReplaceAllString(text, "")

	switch {
	case w2SignatureRe.MatchString(unreferenced):
		return dto.FormTypeW2
	case scheduleARe.MatchString(text) && scheduleAContentRe.MatchString(text):
		return dto.FormTypeScheduleA
	case scheduleCRe.MatchString(text) && scheduleCContentRe.MatchString(text):
		return dto.FormTypeBusiness
	case form1040Re.MatchString(text) && form1040ContentRe.MatchString(text):
		return dto.FormType1040
	case strings.Contains(text, "1040"):
		return dto.FormType1040
	default:
		return dto.FormTypeUnknown
	}
}

// ExtractFinancialData normalizes text, classifies it, runs the matching
// extractor and cross-checks the payroll taxes. words may be empty; when
// given, W-2 boxes and 1040 backfills are located spatially first.
// It never fails: anything it cannot read is left at zero.
func ExtractFinancialData(text string, words []dto.RecognizedWord) dto.ExtractedData {
	clean := Normalize(text)

	data := dto.ExtractedData{
		FormType:        ClassifyDocument(clean),
		SSN:             findSSN(clean),
		EIN:             einRe.FindString(clean),
		RawText:         clean,
		Warnings:        []dto.ValidationWarning{},
		ConfidenceScore: 100,
	}
	if year, ok := taxrules.FindTaxYear(clean); ok {
		data.TaxYear = year
	}

	doc := NewSpatialDocument(words)

	switch data.FormType {
	case dto.FormTypeW2:
		applyW2(&data, ExtractW2Data(clean, doc))
	case dto.FormTypeScheduleA:
		applyScheduleA(&data, ExtractScheduleAData(clean))
	case dto.FormTypeBusiness:
		applyScheduleC(&data, ExtractScheduleCData(clean))
	default:
		apply1040(&data, Extract1040Data(clean), clean, doc)
	}

	checkSocialSecurity(&data)
	checkMedicare(&data)

	return data
}

func applyW2(data *dto.ExtractedData, w2 dto.W2Fields) {
	data.Wages = w2.Wages
	data.FederalTax = w2.FederalTax
	data.SocialSecurityWages = w2.SSWages
	data.SocialSecurityTax = w2.SSTax
	data.MedicareWages = w2.MedicareWages
	data.MedicareTax = w2.MedicareTax
	data.Box12Untaxed = w2.Box12Untaxed
	data.EmployerName = w2.EmployerName
	data.EmployeeAddress = w2.EmployeeAddress
	data.Extraction = w2
}

func applyScheduleA(data *dto.ExtractedData, a dto.ScheduleAFields) {
	data.MedicalExpenses = a.MedicalExpenses
	data.MortgageInterest = a.MortgageInterest
	data.ItemizedDeductions = a.ItemizedDeductions
	data.Extraction = a
}

func applyScheduleC(data *dto.ExtractedData, c dto.ScheduleCFields) {
	data.NetProfit = c.NetProfit
	data.Extraction = c
}

// apply1040 copies the 1040 lines, backfills wages, AGI and tax from generic
// labels when the form-specific lookup found nothing, and estimates a missing
// AGI from wages.
func apply1040(data *dto.ExtractedData, f dto.Form1040Fields, text string, doc *SpatialDocument) {
	generic := taxrules.GetFieldConfig(taxrules.FormGeneric, taxrules.AllYears)
	backfill := func(id string) float64 {
		return locateSpatialField(text, doc, generic, id, RightRegion)
	}

	if f.Wages == 0 {
		f.Wages = backfill(taxrules.FieldWages)
	}
	if f.AGI == 0 {
		f.AGI = backfill(taxrules.FieldAGI)
	}
	if f.TotalTax == 0 {
		f.TotalTax = backfill(taxrules.FieldFederalTax)
	}

	if data.FormType == dto.FormType1040 && f.AGI == 0 && f.Wages > 0 {
		f.AGI = f.Wages
		data.AddWarning(dto.ValidationWarning{
			Field:    taxrules.FieldAGI,
			Expected: 0,
			Actual:   f.AGI,
			Message:  "Adjusted gross income not found; estimated from wages",
			Severity: dto.SeverityWarning,
		})
	}

	data.Wages = f.Wages
	data.AGI = f.AGI
	data.FederalTax = f.TotalTax
	data.ItemizedDeductions = f.ItemizedDeductions
	data.UntaxedIRA = f.UntaxedIRA
	data.DividendIncome = f.DividendIncome
	if data.FormType == dto.FormType1040 {
		data.Extraction = f
	}
}

func checkSocialSecurity(data *dto.ExtractedData) {
	if data.SocialSecurityWages <= 0 || data.SocialSecurityTax <= 0 {
		return
	}
	rules := taxrules.GetYearRules(data.TaxYear)
	expected := rules.ExpectedSocialSecurityTax(data.SocialSecurityWages)
	if taxrules.IsApproximately(data.SocialSecurityTax, expected, amountTolerance) {
		return
	}

	data.Penalize(ssMismatchPenalty)
	data.AddWarning(dto.ValidationWarning{
		Field:    taxrules.FieldSSTax,
		Expected: expected,
		Actual:   data.SocialSecurityTax,
		Message: fmt.Sprintf("Social security tax %.2f does not match %s%% of wages (expected %.2f)",
			data.SocialSecurityTax, rules.SSTaxRate.Shift(2).String(), expected),
		Severity: dto.SeverityError,
	})
}

func checkMedicare(data *dto.ExtractedData) {
	if data.MedicareWages <= 0 || data.MedicareTax <= 0 {
		return
	}
	rules := taxrules.GetYearRules(data.TaxYear)
	expected := rules.ExpectedMedicareTax(data.MedicareWages)
	if taxrules.IsApproximately(data.MedicareTax, expected, amountTolerance) {
		return
	}

	data.Penalize(medicareMismatchPenalty)
	data.AddWarning(dto.ValidationWarning{
		Field:    taxrules.FieldMedicareTax,
		Expected: expected,
		Actual:   data.MedicareTax,
		Message:  fmt.Sprintf("Medicare tax %.2f does not match Medicare wages (expected %.2f)", data.MedicareTax, expected),
		Severity: dto.SeverityError,
	})
}

// findSSN returns the first SSN-shaped value with a valid area, group and
// serial number.
func findSSN(text string) string {
	for _, m := range ssnRe.FindAllStringSubmatch(text, -1) {
		area, group, serial := m[1], m[2], m[3]
		if area == "000" || area == "666" || area[0] == '9' || group == "00" || serial == "0000" {
			continue
		}
		return m[0]
	}
	return ""
}
