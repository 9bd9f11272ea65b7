package utils

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/ocr-financial-aid/dto"
	"github.com/Aashish23092/ocr-financial-aid/utils/taxrules"
)

var (
	box12Re = regexp.MustCompile(`(?i)(?:box\s*12[a-d]?|\b12[a-d])\s*[:\-]?\s*\b([A-Z]{1,2})\b\s*[:\-]?\s*\$?(\d[\d,]*(?:\.\d{2})?)`)

	employerLabelRe = regexp.MustCompile(`(?i)employer[’']?s\s+name(?:,?\s*address,?\s*and\s*ZIP\s*code)?`)
	employeeLabelRe = regexp.MustCompile(`(?i)employee[’']?s\s+address(?:,?\s*and\s*ZIP\s*code)?`)

	// lines that are W-2 box captions rather than values
	captionRe      = regexp.MustCompile(`(?i)\b(?:employer|employee|identification|number|wages|compensation|withheld|control|zip\s*code|statement|copy|box)\b`)
	cityStateZipRe = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)
)

// ExtractW2Data reads the W-2 boxes. When doc is non-nil each box is first
// looked up spatially, below its caption, before falling back to the text.
func ExtractW2Data(text string, doc *SpatialDocument) dto.W2Fields {
	cfg := taxrules.GetFieldConfig(taxrules.FormW2, taxrules.DetectTaxYear(text))
	box := func(id string) float64 {
		return locateSpatialField(text, doc, cfg, id, BelowRegion)
	}

	fields := dto.W2Fields{
		Wages:         box(taxrules.FieldWages),
		FederalTax:    box(taxrules.FieldFederalTax),
		SSWages:       box(taxrules.FieldSSWages),
		SSTax:         box(taxrules.FieldSSTax),
		MedicareWages: box(taxrules.FieldMedicareWages),
		MedicareTax:   box(taxrules.FieldMedicareTax),
	}
	if fc, ok := cfg.Field(taxrules.FieldBox12); ok && fc.Type == taxrules.FieldBox12Sum {
		fields.Box12Untaxed, fields.Box12Codes = SumBox12(text, fc.Codes)
	}
	fields.EmployerName = extractEmployerName(text)
	fields.EmployeeAddress = extractEmployeeAddress(text)

	return fields
}

// SumBox12 adds up every "Box 12 <code> <amount>" entry whose code is in
// codes and returns the total with the codes that contributed.
func SumBox12(text string, codes []string) (float64, []string) {
	total := decimal.Zero
	var found []string
	for _, m := range box12Re.FindAllStringSubmatch(text, -1) {
		code := strings.ToUpper(m[1])
		if !slices.Contains(codes, code) {
			continue
		}
		amount := ParseAmount(strings.TrimRight(m[2], ","))
		if amount <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(amount))
		if !slices.Contains(found, code) {
			found = append(found, code)
		}
	}
	return total.Round(2).InexactFloat64(), found
}

func extractEmployerName(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		loc := employerLabelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if v := captionValue(line[loc[1]:]); v != "" {
			return v
		}
		for _, next := range lines[i+1 : min(len(lines), i+3)] {
			if v := captionValue(next); v != "" {
				return v
			}
		}
		return ""
	}
	return ""
}

// extractEmployeeAddress returns "street, city ST zip". The address is taken
// after the "Employee's address" caption, or from the lines just above it
// since many W-2 layouts print the caption under the box contents.
func extractEmployeeAddress(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		loc := employeeLabelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}

		var after []string
		if v := captionValue(line[loc[1]:]); v != "" {
			after = append(after, v)
		}
		for _, next := range lines[i+1 : min(len(lines), i+3)] {
			if v := captionValue(next); v != "" {
				after = append(after, v)
			}
		}
		if addr := joinAddress(after); addr != "" {
			return addr
		}

		var before []string
		for _, prev := range lines[max(0, i-2):i] {
			if v := captionValue(prev); v != "" {
				before = append(before, v)
			}
		}
		return joinAddress(before)
	}
	return ""
}

// joinAddress keeps candidate lines up to and including the first one that
// ends the address with a state and ZIP code.
func joinAddress(candidates []string) string {
	for i, c := range candidates {
		if cityStateZipRe.MatchString(c) {
			start := max(0, i-1)
			return strings.Join(candidates[start:i+1], ", ")
		}
	}
	return ""
}

// captionValue trims punctuation left over from a caption and returns s
// when it looks like a value rather than another caption.
func captionValue(s string) string {
	s = strings.Trim(s, " \t,:;-.")
	if s == "" || captionRe.MatchString(s) {
		return ""
	}
	letters := 0
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			letters++
		}
	}
	if letters < 2 {
		return ""
	}
	return s
}
