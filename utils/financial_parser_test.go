package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
		want dto.FormType
	}{
		{"w2 by form name", "Form W-2 2023", dto.FormTypeW2},
		{"w2 by title", "Wage and Tax Statement", dto.FormTypeW2},
		{"w2 by employer id", "b Employer identification number", dto.FormTypeW2},
		{"schedule a", "SCHEDULE A (Form 1040) Medical and dental expenses", dto.FormTypeScheduleA},
		{"schedule c", "SCHEDULE C (Form 1040) Profit or Loss From Business", dto.FormTypeBusiness},
		{"1040", "Form 1040 U.S. Individual Income Tax Return\n11 Adjusted gross income", dto.FormType1040},
		{
			"1040 mentioning schedule a",
			"Form 1040\n12 Itemized deductions (from Schedule A)\n11 Adjusted gross income 135,200.00",
			dto.FormType1040,
		},
		{"1040 referencing attached w2s", "Form 1040\n1a Total amount from Form(s) W-2, box 1\nRefund", dto.FormType1040},
		{"bare 1040", "see 1040 instructions", dto.FormType1040},
		{"unknown", "grocery receipt 12.99", dto.FormTypeUnknown},
		{"empty", "", dto.FormTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDocument(tt.text))
		})
	}
}

func TestExtractFinancialDataW2(t *testing.T) {
	data := ExtractFinancialData(w2Text, nil)

	assert.Equal(t, dto.FormTypeW2, data.FormType)
	assert.Equal(t, "2023", data.TaxYear)
	assert.Equal(t, "12-3456789", data.EIN)
	assert.Equal(t, 85000.0, data.Wages)
	assert.Equal(t, 9500.0, data.FederalTax)
	assert.Equal(t, 7000.0, data.Box12Untaxed)
	assert.Equal(t, "ACME WIDGETS INC", data.EmployerName)
	assert.Equal(t, 100.0, data.ConfidenceScore)
	assert.Empty(t, data.Warnings)

	w2, ok := data.Extraction.(dto.W2Fields)
	require.True(t, ok)
	assert.Equal(t, data.Wages, w2.Wages)
}

func TestExtractFinancialDataSocialSecurityCheck(t *testing.T) {
	consistent := ExtractFinancialData(
		"Form W-2 Wage and Tax Statement 2023\n3 Social security wages 100,000.00\n4 Social security tax withheld 6,200.00", nil)
	assert.Empty(t, consistent.Warnings)
	assert.Equal(t, 100.0, consistent.ConfidenceScore)

	inconsistent := ExtractFinancialData(
		"Form W-2 Wage and Tax Statement 2023\n3 Social security wages 100,000.00\n4 Social security tax withheld 500.00", nil)
	require.Len(t, inconsistent.Warnings, 1)
	w := inconsistent.Warnings[0]
	assert.Equal(t, dto.SeverityError, w.Severity)
	assert.Equal(t, 6200.0, w.Expected)
	assert.Equal(t, 500.0, w.Actual)
	assert.Equal(t, consistent.ConfidenceScore-15, inconsistent.ConfidenceScore)
}

func TestExtractFinancialDataAddressBeforeBoxes(t *testing.T) {
	text := `Form W-2 Wage and Tax Statement 2023
f Employee's address and ZIP code
5 Oak Ave
Springfield IL 62704
1 Wages, tips, other compensation 52,000.00
3 Social security wages 52,000.00
4 Social security tax withheld 3,224.00
5 Medicare wages and tips 52,000.00
6 Medicare tax withheld 754.00`

	data := ExtractFinancialData(text, nil)

	w2, ok := data.Extraction.(dto.W2Fields)
	require.True(t, ok)
	assert.Equal(t, 52000.0, w2.MedicareWages)
	assert.Equal(t, 754.0, w2.MedicareTax)
	for _, w := range data.Warnings {
		assert.NotEqual(t, "medicareTax", w.Field)
	}
}

func TestExtractFinancialDataMedicareCheck(t *testing.T) {
	data := ExtractFinancialData(
		"Form W-2 Wage and Tax Statement 2023\n5 Medicare wages and tips 100,000.00\n6 Medicare tax withheld 900.00", nil)

	require.Len(t, data.Warnings, 1)
	assert.Equal(t, 1450.0, data.Warnings[0].Expected)
	assert.Equal(t, 90.0, data.ConfidenceScore)
}

func TestExtractFinancialDataEstimatesAGI(t *testing.T) {
	text := "Form 1040 U.S. Individual Income Tax Return 2023\n1z Add lines 1a through 1h 85,000.00\nTotal tax 9,000.00"

	data := ExtractFinancialData(text, nil)
	assert.Equal(t, dto.FormType1040, data.FormType)
	assert.Equal(t, 85000.0, data.Wages)
	assert.Equal(t, 85000.0, data.AGI)
	assert.Equal(t, 9000.0, data.FederalTax)
	require.Len(t, data.Warnings, 1)
	assert.Equal(t, dto.SeverityWarning, data.Warnings[0].Severity)
	assert.Equal(t, 100.0, data.ConfidenceScore)

	_, ok := data.Extraction.(dto.Form1040Fields)
	assert.True(t, ok)
}

func TestExtractFinancialDataBackfill(t *testing.T) {
	// no 1040 line labels, only generic ones
	text := "Form 1040 summary 2022\nYour AGI 61,000.00\nTotal wages 58,000.00\nRefund 300.00"

	data := ExtractFinancialData(text, nil)
	assert.Equal(t, dto.FormType1040, data.FormType)
	assert.Equal(t, 58000.0, data.Wages)
	assert.Equal(t, 61000.0, data.AGI)
	assert.Empty(t, data.Warnings)
}

func TestExtractFinancialDataSpatialW2(t *testing.T) {
	words := []dto.RecognizedWord{
		word("1", 10, 10, 15, 20),
		word("Wages,", 20, 10, 60, 20),
		word("tips,", 65, 10, 90, 20),
		word("other", 95, 10, 125, 20),
		word("compensation", 130, 10, 220, 20),
		word("52,000.00", 40, 25, 100, 35),
	}
	text := "Form W-2 Wage and Tax Statement 2024\n1 Wages, tips, other compensation"

	data := ExtractFinancialData(text, words)
	assert.Equal(t, dto.FormTypeW2, data.FormType)
	assert.Equal(t, 52000.0, data.Wages)
}

func TestExtractFinancialDataNeverFails(t *testing.T) {
	for _, in := range []string{"", "�garbage@@@"} {
		data := ExtractFinancialData(in, nil)

		assert.Equal(t, dto.FormTypeUnknown, data.FormType)
		assert.Empty(t, data.TaxYear)
		assert.Zero(t, data.Wages)
		assert.Zero(t, data.AGI)
		assert.Zero(t, data.FederalTax)
		assert.Zero(t, data.UntaxedIRA)
		assert.Nil(t, data.Extraction)
		assert.NotNil(t, data.Warnings)
		assert.Equal(t, 100.0, data.ConfidenceScore)
	}
}

func TestFindSSN(t *testing.T) {
	assert.Equal(t, "123-45-6789", findSSN("SSN 123-45-6789"))
	assert.Equal(t, "", findSSN("000-12-3456 666-12-3456 912-34-5678"))
	assert.Equal(t, "234-56-7890", findSSN("900-11-2222 then 234-56-7890"))
	assert.Equal(t, "", findSSN("123-00-4567"))
}
