package taxrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetYearRules(t *testing.T) {
	r := GetYearRules("2023")
	assert.Equal(t, "0.062", r.SSTaxRate.String())
	assert.Equal(t, "160200", r.SSWageBaseLimit.String())
	assert.Equal(t, "9932.4", r.MaxSSTax.String())

	fallback := GetYearRules("1999")
	assert.True(t, fallback.SSWageBaseLimit.Equal(GetYearRules(DefaultRulesKey).SSWageBaseLimit))
}

func TestExpectedSocialSecurityTax(t *testing.T) {
	r := GetYearRules("2023")

	assert.Equal(t, 6200.0, r.ExpectedSocialSecurityTax(100000))
	assert.Equal(t, 9932.4, r.ExpectedSocialSecurityTax(250000))
	assert.Equal(t, 0.0, r.ExpectedSocialSecurityTax(0))
}

func TestExpectedMedicareTax(t *testing.T) {
	r := GetYearRules("2024")

	assert.Equal(t, 1450.0, r.ExpectedMedicareTax(100000))
	// 300,000 * 1.45% + 100,000 * 0.9%
	assert.Equal(t, 5250.0, r.ExpectedMedicareTax(300000))
}

func TestDetectTaxYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"form year", "Form W-2 Wage and Tax Statement 2023", "2023"},
		{"first plausible wins", "Revised 2019 for tax year 2021", "2019"},
		{"outside window", "Copyright 1998 and 2031", DefaultTaxYear},
		{"embedded digits ignored", "Control 120235 amount 20230", DefaultTaxYear},
		{"empty", "", DefaultTaxYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTaxYear(tt.text))
		})
	}

	_, ok := FindTaxYear("no year here")
	assert.False(t, ok)
}

func TestIsApproximately(t *testing.T) {
	assert.True(t, IsApproximately(6200, 6200.00, 5))
	assert.True(t, IsApproximately(6204.99, 6200, 5))
	assert.True(t, IsApproximately(6195, 6200, 5))
	assert.False(t, IsApproximately(500, 6200, 5))
}

func TestGetFieldConfig(t *testing.T) {
	recent := GetFieldConfig(Form1040, "2023")
	agi, ok := recent.Field(FieldAGI)
	assert.True(t, ok)
	assert.Equal(t, "11", agi.Line)

	legacy := GetFieldConfig(Form1040, "2019")
	agi, _ = legacy.Field(FieldAGI)
	assert.Equal(t, "8b", agi.Line)

	older := GetFieldConfig(Form1040, "2017")
	ira, _ := older.Field(FieldIRADistributions)
	assert.Equal(t, "15a", ira.Line)

	// unknown year falls back to the first entry
	unknown := GetFieldConfig(Form1040, "1987")
	agi, _ = unknown.Field(FieldAGI)
	assert.Equal(t, "11", agi.Line)

	// "all" sentinel matches any year
	w2 := GetFieldConfig(FormW2, "2016")
	box12, ok := w2.Field(FieldBox12)
	assert.True(t, ok)
	assert.Equal(t, FieldBox12Sum, box12.Type)
	assert.Equal(t, []string{"D", "E", "F", "G", "H", "S"}, box12.Codes)

	empty := GetFieldConfig(Form("1099-R"), "2023")
	assert.NotNil(t, empty.Fields)
	_, ok = empty.Field(FieldWages)
	assert.False(t, ok)
}
