package taxrules

import "slices"

// Form keys the field configuration table is indexed by
type Form string

const (
	FormW2        Form = "W-2"
	Form1040      Form = "1040"
	FormScheduleA Form = "Schedule A"
	FormScheduleC Form = "Schedule C"
	// FormGeneric holds form-agnostic labels used to backfill missing values
	FormGeneric Form = "generic"
)

// AllYears is the years sentinel of a config valid for every revision
const AllYears = "all"

// FieldType is the value shape of a field
type FieldType string

const (
	FieldCurrency FieldType = "currency"
	FieldBox12Sum FieldType = "box12_sum"
)

// Field identifiers
const (
	FieldWages            = "wages"
	FieldFederalTax       = "federalTax"
	FieldSSWages          = "socialSecurityWages"
	FieldSSTax            = "socialSecurityTax"
	FieldMedicareWages    = "medicareWages"
	FieldMedicareTax      = "medicareTax"
	FieldBox12            = "box12"
	FieldAGI              = "agi"
	FieldTotalTax         = "totalTax"
	FieldItemized         = "itemizedDeductions"
	FieldIRADistributions = "iraDistributions"
	FieldIRATaxable       = "iraTaxable"
	FieldDividends        = "dividendIncome"
	FieldMedical          = "medicalExpenses"
	FieldTaxesPaid        = "taxesPaid"
	FieldMortgageInterest = "mortgageInterest"
	FieldCharitableGifts  = "charitableGifts"
	FieldTotalItemized    = "totalItemized"
	FieldGrossReceipts    = "grossReceipts"
	FieldTotalExpenses    = "totalExpenses"
	FieldNetProfit        = "netProfit"
)

// DefaultBox12Codes are the deferred-compensation codes added back to income
var DefaultBox12Codes = []string{"D", "E", "F", "G", "H", "S"}

// FieldConfig describes how to locate one logical field
type FieldConfig struct {
	Line     string
	Keywords []string
	Type     FieldType
	Codes    []string
}

// YearConfig is the field layout of one form for a range of tax years
type YearConfig struct {
	Years  []string
	Fields map[string]FieldConfig
}

// Field returns the config of id; ok is false when the form has no such field
func (c YearConfig) Field(id string) (FieldConfig, bool) {
	f, ok := c.Fields[id]
	return f, ok
}

func currency(line string, keywords ...string) FieldConfig {
	return FieldConfig{Line: line, Keywords: keywords, Type: FieldCurrency}
}

var w2Fields = map[string]FieldConfig{
	FieldWages:         currency("1", "Wages, tips, other compensation", "Wages, tips, other comp"),
	FieldFederalTax:    currency("2", "Federal income tax withheld"),
	FieldSSWages:       currency("3", "Social security wages"),
	FieldSSTax:         currency("4", "Social security tax withheld"),
	FieldMedicareWages: currency("5", "Medicare wages and tips"),
	FieldMedicareTax:   currency("6", "Medicare tax withheld"),
	FieldBox12:         {Line: "12", Keywords: []string{"Box 12"}, Type: FieldBox12Sum, Codes: DefaultBox12Codes},
}

var fieldConfigs = map[Form][]YearConfig{
	FormW2: {
		{Years: []string{AllYears}, Fields: w2Fields},
	},
	Form1040: {
		{
			Years: []string{"2022", "2023", "2024", "2025", "2026"},
			Fields: map[string]FieldConfig{
				FieldWages:            currency("1z", "Add lines 1a through 1h", "Total amount from Form(s) W-2"),
				FieldDividends:        currency("3b", "Ordinary dividends"),
				FieldIRADistributions: currency("4a", "IRA distributions"),
				FieldIRATaxable:       currency("4b", "Taxable amount"),
				FieldAGI:              currency("11", "Adjusted gross income"),
				FieldItemized:         currency("12", "Standard deduction or itemized deductions"),
				FieldTotalTax:         currency("24", "This is your total tax", "Total tax"),
			},
		},
		{
			Years: []string{"2020", "2021"},
			Fields: map[string]FieldConfig{
				FieldWages:            currency("1", "Wages, salaries, tips"),
				FieldDividends:        currency("3b", "Ordinary dividends"),
				FieldIRADistributions: currency("4a", "IRA distributions"),
				FieldIRATaxable:       currency("4b", "Taxable amount"),
				FieldAGI:              currency("11", "Adjusted gross income"),
				FieldItemized:         currency("12a", "Standard deduction or itemized deductions"),
				FieldTotalTax:         currency("24", "This is your total tax", "Total tax"),
			},
		},
		{
			Years: []string{"2019"},
			Fields: map[string]FieldConfig{
				FieldWages:            currency("1", "Wages, salaries, tips"),
				FieldDividends:        currency("3b", "Ordinary dividends"),
				FieldIRADistributions: currency("4a", "IRA distributions"),
				FieldIRATaxable:       currency("4b", "Taxable amount"),
				FieldAGI:              currency("8b", "Adjusted gross income"),
				FieldItemized:         currency("9", "Standard deduction or itemized deductions"),
				FieldTotalTax:         currency("16", "Total tax"),
			},
		},
		{
			Years: []string{"2015", "2016", "2017", "2018"},
			Fields: map[string]FieldConfig{
				FieldWages:            currency("7", "Wages, salaries, tips"),
				FieldDividends:        currency("9a", "Ordinary dividends"),
				FieldIRADistributions: currency("15a", "IRA distributions"),
				FieldIRATaxable:       currency("15b", "Taxable amount"),
				FieldAGI:              currency("37", "This is your adjusted gross income", "Adjusted gross income"),
				FieldItemized:         currency("40", "Itemized deductions (from Schedule A)"),
				FieldTotalTax:         currency("63", "This is your total tax", "Total tax"),
			},
		},
	},
	FormScheduleA: {
		{
			Years: []string{"2018", "2019", "2020", "2021", "2022", "2023", "2024", "2025", "2026"},
			Fields: map[string]FieldConfig{
				FieldMedical:          currency("1", "Medical and dental expenses"),
				FieldTaxesPaid:        currency("5e", "if married filing separately)"),
				FieldMortgageInterest: currency("8a", "Home mortgage interest and points reported to you on Form 1098", "Home mortgage interest"),
				FieldCharitableGifts:  currency("14", "Add lines 11 through 13"),
				FieldTotalItemized:    currency("17", "Total itemized deductions"),
			},
		},
		{
			Years: []string{"2015", "2016", "2017"},
			Fields: map[string]FieldConfig{
				FieldMedical:          currency("1", "Medical and dental expenses"),
				FieldTaxesPaid:        currency("9", "Add lines 5 through 8"),
				FieldMortgageInterest: currency("10", "Home mortgage interest and points reported to you on Form 1098", "Home mortgage interest"),
				FieldCharitableGifts:  currency("19", "Add lines 16 through 18"),
				FieldTotalItemized:    currency("29", "Total itemized deductions"),
			},
		},
	},
	FormScheduleC: {
		{
			Years: []string{AllYears},
			Fields: map[string]FieldConfig{
				FieldGrossReceipts: currency("1", "Gross receipts or sales"),
				FieldTotalExpenses: currency("28", "Total expenses before expenses for business use of home"),
				FieldNetProfit:     currency("31", "Net profit or (loss)", "Net profit"),
			},
		},
	},
	FormGeneric: {
		{
			Years: []string{AllYears},
			Fields: map[string]FieldConfig{
				FieldWages:      {Keywords: []string{"Wages, salaries, tips", "Wages, tips, other compensation", "Total wages"}, Type: FieldCurrency},
				FieldAGI:        {Keywords: []string{"Adjusted gross income", "AGI"}, Type: FieldCurrency},
				FieldFederalTax: {Keywords: []string{"Federal income tax withheld", "Total tax"}, Type: FieldCurrency},
			},
		},
	},
}

// GetFieldConfig selects the layout of form for year: the first config
// listing the year, else the first one marked "all", else the first entry.
func GetFieldConfig(form Form, year string) YearConfig {
	configs := fieldConfigs[form]
	if len(configs) == 0 {
		return YearConfig{Fields: map[string]FieldConfig{}}
	}
	for _, c := range configs {
		if slices.Contains(c.Years, year) {
			return c
		}
	}
	for _, c := range configs {
		if slices.Contains(c.Years, AllYears) {
			return c
		}
	}
	return configs[0]
}
