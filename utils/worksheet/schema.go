// Package worksheet rolls per-document extraction results into the CSS
// Profile worksheet.
package worksheet

import "github.com/Aashish23092/ocr-financial-aid/dto"

// Question IDs written by Aggregate
const (
	StudentWages = "SI-100"

	Parent1Wages         = "PI-100"
	Parent2Wages         = "PI-105"
	ParentAGI            = "PI-110"
	ParentIncomeTax      = "PI-120"
	ParentUntaxedIRA     = "PI-130"
	ParentDeferredComp   = "PI-140"
	ParentBusinessIncome = "PI-150"
	ParentDividends      = "PI-160"

	MedicalExpenses    = "PE-100"
	ItemizedDeductions = "PE-110"

	MortgagePrincipal = "AS-125"
)

func calculated(id, label string) dto.WorksheetQuestion {
	return dto.WorksheetQuestion{ID: id, Label: label, SourceType: dto.SourceCalculated}
}

func manual(id, label string) dto.WorksheetQuestion {
	return dto.WorksheetQuestion{ID: id, Label: label, SourceType: dto.SourceManual}
}

var schema = []dto.WorksheetSection{
	{
		ID:    "student-income",
		Title: "Student Income",
		Questions: []dto.WorksheetQuestion{
			calculated(StudentWages, "Student wages, salaries and tips"),
			manual("SI-110", "Student untaxed income and benefits"),
			manual("SI-120", "Student scholarships and grants reported as income"),
		},
	},
	{
		ID:    "parent-income",
		Title: "Parent Income",
		Questions: []dto.WorksheetQuestion{
			calculated(Parent1Wages, "Parent 1 wages, salaries and tips"),
			calculated(Parent2Wages, "Parent 2 wages, salaries and tips"),
			calculated(ParentAGI, "Parents' adjusted gross income"),
			calculated(ParentIncomeTax, "Parents' U.S. income tax paid"),
			calculated(ParentUntaxedIRA, "Untaxed IRA and pension distributions"),
			calculated(ParentDeferredComp, "Tax-deferred pension and retirement savings (W-2 box 12)"),
			calculated(ParentBusinessIncome, "Business net profit (Schedule C)"),
			calculated(ParentDividends, "Dividend income"),
			manual("PI-170", "Child support received"),
		},
	},
	{
		ID:    "parent-expenses",
		Title: "Parent Expenses",
		Questions: []dto.WorksheetQuestion{
			calculated(MedicalExpenses, "Medical and dental expenses not covered by insurance"),
			calculated(ItemizedDeductions, "Itemized deductions"),
			manual("PE-120", "Elementary and secondary tuition paid"),
		},
	},
	{
		ID:    "assets",
		Title: "Assets",
		Questions: []dto.WorksheetQuestion{
			manual("AS-100", "Cash, savings and checking accounts"),
			manual("AS-110", "Investments"),
			manual("AS-120", "Home market value"),
			{ID: MortgagePrincipal, Label: "Home mortgage principal owed", SourceType: dto.SourceEstimated},
		},
	},
}

// Schema returns a fresh copy of the worksheet with no values filled in
func Schema() []dto.WorksheetSection {
	out := make([]dto.WorksheetSection, len(schema))
	for i, s := range schema {
		out[i] = s
		out[i].Questions = make([]dto.WorksheetQuestion, len(s.Questions))
		copy(out[i].Questions, s.Questions)
	}
	return out
}
