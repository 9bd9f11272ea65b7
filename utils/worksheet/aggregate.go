package worksheet

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/ocr-financial-aid/dto"
)

// AssumedMortgageRate converts annual mortgage interest into an estimated
// outstanding principal.
var AssumedMortgageRate = decimal.RequireFromString("0.045")

// ownerFilter selects the documents a question sums over
type ownerFilter struct {
	desc  string
	match func(dto.Owner) bool
}

var (
	student = ownerFilter{"student", func(o dto.Owner) bool { return o == dto.OwnerStudent }}

	// unassigned documents count as parent 1 for parent sums only
	parent1 = ownerFilter{"parent 1 or unassigned", func(o dto.Owner) bool {
		return o == dto.OwnerParent1 || o == dto.OwnerUnassigned
	}}
	parent2 = ownerFilter{"parent 2", func(o dto.Owner) bool { return o == dto.OwnerParent2 }}
	parents = ownerFilter{"parents", func(o dto.Owner) bool { return o != dto.OwnerStudent }}

	household = ownerFilter{"household", func(dto.Owner) bool { return true }}
)

// sumRule fills one question with the sum of a field over matching documents
type sumRule struct {
	question string
	form     dto.FormType
	field    string
	value    func(*dto.ExtractedData) float64
	owners   ownerFilter
}

var sumRules = []sumRule{
	{StudentWages, dto.FormTypeW2, "wages", func(d *dto.ExtractedData) float64 { return d.Wages }, student},

	{Parent1Wages, dto.FormTypeW2, "wages", func(d *dto.ExtractedData) float64 { return d.Wages }, parent1},
	{Parent2Wages, dto.FormTypeW2, "wages", func(d *dto.ExtractedData) float64 { return d.Wages }, parent2},
	{ParentAGI, dto.FormType1040, "AGI", func(d *dto.ExtractedData) float64 { return d.AGI }, parents},
	{ParentIncomeTax, dto.FormType1040, "total tax", func(d *dto.ExtractedData) float64 { return d.FederalTax }, parents},
	{ParentUntaxedIRA, dto.FormType1040, "untaxed IRA distributions", func(d *dto.ExtractedData) float64 { return d.UntaxedIRA }, parents},
	{ParentDeferredComp, dto.FormTypeW2, "box 12 deferrals", func(d *dto.ExtractedData) float64 { return d.Box12Untaxed }, parents},
	{ParentBusinessIncome, dto.FormTypeBusiness, "net profit", func(d *dto.ExtractedData) float64 { return d.NetProfit }, parents},
	{ParentDividends, dto.FormType1040, "dividends", func(d *dto.ExtractedData) float64 { return d.DividendIncome }, parents},

	{MedicalExpenses, dto.FormTypeScheduleA, "medical expenses", func(d *dto.ExtractedData) float64 { return d.MedicalExpenses }, household},
	{ItemizedDeductions, dto.FormType1040, "itemized deductions", func(d *dto.ExtractedData) float64 { return d.ItemizedDeductions }, parents},
}

// Aggregate recomputes the whole worksheet from docs. Only complete
// documents contribute. Manual questions are returned without a value.
func Aggregate(docs []dto.ScannedDoc) []dto.WorksheetSection {
	sections := Schema()

	questions := make(map[string]*dto.WorksheetQuestion)
	for i := range sections {
		for j := range sections[i].Questions {
			q := &sections[i].Questions[j]
			questions[q.ID] = q
		}
	}

	var complete []dto.ScannedDoc
	for _, d := range docs {
		if d.Status == dto.StatusComplete && d.ExtractedData != nil {
			complete = append(complete, d)
		}
	}

	for _, r := range sumRules {
		if q, ok := questions[r.question]; ok {
			r.apply(q, complete)
		}
	}
	if q, ok := questions[MortgagePrincipal]; ok {
		estimateMortgagePrincipal(q, complete)
	}

	return sections
}

func (r sumRule) apply(q *dto.WorksheetQuestion, docs []dto.ScannedDoc) {
	total := decimal.Zero
	count := 0
	for _, d := range docs {
		if d.DetectedType != r.form || !r.owners.match(d.AssignedOwner) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(r.value(d.ExtractedData)))
		count++
	}

	if count == 0 {
		setValue(q, decimal.Zero, fmt.Sprintf("No %s documents for %s", r.form, r.owners.desc))
		return
	}
	setValue(q, total, fmt.Sprintf("Sum of %s from %d %s document(s) (%s)", r.field, count, r.form, r.owners.desc))
}

// estimateMortgagePrincipal divides the mortgage interest of the first
// Schedule A by AssumedMortgageRate. Later Schedule A documents are ignored.
func estimateMortgagePrincipal(q *dto.WorksheetQuestion, docs []dto.ScannedDoc) {
	for _, d := range docs {
		if d.DetectedType != dto.FormTypeScheduleA {
			continue
		}
		interest := decimal.NewFromFloat(d.ExtractedData.MortgageInterest)
		if !interest.IsPositive() {
			break
		}
		principal := interest.Div(AssumedMortgageRate).Round(0)
		setValue(q, principal, fmt.Sprintf("Estimated from $%s mortgage interest on %s at an assumed %s%% rate",
			interest.StringFixed(2), d.FileName, AssumedMortgageRate.Shift(2).String()))
		return
	}
	setValue(q, decimal.Zero, "No mortgage interest found")
}

func setValue(q *dto.WorksheetQuestion, v decimal.Decimal, detail string) {
	f := v.Round(2).InexactFloat64()
	q.Value = &f
	q.SourceDetail = detail
}
