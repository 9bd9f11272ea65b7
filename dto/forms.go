package dto

// FormExtraction is the form-specific result of a field extractor.
// It is implemented only by the field records in this file.
type FormExtraction interface {
	Form() FormType
	isFormExtraction()
}

// W2Fields holds the boxes read from a Form W-2
type W2Fields struct {
	Wages           float64  `json:"wages"`
	FederalTax      float64  `json:"federalTax"`
	SSWages         float64  `json:"socialSecurityWages"`
	SSTax           float64  `json:"socialSecurityTax"`
	MedicareWages   float64  `json:"medicareWages"`
	MedicareTax     float64  `json:"medicareTax"`
	Box12Untaxed    float64  `json:"box12Untaxed"`
	Box12Codes      []string `json:"box12Codes,omitempty"`
	EmployerName    string   `json:"employerName,omitempty"`
	EmployeeAddress string   `json:"employeeAddress,omitempty"`
}

// Form1040Fields holds the lines read from a Form 1040
type Form1040Fields struct {
	Wages              float64 `json:"wages"`
	AGI                float64 `json:"agi"`
	TotalTax           float64 `json:"totalTax"`
	ItemizedDeductions float64 `json:"itemizedDeductions"`
	IRADistributions   float64 `json:"iraDistributions"`
	IRATaxable         float64 `json:"iraTaxable"`
	UntaxedIRA         float64 `json:"untaxedIRA"`
	DividendIncome     float64 `json:"dividendIncome"`
}

// ScheduleAFields holds the lines read from Schedule A (itemized deductions)
type ScheduleAFields struct {
	MedicalExpenses    float64 `json:"medicalExpenses"`
	TaxesPaid          float64 `json:"taxesPaid"`
	MortgageInterest   float64 `json:"mortgageInterest"`
	CharitableGifts    float64 `json:"charitableGifts"`
	ItemizedDeductions float64 `json:"itemizedDeductions"`
}

// ScheduleCFields holds the lines read from Schedule C (business profit or loss)
type ScheduleCFields struct {
	GrossReceipts float64 `json:"grossReceipts"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
}

func (W2Fields) Form() FormType        { return FormTypeW2 }
func (Form1040Fields) Form() FormType  { return FormType1040 }
func (ScheduleAFields) Form() FormType { return FormTypeScheduleA }
func (ScheduleCFields) Form() FormType { return FormTypeBusiness }

func (W2Fields) isFormExtraction()        {}
func (Form1040Fields) isFormExtraction()  {}
func (ScheduleAFields) isFormExtraction() {}
func (ScheduleCFields) isFormExtraction() {}
