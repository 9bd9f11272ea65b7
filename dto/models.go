package dto

// FormType identifies which tax form a document was classified as
type FormType string

const (
	FormTypeW2        FormType = "W-2"
	FormType1040      FormType = "1040"
	FormTypeScheduleA FormType = "Schedule A"
	FormTypeBusiness  FormType = "Business"
	FormTypeUnknown   FormType = "Unknown"
)

// Severity of a ValidationWarning
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// BoundingBox is a rectangle in page space with a top-down y axis
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width of the box
func (b BoundingBox) Width() float64 { return b.X1 - b.X0 }

// Height of the box
func (b BoundingBox) Height() float64 { return b.Y1 - b.Y0 }

// Center returns the midpoint of the box
func (b BoundingBox) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Contains reports whether the point lies inside the box (edges included)
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// RecognizedWord is one OCR or PDF text-layer output unit.
// Confidence is 0-100, and 100 for PDF text layers.
type RecognizedWord struct {
	Text        string      `json:"text"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bbox"`
}

// OCRPage is the recognition result of a single page
type OCRPage struct {
	PageNumber int              `json:"page_number"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Text       string           `json:"text"`
	Confidence float64          `json:"confidence"`
	Words      []RecognizedWord `json:"words"`
}

// OCRResult is what OCR and PDF providers hand back to the service layer
type OCRResult struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Pages      []OCRPage `json:"pages"`
	Source     string    `json:"source"` // "text_layer", "tesseract", "paddle"
}

// ValidationWarning records an estimated value or a cross-field inconsistency
type ValidationWarning struct {
	Field    string   `json:"field"`
	Expected float64  `json:"expected"`
	Actual   float64  `json:"actual"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ExtractedData is the single-document extraction result.
// Numeric fields are never NaN; missing values are 0.
type ExtractedData struct {
	FormType FormType `json:"formType"`
	TaxYear  string   `json:"taxYear,omitempty"`

	SSN string `json:"ssn,omitempty"`
	EIN string `json:"ein,omitempty"`

	Wages               float64 `json:"wages"`
	AGI                 float64 `json:"agi"`
	FederalTax          float64 `json:"federalTax"`
	SocialSecurityWages float64 `json:"socialSecurityWages"`
	SocialSecurityTax   float64 `json:"socialSecurityTax"`
	MedicareWages       float64 `json:"medicareWages"`
	MedicareTax         float64 `json:"medicareTax"`
	Box12Untaxed        float64 `json:"box12Untaxed"`
	MedicalExpenses     float64 `json:"medicalExpenses"`
	MortgageInterest    float64 `json:"mortgageInterest"`
	NetProfit           float64 `json:"netProfit"`
	ItemizedDeductions  float64 `json:"itemizedDeductions"`
	UntaxedIRA          float64 `json:"untaxedIRA"`
	DividendIncome      float64 `json:"dividendIncome"`

	EmployerName    string `json:"employerName,omitempty"`
	EmployeeAddress string `json:"employeeAddress,omitempty"`

	RawText         string              `json:"rawText"`
	Warnings        []ValidationWarning `json:"warnings"`
	ConfidenceScore float64             `json:"confidenceScore"`

	// Extraction is the form-specific record the flat fields were taken from
	Extraction FormExtraction `json:"extraction,omitempty"`
}

// AddWarning appends a warning to the result
func (d *ExtractedData) AddWarning(w ValidationWarning) {
	d.Warnings = append(d.Warnings, w)
}

// Penalize lowers the confidence score, never below zero
func (d *ExtractedData) Penalize(points float64) {
	d.ConfidenceScore -= points
	if d.ConfidenceScore < 0 {
		d.ConfidenceScore = 0
	}
}
