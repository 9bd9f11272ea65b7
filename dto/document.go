package dto

import (
	"time"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
)

// Owner is the household member a document belongs to
type Owner string

const (
	OwnerStudent    Owner = "student"
	OwnerParent1    Owner = "parent1"
	OwnerParent2    Owner = "parent2"
	OwnerUnassigned Owner = ""
)

// ParseOwner validates an owner string coming from a request
func ParseOwner(s string) (Owner, error) {
	switch Owner(s) {
	case OwnerStudent, OwnerParent1, OwnerParent2, OwnerUnassigned:
		return Owner(s), nil
	}
	return OwnerUnassigned, apperrors.Validation("owner must be one of student, parent1, parent2 or empty")
}

// DocumentStatus is the processing state of a ScannedDoc.
// processing -> complete and processing -> error are the only transitions.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusComplete   DocumentStatus = "complete"
	StatusError      DocumentStatus = "error"
)

// CanTransitionTo reports whether next is reachable from s
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	return s == StatusProcessing && (next == StatusComplete || next == StatusError)
}

// ScannedDoc is one uploaded document and its extraction result
type ScannedDoc struct {
	ID            string                 `json:"id"`
	FileName      string                 `json:"fileName"`
	RawText       string                 `json:"rawText"`
	Status        DocumentStatus         `json:"status"`
	AssignedOwner Owner                  `json:"assignedOwner"`
	DetectedType  FormType               `json:"detectedType,omitempty"`
	ExtractedData *ExtractedData         `json:"extractedData,omitempty"`
	AwardData     map[string]interface{} `json:"awardData,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Source        string                 `json:"source,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// NewScannedDoc returns a document in the processing state
func NewScannedDoc(id, fileName string, owner Owner) *ScannedDoc {
	now := time.Now()
	return &ScannedDoc{
		ID:            id,
		FileName:      fileName,
		Status:        StatusProcessing,
		AssignedOwner: owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Complete moves the document to complete and attaches the result
func (d *ScannedDoc) Complete(data ExtractedData) error {
	if !d.Status.CanTransitionTo(StatusComplete) {
		return apperrors.InvalidTransition(string(d.Status), string(StatusComplete))
	}
	d.Status = StatusComplete
	d.ExtractedData = &data
	d.DetectedType = data.FormType
	d.RawText = data.RawText
	d.UpdatedAt = time.Now()
	return nil
}

// Fail moves the document to error with a human-readable message
func (d *ScannedDoc) Fail(cause error) error {
	if !d.Status.CanTransitionTo(StatusError) {
		return apperrors.InvalidTransition(string(d.Status), string(StatusError))
	}
	d.Status = StatusError
	if cause != nil {
		d.Error = cause.Error()
	}
	d.UpdatedAt = time.Now()
	return nil
}

// Upload is a file handed to the document service
type Upload struct {
	FileName string
	Data     []byte
	Owner    Owner
	Password string
}
