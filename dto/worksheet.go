package dto

// SourceType says how a worksheet value is obtained
type SourceType string

const (
	SourceCalculated SourceType = "calculated"
	SourceManual     SourceType = "manual"
	SourceEstimated  SourceType = "estimated"
)

// WorksheetQuestion is one numbered CSS Profile question.
// Value stays nil for manual questions nobody filled in.
type WorksheetQuestion struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	SourceType   SourceType `json:"sourceType"`
	Value        *float64   `json:"value"`
	SourceDetail string     `json:"sourceDetail,omitempty"`
}

// WorksheetSection groups questions (student income, parent income, ...)
type WorksheetSection struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Questions []WorksheetQuestion `json:"questions"`
}
