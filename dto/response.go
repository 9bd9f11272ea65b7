package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DocumentUploadResponse lists the documents created by an upload
type DocumentUploadResponse struct {
	Documents   []*ScannedDoc `json:"documents"`
	ProcessedAt string        `json:"processed_at"`
}

// DocumentListResponse is the current document collection
type DocumentListResponse struct {
	Documents []*ScannedDoc `json:"documents"`
	Count     int           `json:"count"`
}

// WorksheetResponse is the aggregated CSS Profile worksheet
type WorksheetResponse struct {
	Sections      []WorksheetSection `json:"sections"`
	DocumentCount int                `json:"document_count"`
	GeneratedAt   string             `json:"generated_at"`
}
