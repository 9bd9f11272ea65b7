package dto

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
)

// SupportedExtensions lists the upload types the service accepts
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// DocumentUploadRequest represents the incoming multipart upload
type DocumentUploadRequest struct {
	Files    []*multipart.FileHeader `form:"files[]" binding:"required"`
	Owner    string                  `form:"owner"`
	Password string                  `form:"password"`
}

// Validate performs basic validation on the request
func (r *DocumentUploadRequest) Validate(maxFileSize int64) error {
	if len(r.Files) == 0 {
		return apperrors.Validation("at least one file is required")
	}
	if _, err := ParseOwner(r.Owner); err != nil {
		return err
	}
	for _, f := range r.Files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !SupportedExtensions[ext] {
			return apperrors.New(apperrors.UnsupportedFormatError,
				"invalid file type. Supported: PDF, PNG, JPG, TIFF", f.Filename)
		}
		if maxFileSize > 0 && f.Size > maxFileSize {
			return apperrors.New(apperrors.ValidationError, "file too large", f.Filename)
		}
	}
	return nil
}

// ExtractTextRequest carries OCR output produced by the caller
type ExtractTextRequest struct {
	Text  string           `json:"text"`
	Words []RecognizedWord `json:"words"`
}

// AssignOwnerRequest changes the owner of a document
type AssignOwnerRequest struct {
	Owner string `json:"owner"`
}
