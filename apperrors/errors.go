// Package apperrors defines the structured errors the service and handler
// layers pass around. The extraction core never produces them.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError              ErrorType = "VALIDATION_ERROR"
	NotFoundError                ErrorType = "NOT_FOUND"
	OCRFailedError               ErrorType = "OCR_FAILED"
	PDFFailedError               ErrorType = "PDF_FAILED"
	UnsupportedFormatError       ErrorType = "UNSUPPORTED_FORMAT"
	InvalidStatusTransitionError ErrorType = "INVALID_STATUS_TRANSITION"
	ServerError                  ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func InvalidTransition(from, to string) *AppError {
	return New(InvalidStatusTransitionError,
		"invalid document status transition",
		fmt.Sprintf("%s -> %s", from, to))
}

func Validation(message string) *AppError {
	return New(ValidationError, message, "")
}

// HTTPStatusOf returns the status code carried by err, or 500 when err is
// not an AppError.
func HTTPStatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// TypeOf returns the ErrorType carried by err, or ServerError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ServerError
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case UnsupportedFormatError:
		return http.StatusUnsupportedMediaType
	case InvalidStatusTransitionError:
		return http.StatusConflict
	case OCRFailedError, PDFFailedError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
