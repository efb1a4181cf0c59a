// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Job payload errors (1100-1199)
	CodeMalformedPayload = 1100
	CodeNoDocument       = 1101
	CodeNoClipWindows    = 1102

	// Media processing errors (1200-1299)
	CodeInvalidWindow    = 1200
	CodeExtractionFailed = 1201
	CodeTimeout          = 1202
	CodeProbeFailed      = 1203
	CodeOutputMissing    = 1204

	// Storage errors (1300-1399)
	CodeDBError         = 1300
	CodeBlobDownload    = 1301
	CodeBlobUpload      = 1302
	CodeDocumentFailed  = 1303
	CodeSubtitleMissing = 1304

	// Analysis errors (1400-1499)
	CodeAnalysisFailed = 1400
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "Resource not found")

	// Payload
	ErrMalformedPayload = New(CodeMalformedPayload, "Invalid clips timestamps format")
	ErrNoDocument       = New(CodeNoDocument, "No document found")
	ErrNoClipWindows    = New(CodeNoClipWindows, "No clips timestamps to process")

	// Media
	ErrInvalidWindow    = New(CodeInvalidWindow, "Invalid clip window")
	ErrExtractionFailed = New(CodeExtractionFailed, "Media extraction failed")
	ErrTimeout          = New(CodeTimeout, "Subprocess timed out")

	// Storage
	ErrDBError         = New(CodeDBError, "Database error")
	ErrBlobDownload    = New(CodeBlobDownload, "Blob download failed")
	ErrSubtitleMissing = New(CodeSubtitleMissing, "Subtitle track not found")

	// Analysis
	ErrAnalysisFailed = New(CodeAnalysisFailed, "Highlight analysis failed")
)
