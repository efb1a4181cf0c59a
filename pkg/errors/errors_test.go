package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeMalformedPayload, "Test error")
	assert.Equal(t, "[1100] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeMalformedPayload, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1100")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeExtractionFailed, "Extraction failed", cause)

	// Test Unwrap
	assert.Equal(t, cause, err.Unwrap())

	// Test errors.Is
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeTimeout, "Subprocess timed out")

	assert.True(t, Is(err, CodeTimeout))
	assert.False(t, Is(err, CodeExtractionFailed))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeTimeout))
}

func TestGetCode(t *testing.T) {
	// AppError
	appErr := New(CodeInvalidWindow, "Invalid clip window")
	assert.Equal(t, CodeInvalidWindow, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	// AppError
	appErr := New(CodeBlobDownload, "Blob download failed")
	assert.Equal(t, "Blob download failed", GetMessage(appErr))

	// Regular error returns error message
	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithDetail(CodeBlobDownload, "Download failed", "bucket: videos", cause)

	assert.Equal(t, CodeBlobDownload, err.Code)
	assert.Equal(t, "Download failed", err.Message)
	assert.Equal(t, "bucket: videos", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	// Verify predefined errors have correct codes
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeMalformedPayload, ErrMalformedPayload.Code)
	assert.Equal(t, CodeNoClipWindows, ErrNoClipWindows.Code)
	assert.Equal(t, CodeInvalidWindow, ErrInvalidWindow.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
}
