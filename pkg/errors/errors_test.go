package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeAudioExtract, "Test error")
	assert.Equal(t, "[1100] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeAudioExtract, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1100")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeTranscribeFailed, "Transcription failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeRenderFailed, "Export render failed")

	assert.True(t, Is(err, CodeRenderFailed))
	assert.False(t, Is(err, CodeAudioExtract))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeRenderFailed))
}

func TestGetCode(t *testing.T) {
	appErr := New(CodeTranscribeTimeout, "Transcription timeout")
	assert.Equal(t, CodeTranscribeTimeout, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	appErr := New(CodeFileNotFound, "File not found")
	assert.Equal(t, "File not found", GetMessage(appErr))

	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("exit status 1")
	err := WrapWithDetail(CodeRenderFailed, "Export render failed", "job 42", cause)

	assert.Equal(t, CodeRenderFailed, err.Code)
	assert.Equal(t, "Export render failed", err.Message)
	assert.Equal(t, "job 42", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeAudioExtract, ErrAudioExtract.Code)
	assert.Equal(t, CodeTranscribeFailed, ErrTranscribeFailed.Code)
	assert.Equal(t, CodeRenderFailed, ErrRenderFailed.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
}
