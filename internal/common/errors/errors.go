// Package errors provides standardized error handling for the chatbot
// pipeline. Every stage converts failures into either a coded error or a
// documented fallback value; nothing propagates raw.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Input errors: terminate the pipeline before extraction.
	ErrCodeMissingInput ErrorCode = "MISSING_INPUT"
	ErrCodeInvalidAudio ErrorCode = "INVALID_AUDIO"

	// Collaborator preconditions.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Downstream failures: caught at the component boundary and converted
	// into fallback values; listed here for logging and metrics.
	ErrCodeSTTFailed         ErrorCode = "STT_FAILED"
	ErrCodeReasonerFailed    ErrorCode = "REASONER_FAILED"
	ErrCodePlaceSearchFailed ErrorCode = "PLACE_SEARCH_FAILED"
	ErrCodeSynthesisFailed   ErrorCode = "SYNTHESIS_FAILED"
	ErrCodeIntentAmbiguous   ErrorCode = "INTENT_AMBIGUOUS"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Stage     string                 `json:"stage,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewMissingInputError creates the non-retryable error for a request that
// carries neither usable text nor audio.
func NewMissingInputError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingInput,
		Message:   "텍스트 메시지가 필요합니다.",
		Stage:     "normalize-input",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAudioError creates the non-retryable error for malformed audio.
func NewInvalidAudioError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAudio,
		Message:   "유효하지 않은 오디오 데이터입니다.",
		Details:   details,
		Stage:     "normalize-input",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewServiceUnavailableError marks a collaborator whose credentials are
// absent or invalid, checked up front before expensive calls.
func NewServiceUnavailableError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeServiceUnavailable,
		Message:   "AI 서비스 설정이 완료되지 않았습니다.",
		Details:   fmt.Sprintf("service: %s", service),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDownstreamError wraps a collaborator failure for logging; the caller is
// expected to substitute a fallback value rather than propagate it.
func NewDownstreamError(code ErrorCode, stage string, err error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("collaborator call failed in %s", stage),
		Details:   err.Error(),
		Stage:     stage,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError is the catch-all for errors that prevented producing any
// message at all.
func NewInternalError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "서비스 처리 중 오류가 발생했습니다.",
		Details:   err.Error(),
		Stage:     stage,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the status the transport layer should
// return. Input errors are the caller's fault; everything else that escapes
// this far is a server-side failure.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMissingInput, ErrCodeInvalidAudio:
		return http.StatusBadRequest
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsInputError reports whether the code belongs to the user-input family.
func IsInputError(code ErrorCode) bool {
	return code == ErrCodeMissingInput || code == ErrCodeInvalidAudio
}
