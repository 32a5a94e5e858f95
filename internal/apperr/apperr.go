// Package apperr defines the application error kinds surfaced to API and
// CLI callers, with their HTTP status mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind string

const (
	KindInvalidDocument    Kind = "invalid_document"
	KindUnknownPlaceholder Kind = "unknown_placeholder"
	KindSessionNotFound    Kind = "session_not_found"
	KindValidation         Kind = "validation"
	KindExportFailure      Kind = "export_failure"
	KindPreviewFailure     Kind = "preview_failure"
	KindInternal           Kind = "internal"
)

// Error is a structured application error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidDocument means the uploaded file is not a parseable document
// package. No session is created.
func InvalidDocument(cause error) *Error {
	return &Error{Kind: KindInvalidDocument, Message: "not a valid document", Cause: cause}
}

// UnknownPlaceholder means an answer or clear referenced a key outside the
// session's placeholder list. Session state is unchanged.
func UnknownPlaceholder(key string) *Error {
	return &Error{Kind: KindUnknownPlaceholder, Message: fmt.Sprintf("unknown placeholder %q", key)}
}

// SessionNotFound means the referenced session does not exist or has
// expired.
func SessionNotFound(id string) *Error {
	return &Error{Kind: KindSessionNotFound, Message: fmt.Sprintf("session %q not found", id)}
}

// Validation is a bad-request error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ExportFailure means the finished document could not be produced. Session
// state is unaffected and export may be retried.
func ExportFailure(cause error) *Error {
	return &Error{Kind: KindExportFailure, Message: "export failed", Cause: cause}
}

// PreviewFailure is recovered locally with a fallback rendering; it never
// blocks export.
func PreviewFailure(cause error) *Error {
	return &Error{Kind: KindPreviewFailure, Message: "preview unavailable", Cause: cause}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusCode maps an error to its HTTP response status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindInvalidDocument, KindValidation:
		return http.StatusBadRequest
	case KindUnknownPlaceholder:
		return http.StatusUnprocessableEntity
	case KindSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
