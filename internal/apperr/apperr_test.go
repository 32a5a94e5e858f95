package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidDocument(errors.New("bad zip")), http.StatusBadRequest},
		{Validation("missing file"), http.StatusBadRequest},
		{UnknownPlaceholder("[Nope]"), http.StatusUnprocessableEntity},
		{SessionNotFound("abc"), http.StatusNotFound},
		{ExportFailure(errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v): expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling upload: %w", InvalidDocument(errors.New("not a zip")))
	if got := KindOf(err); got != KindInvalidDocument {
		t.Errorf("expected %q through wrapping, got %q", KindInvalidDocument, got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("io fail")
	err := ExportFailure(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
