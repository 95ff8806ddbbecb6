package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsHelpersUnwrap(t *testing.T) {
	base := errors.New("boom")
	cases := []struct {
		name string
		err  error
		is   func(error) bool
		msg  string
	}{
		{"not found", NotFoundError{Resource: "lowongan"}, IsNotFound, "lowongan not found"},
		{"validation", ValidationError{Field: "email", Msg: "wajib diisi"}, IsValidation, "email: wajib diisi"},
		{"conflict", ConflictError{Resource: "lamaran", Msg: "sudah melamar"}, IsConflict, "lamaran conflict: sudah melamar"},
		{"internal", InternalError{Err: base}, IsInternal, "internal error"},
		{"unauthorized", UnauthorizedError{}, IsUnauthorized, "unauthorized"},
		{"forbidden", UnauthorizedError{Forbidden: true}, IsUnauthorized, "forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tc.err)
			if !tc.is(wrapped) {
				t.Fatalf("expected helper to match wrapped %T", tc.err)
			}
			if tc.err.Error() != tc.msg {
				t.Fatalf("message = %q, want %q", tc.err.Error(), tc.msg)
			}
		})
	}
	if IsNotFound(base) {
		t.Fatalf("plain error must not match")
	}
}

func TestApplicationStatusValid(t *testing.T) {
	if !ApplicationInterview.Valid() {
		t.Fatalf("interview should be valid")
	}
	if ApplicationStatus("hired").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
}
