package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserFriendlyError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UserFriendlyError
		contains []string
	}{
		{
			name:     "message only",
			err:      UserFriendlyError{Message: "lookup failed"},
			contains: []string{"lookup failed"},
		},
		{
			name: "all fields",
			err: UserFriendlyError{
				Message: "lookup failed",
				Reason:  "unknown id",
				Hint:    "ids are positive",
				Try:     "merlinctl programs list",
				Err:     fmt.Errorf("program 9: not found"),
			},
			contains: []string{"lookup failed", "Reason: unknown id", "Hint: ids are positive", "Try: merlinctl programs list", "Details: program 9: not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("Error() = %q, want to contain %q", msg, s)
				}
			}
		})
	}
}

func TestUserFriendlyError_ErrorOmitsEmptyFields(t *testing.T) {
	msg := UserFriendlyError{Message: "msg"}.Error()
	for _, field := range []string{"Reason:", "Hint:", "Try:", "Details:"} {
		if strings.Contains(msg, field) {
			t.Errorf("Error() = %q, should not contain %s", msg, field)
		}
	}
}

func TestUserFriendlyError_Unwrap(t *testing.T) {
	inner := errors.New("root cause")
	err := UserFriendlyError{Message: "wrapper", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should see the inner error")
	}

	var empty UserFriendlyError
	if empty.Unwrap() != nil {
		t.Error("Unwrap on nil Err should return nil")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if WrapNotFound(nil, "9") != nil {
		t.Error("WrapNotFound(nil) should be nil")
	}
	if WrapCatalogError(nil, "c.yaml") != nil {
		t.Error("WrapCatalogError(nil) should be nil")
	}
	if WrapConfigError(nil, "c.yaml") != nil {
		t.Error("WrapConfigError(nil) should be nil")
	}
	if WrapStatusError(nil, "s.json") != nil {
		t.Error("WrapStatusError(nil) should be nil")
	}
}

func TestWrapNotFound(t *testing.T) {
	sentinel := errors.New("program not found")
	err := WrapNotFound(fmt.Errorf("program 9: %w", sentinel), "9")

	var ufe UserFriendlyError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UserFriendlyError, got %T", err)
	}
	if !strings.Contains(ufe.Message, "9") {
		t.Errorf("message should name the id, got %q", ufe.Message)
	}
	if !errors.Is(err, sentinel) {
		t.Error("wrapped error should still match the sentinel")
	}
}

func TestWrapCatalogError(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{err: fmt.Errorf("read catalog file: open x.yaml: no such file or directory"), reason: "File does not exist"},
		{err: fmt.Errorf("read catalog file: open x.yaml: permission denied"), reason: "File is not readable"},
		{err: fmt.Errorf("cannot infer catalog format from \"x.txt\""), reason: "Unrecognised file extension"},
		{err: fmt.Errorf("parse catalog YAML: yaml: line 2"), reason: "File contents could not be decoded"},
		{err: fmt.Errorf("validate catalog: program 1: duplicate id"), reason: "Catalog failed validation"},
		{err: fmt.Errorf("something else"), reason: "Catalog could not be loaded"},
	}

	for _, tt := range tests {
		ufe := WrapCatalogError(tt.err, "x.yaml").(UserFriendlyError)
		if ufe.Reason != tt.reason {
			t.Errorf("%v: reason = %q, want %q", tt.err, ufe.Reason, tt.reason)
		}
		if !strings.Contains(ufe.Try, "validate --file x.yaml") {
			t.Errorf("try should suggest validate, got %q", ufe.Try)
		}
	}
}

func TestWrapConfigError(t *testing.T) {
	ufe := WrapConfigError(fmt.Errorf("unknown log level \"loud\""), "/tmp/m.yaml").(UserFriendlyError)
	if !strings.Contains(ufe.Message, "/tmp/m.yaml") {
		t.Errorf("message should contain path, got %q", ufe.Message)
	}
	if !strings.Contains(ufe.Reason, "loud") {
		t.Errorf("reason should carry the cause, got %q", ufe.Reason)
	}
}

func TestWrapStatusError(t *testing.T) {
	ufe := WrapStatusError(fmt.Errorf("invalid character 'x'"), "status.json").(UserFriendlyError)
	if ufe.Reason != "File contents could not be decoded" {
		t.Errorf("unexpected reason %q", ufe.Reason)
	}
}
