package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "invalid_credentials", "invalid email or password")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestWithMeta_AttachesMeta(t *testing.T) {
	err := ErrMissingField("email")

	if err.Meta == nil {
		t.Fatalf("expected meta to be set")
	}
	if err.Meta["field"] != "email" {
		t.Fatalf("unexpected meta value: %+v", err.Meta)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrInvalidCredentials()

	if !Is(err, "invalid_credentials") {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
}

func TestIs_NonDomainError(t *testing.T) {
	err := errors.New("plain error")

	if Is(err, "invalid_credentials") {
		t.Fatalf("should not match non-domain error")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(ErrEmailAlreadyExists()) != KindConflict {
		t.Fatalf("expected conflict kind")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatalf("non-domain errors should map to internal")
	}
}

func TestValidationErrors(t *testing.T) {
	err := ErrInvalidField("email", "bad format")
	if err.Kind != KindValidation || err.Code != "invalid_field" {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestAuthErrors(t *testing.T) {
	err := ErrTokenMissing()
	if err.Kind != KindAuth || err.Code != "token_missing" {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestTokenExpired_DistinctFromInvalid(t *testing.T) {
	if ErrTokenExpired().Code == ErrTokenInvalid().Code {
		t.Fatalf("expired and invalid must be distinct failure kinds")
	}
}

func TestInsufficientRole_ListsAcceptableRoles(t *testing.T) {
	err := ErrInsufficientRole([]string{"teacher", "admin"})

	if err.Kind != KindForbidden {
		t.Fatalf("expected forbidden kind, got %s", err.Kind)
	}
	if !strings.Contains(err.Message, "teacher, admin") {
		t.Fatalf("message should list acceptable roles: %q", err.Message)
	}
	if err.Meta["required"] != "teacher, admin" {
		t.Fatalf("unexpected meta: %+v", err.Meta)
	}
}

func TestStoreUnavailable_IsInfrastructure(t *testing.T) {
	err := ErrStoreUnavailable(errors.New("timeout"))
	if err.Kind != KindInfrastructure {
		t.Fatalf("expected infrastructure kind, got %s", err.Kind)
	}
}
