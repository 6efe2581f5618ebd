package util

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"not found", NewNotFound("user", map[string]any{"id": int64(1)}), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("user", map[string]any{"email": "a@b.com"}), CodeConflict, http.StatusConflict},
		{"invalid credentials", NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", NewInvalidToken(), CodeInvalidToken, http.StatusUnauthorized},
		{"expired token", NewExpiredToken(), CodeTokenExpired, http.StatusUnauthorized},
		{"persistence failure", NewPersistenceFailure(errors.New("conn refused")), CodePersistenceFailure, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		if domainErr.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.code, domainErr.Code)
		}
		if domainErr.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, domainErr.HTTPStatus)
		}
	}
}

func TestPersistenceFailureHidesCause(t *testing.T) {
	cause := errors.New("pq: relation users does not exist")
	err := NewPersistenceFailure(cause)

	domainErr := ToDomainError(err)
	if domainErr.Message != "unexpected persistence failure" {
		t.Fatalf("expected stable message, got %q", domainErr.Message)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to stay reachable for logging")
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsNotFound(NewNotFound("user", nil)) {
		t.Fatalf("IsNotFound failed")
	}
	if !IsConflict(NewConflict("user", nil)) {
		t.Fatalf("IsConflict failed")
	}
	if !IsInvalidCredentials(NewInvalidCredentials()) {
		t.Fatalf("IsInvalidCredentials failed")
	}
	if !IsExpiredToken(NewExpiredToken()) {
		t.Fatalf("IsExpiredToken failed")
	}
	if IsInvalidToken(NewExpiredToken()) {
		t.Fatalf("expired must not satisfy the invalid-token predicate")
	}
	if IsNotFound(errors.New("plain")) {
		t.Fatalf("plain errors must not satisfy predicates")
	}
}

func TestToDomainError_WrapsUnknown(t *testing.T) {
	plain := errors.New("boom")
	domainErr := ToDomainError(plain)
	if domainErr.Code != CodeInternalError || domainErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", domainErr)
	}
	if ToDomainError(nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}
