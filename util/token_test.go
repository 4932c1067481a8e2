package util

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret-123")

	token, err := IssueSessionToken(time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if err := ParseSessionToken(token); err != nil {
		t.Fatalf("parse token: %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	SetJWTSecret("test-secret-123")

	token, err := IssueSessionToken(-time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if err := ParseSessionToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret-123")
	token, err := IssueSessionToken(time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	SetJWTSecret("another-secret")
	defer SetJWTSecret("test-secret-123")
	if err := ParseSessionToken(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret-123")
	if err := ParseSessionToken("not-a-jwt"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
