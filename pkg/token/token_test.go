package token

import (
	"errors"
	"testing"
	"time"

	"socialgraph/backend/internal/config"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func TestIssueAndVerify(t *testing.T) {
	tok, err := Issue(42, time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	tok, err := Issue(1, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := Verify(tok); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify() error = %v, want ErrExpired", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	old := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: "other-secret"}
	tok, err := Issue(1, time.Minute)
	config.AppConfig = old
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := Verify(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := Verify(tok); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformed", tok, err)
		}
	}
}
