package models

import (
	"errors"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	got, err := ValidateTitle("  buy milk  ")
	if err != nil || got != "buy milk" {
		t.Fatalf("ValidateTitle = %q, %v", got, err)
	}
	for _, bad := range []string{"", "   ", "\t"} {
		if _, err := ValidateTitle(bad); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("ValidateTitle(%q) error = %v, want ErrEmptyTitle", bad, err)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"bob", "alice_2", "A1_", "abc"} {
		if err := ValidateUsername(ok); err != nil {
			t.Errorf("ValidateUsername(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"ab", "has space", "dot.name", "", "x"} {
		if err := ValidateUsername(bad); !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("ValidateUsername(%q) error = %v, want ErrInvalidUsername", bad, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.com", "first.last@sub.example.org"} {
		if err := ValidateEmail(ok); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "plain", "missing@tld", "@example.com"} {
		if err := ValidateEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("ValidateEmail(%q) error = %v, want ErrInvalidEmail", bad, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("password123"); err != nil {
		t.Fatalf("ValidatePassword = %v", err)
	}
	if err := ValidatePassword("short"); !errors.Is(err, ErrShortPassword) {
		t.Fatalf("short password error = %v, want ErrShortPassword", err)
	}
}
