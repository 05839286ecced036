package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"todoapp/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, -time.Minute)
	token, err := issuer.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, models.ErrTokenExpired) {
		t.Fatalf("Verify error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Minute)
	token, _ := issuer.Issue("user-1", "alice")

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Verify(tampered); !errors.Is(err, models.ErrTokenInvalid) {
		t.Fatalf("Verify error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Minute)
	other, _ := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Minute)

	token, _ := issuer.Issue("user-1", "alice")
	if _, err := other.Verify(token); !errors.Is(err, models.ErrTokenInvalid) {
		t.Fatalf("Verify error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Minute)
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(bad); !errors.Is(err, models.ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", bad, err)
		}
	}
}

func TestTTLDefaultOnlyForZero(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, 0)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if issuer.TTL() != DefaultTTL {
		t.Fatalf("TTL() = %v, want %v for zero ttl", issuer.TTL(), DefaultTTL)
	}

	issuer, err = NewTokenIssuer(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if issuer.TTL() != -time.Minute {
		t.Fatalf("TTL() = %v, want -1m to be kept", issuer.TTL())
	}
}

func TestNewTokenIssuerRejectsShortSecret(t *testing.T) {
	if _, err := NewTokenIssuer("short", time.Minute); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("hunter2hunter2", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestDeriveUsernameSuffixes(t *testing.T) {
	used := map[string]bool{"bob": true, "bob1": true}
	taken := func(name string) (bool, error) { return used[name], nil }

	name, err := DeriveUsername("bob@example.com", taken)
	if err != nil {
		t.Fatalf("DeriveUsername: %v", err)
	}
	if name != "bob2" {
		t.Fatalf("name = %q, want bob2", name)
	}
}

func TestDeriveUsernameStripsInvalidChars(t *testing.T) {
	taken := func(string) (bool, error) { return false, nil }
	name, err := DeriveUsername("j.o-e+x@example.com", taken)
	if err != nil {
		t.Fatalf("DeriveUsername: %v", err)
	}
	if strings.ContainsAny(name, ".-+@") {
		t.Fatalf("name %q contains invalid characters", name)
	}
}

func TestDeriveUsernameBounded(t *testing.T) {
	calls := 0
	taken := func(string) (bool, error) {
		calls++
		return true, nil
	}

	name, err := DeriveUsername("bob@example.com", taken)
	if err != nil {
		t.Fatalf("DeriveUsername: %v", err)
	}
	if calls > 50 {
		t.Fatalf("probe loop not bounded: %d calls", calls)
	}
	if !strings.HasPrefix(name, "bob") || name == "bob" {
		t.Fatalf("fallback name = %q", name)
	}
}
