package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer("secret")
	if err != nil {
		t.Fatalf("NewSealer error: %v", err)
	}
	if !s.Enabled() {
		t.Fatal("expected sealer to be enabled")
	}

	sealed, err := s.Seal("wp-key-123")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if !strings.HasPrefix(sealed, sealedPrefix) {
		t.Fatalf("sealed value %q lacks prefix", sealed)
	}
	if strings.Contains(sealed, "wp-key-123") {
		t.Fatal("sealed value leaks plaintext")
	}

	plain, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if plain != "wp-key-123" {
		t.Fatalf("Open = %q, want wp-key-123", plain)
	}
}

func TestSealer_NonceIsRandom(t *testing.T) {
	s, _ := NewSealer("secret")

	a, _ := s.Seal("same")
	b, _ := s.Seal("same")
	if a == b {
		t.Fatal("expected two seals of the same value to differ")
	}
}

func TestSealer_EmptyStaysEmpty(t *testing.T) {
	s, _ := NewSealer("secret")

	sealed, err := s.Seal("")
	if err != nil || sealed != "" {
		t.Fatalf("Seal(\"\") = %q, %v", sealed, err)
	}
}

func TestSealer_PlaintextPassesThrough(t *testing.T) {
	s, _ := NewSealer("secret")

	plain, err := s.Open("legacy-key")
	if err != nil || plain != "legacy-key" {
		t.Fatalf("Open(legacy) = %q, %v", plain, err)
	}
}

func TestSealer_WrongKey(t *testing.T) {
	a, _ := NewSealer("one")
	b, _ := NewSealer("two")

	sealed, _ := a.Seal("value")
	if _, err := b.Open(sealed); !errors.Is(err, ErrMalformedSealed) {
		t.Fatalf("expected ErrMalformedSealed, got %v", err)
	}
}

func TestSealer_Malformed(t *testing.T) {
	s, _ := NewSealer("secret")

	for _, in := range []string{sealedPrefix + "%%%", sealedPrefix + "AAAA"} {
		if _, err := s.Open(in); !errors.Is(err, ErrMalformedSealed) {
			t.Errorf("Open(%q): expected ErrMalformedSealed, got %v", in, err)
		}
	}
}

func TestSealer_Disabled(t *testing.T) {
	s, err := NewSealer("")
	if err != nil {
		t.Fatalf("NewSealer error: %v", err)
	}
	if s.Enabled() {
		t.Fatal("expected disabled sealer")
	}

	sealed, _ := s.Seal("value")
	if sealed != "value" {
		t.Fatalf("disabled Seal = %q, want passthrough", sealed)
	}

	if _, err = s.Open(sealedPrefix + "AAAA"); !errors.Is(err, ErrSealerDisabled) {
		t.Fatalf("expected ErrSealerDisabled, got %v", err)
	}
}
