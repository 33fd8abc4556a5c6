package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/service"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := service.NewBcryptHasher(4)

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !h.Verify("secret", hash) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("Secret", hash) {
		t.Fatal("expected different password to fail verification")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := service.NewBcryptHasher(4)

	first, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("expected per-call salt to produce different hashes")
	}
	if !h.Verify("same", first) || !h.Verify("same", second) {
		t.Fatal("both hashes must verify")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := service.NewBcryptHasher(4)

	for _, bad := range []string{"", "not-a-hash", "$2a$04$short"} {
		if h.Verify("anything", bad) {
			t.Fatalf("Verify with malformed hash %q returned true", bad)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := service.NewBcryptHasher(4)

	_, err := h.Hash(strings.Repeat("x", 73))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
