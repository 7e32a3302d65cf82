package security_test

import (
	"strings"
	"testing"

	"github.com/placementtrack/api/internal/security"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("secret1")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a self-describing bcrypt hash, got %q", hash)
	}

	if !security.CheckPassword(hash, "secret1") {
		t.Error("correct password did not verify")
	}

	if security.CheckPassword(hash, "secret2") {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	h2, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if security.CheckPassword(tc.hash, "whatever") {
				t.Errorf("malformed hash %q verified", tc.hash)
			}
		})
	}
}
