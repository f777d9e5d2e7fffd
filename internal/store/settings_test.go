package store

import (
	"testing"

	"github.com/mlakar/inventar/internal/document"
)

func TestJWTSecretGeneratesAndPersists(t *testing.T) {
	docs := document.NewTestStore(t)

	// First call should generate a secret.
	secret1, err := JWTSecret(docs)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 == "" {
		t.Fatal("expected non-empty secret")
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := JWTSecret(docs)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestAdminTokenGeneratesAndPersists(t *testing.T) {
	docs := document.NewTestStore(t)

	token1, err := AdminToken(docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(token1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token1))
	}

	token2, err := AdminToken(docs)
	if err != nil {
		t.Fatal(err)
	}
	if token1 != token2 {
		t.Fatalf("expected same token, got %q and %q", token1, token2)
	}

	// The token and the signing secret are independent values.
	secret, err := JWTSecret(docs)
	if err != nil {
		t.Fatal(err)
	}
	if secret == token1 {
		t.Fatal("expected jwt secret and admin token to differ")
	}
}
