package auth_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/cashflow/internal/infrastructure/auth"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("StrongPass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hashed == "StrongPass1" {
		t.Fatal("expected password to be hashed")
	}

	if err := hasher.Compare(hashed, "StrongPass1"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := hasher.Compare(hashed, "WrongPass1"); err == nil {
		t.Fatal("expected mismatch")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	hashed, err := auth.NewBcryptHasher(0).Hash("StrongPass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}

	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", cost)
	}
}
