package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("longenough1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "longenough1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !VerifyPassword("longenough1", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
}

func TestHashPassword_SaltedOutputDiffers(t *testing.T) {
	first, err := HashPassword("longenough1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("longenough1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("expected different hashes for the same input")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if VerifyPassword("battery-staple", hash) {
		t.Fatalf("expected mismatch to verify false")
	}
	if VerifyPassword("correct-horse", "not-a-bcrypt-hash") {
		t.Fatalf("expected garbage hash to verify false, not panic or error")
	}
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("longenough1", 99)
	if err != nil {
		t.Fatalf("hash password with out-of-range cost: %v", err)
	}
	if !VerifyPassword("longenough1", hash) {
		t.Fatalf("expected fallback-cost hash to verify")
	}
}
