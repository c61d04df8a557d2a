package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal the plaintext")
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != PasswordCost {
		t.Fatalf("cost = %d, want %d", cost, PasswordCost)
	}

	ok, err := h.Verify("s3cret", hash)
	if err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	h := NewHasher()

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher()

	ok, err := h.Verify("anything", "not-a-bcrypt-hash")
	if ok {
		t.Fatalf("malformed hash must never verify")
	}
	if !errors.Is(err, ErrMalformedHash) {
		t.Fatalf("err = %v, want ErrMalformedHash", err)
	}
}

func TestHasher_HashRejectsOverlongPassword(t *testing.T) {
	h := NewHasher()

	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatalf("expected error for password longer than 72 bytes")
	}
}
