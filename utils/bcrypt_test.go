package utils

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(hashed) == "s3cret-pass" {
		t.Fatalf("hash must not equal the plain password")
	}
	if err := ComparePassword(string(hashed), "s3cret-pass"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong-pass"); err == nil {
		t.Errorf("wrong password accepted")
	}
}

func TestComparePassword_RejectsCorruptHash(t *testing.T) {
	// A stored value that is not a bcrypt hash must never compare as valid.
	if err := ComparePassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatalf("corrupt stored hash accepted")
	}
	if err := ComparePassword("", "anything"); err == nil {
		t.Fatalf("empty stored hash accepted")
	}
}
