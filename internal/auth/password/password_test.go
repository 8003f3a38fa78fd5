package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("expected hash to succeed, got %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("expected the password transformed")
	}
	if err := Compare(hash, "correct horse battery"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := Compare(hash, "wrong password"); err == nil {
		t.Fatalf("expected mismatch to fail")
	}
}
