package token

import "testing"

func TestGenerateRandomToken_UniqueAndUnpadded(t *testing.T) {
	a, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("expected token to generate, got %v", err)
	}
	b, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("expected token to generate, got %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
	if a == "" {
		t.Fatalf("expected a non-empty token")
	}
	for _, r := range a {
		if r == '=' || r == '+' || r == '/' {
			t.Fatalf("expected a url-safe unpadded token, got %q", a)
		}
	}
}

func TestHashSHA256_IsDeterministic(t *testing.T) {
	a := HashSHA256("some-refresh-token")
	b := HashSHA256("some-refresh-token")
	if a != b {
		t.Fatalf("expected identical hashes, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected a 64-char hex digest, got %d chars", len(a))
	}
	if a == "some-refresh-token" {
		t.Fatalf("expected the token transformed")
	}
	if HashSHA256("another-token") == a {
		t.Fatalf("expected different inputs to hash differently")
	}
}
