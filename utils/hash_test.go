package utils

import "testing"

func TestHashPasswordProducesDistinctDigests(t *testing.T) {
	first, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("expected per-call salting to produce distinct digests")
	}
	if first == "Sup3rSecret" {
		t.Error("digest must not equal the plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword("Sup3rSecret", digest) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("WrongSecret", digest) {
		t.Error("expected mismatching password to fail")
	}
	if CheckPassword("Sup3rSecret", "not-a-bcrypt-digest") {
		t.Error("expected malformed digest to fail, not panic")
	}
}
