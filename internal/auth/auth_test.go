package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sekret99")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.Contains(hash, "$") {
		t.Fatalf("expected salt$digest format, got %q", hash)
	}
	if strings.Contains(hash, "Sekret99") {
		t.Error("hash must not contain the raw password")
	}

	if !VerifyPassword("Sekret99", hash) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("Sekret98", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("Sekret99")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("Sekret99")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should use different salts")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-valid-hash") {
		t.Error("malformed stored hash must never verify")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"Sekret99", false},
		{"short1A", true},      // too short
		{"alllowercase1", true}, // no uppercase
		{"ALLUPPERCASE1", true}, // no lowercase
		{"NoDigitsHere", true},  // no digit
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.wantErr && err == nil {
			t.Errorf("expected error for password %q", tc.password)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("unexpected error for password %q: %v", tc.password, err)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("demo"); err != nil {
		t.Errorf("unexpected error for valid username: %v", err)
	}
	if err := ValidateUsername(""); err == nil {
		t.Error("expected error for empty username")
	}
	if err := ValidateUsername(" padded "); err == nil {
		t.Error("expected error for padded username")
	}
}
