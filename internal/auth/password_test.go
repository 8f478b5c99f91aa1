package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Requirement: verify-after-hash always succeeds, a wrong password never
// does, and two hashes of the same input differ (random salt per call).
func TestPasswordRoundTrip(t *testing.T) {
	passwords := []string{"secret123", "pw123456", "correct horse battery staple"}

	for _, password := range passwords {
		hashed, err := HashPassword(password, bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", password, err)
		}

		if err := ComparePassword(hashed, password); err != nil {
			t.Errorf("ComparePassword should accept the original password: %v", err)
		}
		if err := ComparePassword(hashed, password+"x"); err == nil {
			t.Error("ComparePassword should reject a wrong password")
		}

		again, err := HashPassword(password, bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword(%q) second call error: %v", password, err)
		}
		if hashed == again {
			t.Error("two hashes of the same password should differ")
		}
	}
}

// Requirement: a malformed or empty stored hash fails the comparison, it
// never panics.
func TestComparePasswordMalformedHash(t *testing.T) {
	for _, hashed := range []string{"", "not-a-bcrypt-hash", "$2a$xx"} {
		if err := ComparePassword(hashed, "whatever"); err == nil {
			t.Errorf("ComparePassword(%q) should fail", hashed)
		}
	}
}
