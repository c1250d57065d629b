// Package auth normalizes spoken credentials and wraps bcrypt.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var numberWords = map[string]string{
	"zero":  "0",
	"one":   "1",
	"two":   "2",
	"three": "3",
	"four":  "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
}

// NormalizeSpoken canonicalizes a password as heard from speech: lower-case,
// map each whitespace token through the number-word table ("two two three
// three" -> "2233"), then join with all whitespace stripped.
func NormalizeSpoken(password string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(password)))
	var b strings.Builder
	for _, tok := range tokens {
		if d, ok := numberWords[tok]; ok {
			b.WriteString(d)
		} else {
			b.WriteString(tok)
		}
	}
	return b.String()
}

// HashPassword bcrypts an already-normalized password.
func HashPassword(normalized string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(normalized), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether the normalized candidate matches the stored
// hash. A malformed stored hash counts as a mismatch, never a fault.
func CheckPassword(normalized, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalized)) == nil
}

// NormalizeEmail applies the identity-key rule: trim and lower-case before
// any lookup, insert, or comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
