package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used for new digests.
const PasswordCost = 10

// HashPassword produces a salted one-way digest of the plaintext. The salt
// is generated per call by bcrypt itself.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// A malformed digest counts as a non-match rather than an error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
