package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
)

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// ValidatePassword rejects passwords bcrypt cannot hash
func ValidatePassword(password string) error {
	if len(password) > MaxPasswordBytes {
		return apperrors.Validation("Password must be at most 72 bytes")
	}
	return nil
}

// HashPassword hashes with bcrypt at the given cost (salt is generated per hash)
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
