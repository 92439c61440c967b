package auth

import (
	"errors"

	"github.com/devesh1231/user-account-service/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash of the plaintext. The salt
// is embedded in the output, so verification needs only the stored hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword validates the given cleartext password against the stored
// hash. Both a mismatch and a malformed stored hash yield
// common.ErrorUnauthorized; neither panics.
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}
