package middleware

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// is returned when the presented access key doesn't match.
var ErrInvalidAccessKey = errors.New("invalid access key")

// uses bcrypt to hash a plaintext access key.
func HashAccessKey(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the plaintext access key.
func CheckAccessKey(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}
