// Package security hashes and verifies user passwords with argon2id.
package security

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var ErrEmptyPassword = errors.New("password must not be empty")

var hashConfig = argon2.DefaultConfig()

// HashPassword returns the PHC encoded argon2id hash of password.
// A fresh random salt is drawn on every call.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	encoded, err := hashConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// A mismatch is (false, nil); an error means the stored hash could not be decoded.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
