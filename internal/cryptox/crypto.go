// Package cryptox holds the password hashing primitives used by the account
// service and the admin bootstrap tool. Hashes are bcrypt with a per-hash
// random salt; comparison is constant time.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for newly created hashes.
const PasswordCost = 12

// ErrPasswordMismatch is returned by VerifyPassword when the candidate does
// not match the stored hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword returns the bcrypt hash of password at PasswordCost.
func HashPassword(password string) (string, error) {
	return hashPasswordWithCost(password, PasswordCost)
}

func hashPasswordWithCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks candidate against a stored bcrypt hash. It returns
// nil on a match, ErrPasswordMismatch on a wrong password, and a wrapped
// error when the stored hash itself is unusable.
func VerifyPassword(hash, candidate string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("verify password: %w", err)
}

// dummyHash is compared against when an account does not exist, so a login
// for an unknown email costs the same as one with a wrong password.
var dummyHash = mustHash("labsite-timing-equalizer")

func mustHash(s string) string {
	h, err := hashPasswordWithCost(s, PasswordCost)
	if err != nil {
		panic(err)
	}
	return h
}

// BurnVerify performs a throwaway comparison and always returns
// ErrPasswordMismatch.
func BurnVerify(candidate string) error {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(candidate))
	return ErrPasswordMismatch
}
