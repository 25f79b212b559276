package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret returns the bcrypt hash of a plain secret using the given cost.
// A non-positive cost selects bcrypt.DefaultCost.
func HashSecret(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// VerifySecret safely compares a bcrypt hash with a plain secret.
func VerifySecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// EqualSecrets compares two plain secrets in constant time. It backs the
// legacy plain-storage compatibility mode; new deployments store bcrypt
// hashes and use [VerifySecret] instead.
func EqualSecrets(stored, provided string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
