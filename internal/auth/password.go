// Package auth holds the credential digest used by the account store.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// staticSalt is shared by every account. Existing databases store digests
// made with it, so changing it invalidates all passwords.
const staticSalt = "planner_salt_v1"

// HashPassword returns the hex SHA-256 digest of password+salt.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + staticSalt))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(hash, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(password))) == 1
}
