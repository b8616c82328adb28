// Package cryptox implements the optional password hashing mode. Records are
// stored as "argon2id$<salt hex>$<verifier hex>", where the verifier is the
// SHA-256 of the argon2id key derived from the password and salt.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashPrefix = "argon2id$"
	saltSize   = 16
)

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns the SHA-256 digest of key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// IsHashed reports whether record was produced by HashPassword.
func IsHashed(record string) bool {
	return strings.HasPrefix(record, hashPrefix)
}

// HashPassword derives a fresh salted record for password.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	return hashPrefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(MakeVerifier(key))
}

// VerifyPassword checks password against a record. Plaintext records are
// compared directly so stores written without hashing keep working. A record
// that carries the hash prefix but does not parse as a hash is plaintext too.
func VerifyPassword(record string, password []byte) bool {
	salt, saved, ok := parseRecord(record)
	if !ok {
		return subtle.ConstantTimeCompare([]byte(record), password) == 1
	}

	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	return subtle.ConstantTimeCompare(saved, MakeVerifier(key)) == 1
}

// parseRecord splits a record written by HashPassword into salt and
// verifier. ok is false for anything HashPassword could not have produced.
func parseRecord(record string) (salt, verifier []byte, ok bool) {
	if !IsHashed(record) {
		return nil, nil, false
	}
	saltHex, verifierHex, found := strings.Cut(strings.TrimPrefix(record, hashPrefix), "$")
	if !found {
		return nil, nil, false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) != saltSize {
		return nil, nil, false
	}
	verifier, err = hex.DecodeString(verifierHex)
	if err != nil || len(verifier) != sha256.Size {
		return nil, nil, false
	}
	return salt, verifier, true
}
