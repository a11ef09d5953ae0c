package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. The hex-encoded salt string itself is the KDF salt
// input.
const (
	saltBytes  = 16
	iterations = 1000
	keyLength  = 64
)

// SetPassword derives a fresh salt and hash for plain. Both return values are
// hex encoded.
func SetPassword(plain string) (salt, hash string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generating salt: %w", err)
	}

	salt = hex.EncodeToString(raw)
	hash = deriveHash(plain, salt)
	return salt, hash, nil
}

// VerifyPassword reports whether plain derives to hash under salt. The
// comparison is constant time.
func VerifyPassword(plain, salt, hash string) bool {
	derived := deriveHash(plain, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}

func deriveHash(plain, salt string) string {
	key := pbkdf2.Key([]byte(plain), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}
