// Package auth implements password hashing and the bearer/refresh tokens
// issued by the login endpoint.
package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

// SaltSize matches the HMAC-SHA512 block size.
const SaltSize = 128

// HashPassword derives an HMAC-SHA512 digest of password keyed by a fresh
// random salt.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt, err = common.GenerateRandByteArray(SaltSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return computeHash(password, salt), salt, nil
}

// VerifyPassword recomputes the digest with salt and compares it in
// constant time. Missing hash or salt never verifies.
func VerifyPassword(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	return hmac.Equal(computeHash(password, salt), hash)
}

func computeHash(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
