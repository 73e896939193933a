package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

// RefreshTokenSize is the number of random bytes behind a refresh token.
const RefreshTokenSize = 64

// RefreshToken is an opaque, url-safe credential redeemable for a new
// access token until ExpiresAt.
type RefreshToken struct {
	Token     string
	ExpiresAt time.Time
}

// GenerateRefreshToken returns a fresh token valid for refreshValidity.
func (i *Issuer) GenerateRefreshToken() (RefreshToken, error) {
	b, err := common.GenerateRandByteArray(RefreshTokenSize)
	if err != nil {
		return RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}
	return RefreshToken{
		Token:     base64.RawURLEncoding.EncodeToString(b),
		ExpiresAt: i.now().Add(i.refreshValidity),
	}, nil
}
