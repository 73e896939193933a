package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretKeyLength is the shortest signing key NewIssuer accepts.
const MinSecretKeyLength = 32

// Claims carried by an access token. Subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Issuer mints and verifies HS512 access tokens and opaque refresh tokens.
type Issuer struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
	now             func() time.Time
}

// NewIssuer refuses to build an Issuer without a usable signing key.
func NewIssuer(secret []byte, accessValidity, refreshValidity time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, common.ErrSigningKeyMissing
	}
	if len(secret) < MinSecretKeyLength {
		return nil, common.ErrSigningKeyTooShort
	}
	return &Issuer{
		secret:          secret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
		now:             time.Now,
	}, nil
}

// WithClock replaces the time source; used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Now reads the issuer's clock.
func (i *Issuer) Now() time.Time { return i.now() }

// AccessValidity is the lifetime of tokens from CreateAccessToken.
func (i *Issuer) AccessValidity() time.Duration { return i.accessValidity }

// CreateAccessToken signs {sub, email, name, role} with an expiry of
// now+accessValidity.
func (i *Issuer) CreateAccessToken(user *models.User) (string, error) {
	now := i.now()
	role := user.Role
	if role == "" {
		role = common.DefaultRole
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessValidity)),
		},
		Email: user.Email,
		Name:  user.Name,
		Role:  role,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken checks signature and expiry only. Expired tokens yield
// common.ErrTokenExpired; everything else wraps common.ErrInvalidToken.
func (i *Issuer) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
