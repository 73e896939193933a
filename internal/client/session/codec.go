package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	keySize = 32
	keyInfo = "taskctl session signing key"
)

var ErrSecretMissing = errors.New("session secret is empty")

type claims struct {
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Role         string `json:"role,omitempty"`

	// AccessExpiresAt mirrors the API token's exp.
	AccessExpiresAt *jwt.NumericDate `json:"accessExp,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens as HS256 JWTs. The key is
// derived from the secret with HKDF-SHA256, salted with the cookie name.
type Codec struct {
	key []byte
	now func() time.Time
}

func NewCodec(secret, salt string) (*Codec, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &Codec{key: key, now: time.Now}, nil
}

// WithClock replaces the time source used to check expiry.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) Encode(tok Token) (string, error) {
	cl := claims{
		Email:        tok.Email,
		Name:         tok.Name,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Role:         tok.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tok.ID,
			IssuedAt:  jwt.NewNumericDate(tok.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(tok.ExpiresAt),
		},
	}
	if !tok.AccessExpiresAt.IsZero() {
		cl.AccessExpiresAt = jwt.NewNumericDate(tok.AccessExpiresAt)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return s, nil
}

// Decode verifies signature and expiry. Any failure matches
// common.ErrorUnauthorized.
func (c *Codec) Decode(value string) (Token, error) {
	cl := &claims{}
	_, err := jwt.ParseWithClaims(value, cl,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	tok := Token{
		ID:           cl.Subject,
		Email:        cl.Email,
		Name:         cl.Name,
		AccessToken:  cl.AccessToken,
		RefreshToken: cl.RefreshToken,
		Role:         cl.Role,
		ExpiresAt:    cl.ExpiresAt.Time,
	}
	if cl.IssuedAt != nil {
		tok.IssuedAt = cl.IssuedAt.Time
	}
	if cl.AccessExpiresAt != nil {
		tok.AccessExpiresAt = cl.AccessExpiresAt.Time
	}
	return tok, nil
}
