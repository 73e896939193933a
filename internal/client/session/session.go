// Package session turns a credentials login against the API into a signed
// session cookie and the session view handed to callers.
//
// The flow is split into pure steps: EnrichToken folds a freshly
// authenticated user (and the account it came through) into the durable
// Token, and ProjectSession copies the Token into the visible Session.
package session

import (
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type Credentials struct {
	Email    string
	Password string
}

// User is the authenticated identity together with the API tokens.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

type AccountType string

const (
	AccountCredentials AccountType = "credentials"
	AccountOAuth       AccountType = "oauth"
)

// Account describes how the user signed in. OAuth accounts bring their
// own access token.
type Account struct {
	Provider    string
	Type        AccountType
	AccessToken string
}

// Token is the durable content of the session cookie.
type Token struct {
	ID           string
	Email        string
	Name         string
	AccessToken  string
	RefreshToken string
	Role         string
	IssuedAt     time.Time
	ExpiresAt    time.Time

	// AccessExpiresAt is the exp claim of AccessToken; zero when the API
	// token carries none.
	AccessExpiresAt time.Time
}

// Session is what callers see. Resuming extends Expires but never renews
// the API access token, so a live session can hold a dead bearer; check
// AccessExpired before calling the API.
type Session struct {
	User          User      `json:"user"`
	Expires       time.Time `json:"expires"`
	AccessExpires time.Time `json:"accessExpires,omitempty"`
}

// AccessExpired reports whether the API access token has lapsed at now.
func (s Session) AccessExpired(now time.Time) bool {
	return !s.AccessExpires.IsZero() && !now.Before(s.AccessExpires)
}

// EnrichToken returns tok updated from a sign-in. Without a user or an
// account tok is returned unchanged.
func EnrichToken(tok Token, user *User, account *Account) Token {
	if user != nil {
		tok.ID = user.ID
		tok.Email = user.Email
		tok.Name = user.Name
		tok.RefreshToken = user.RefreshToken
		tok.Role = firstNonEmpty(user.Role, tok.Role, common.DefaultRole)
		tok.AccessToken = firstNonEmpty(user.AccessToken, tok.AccessToken)
	}

	if account != nil {
		switch account.Type {
		case AccountOAuth:
			tok.AccessToken = firstNonEmpty(account.AccessToken, tok.AccessToken)
		case AccountCredentials:
			if user != nil && user.AccessToken != "" {
				tok.AccessToken = user.AccessToken
			}
		}
	}
	if user != nil || account != nil {
		tok.AccessExpiresAt = accessTokenExpiry(tok.AccessToken)
	}
	return tok
}

// accessTokenExpiry reads the exp claim of an API token without verifying
// it; the API owns that key.
func accessTokenExpiry(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	cl := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, cl); err != nil || cl.ExpiresAt == nil {
		return time.Time{}
	}
	return cl.ExpiresAt.Time
}

// ProjectSession copies the durable token into the visible session.
func ProjectSession(tok Token) Session {
	return Session{
		User: User{
			ID:           tok.ID,
			Email:        tok.Email,
			Name:         tok.Name,
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			Role:         firstNonEmpty(tok.Role, common.DefaultRole),
		},
		Expires:       tok.ExpiresAt,
		AccessExpires: tok.AccessExpiresAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
