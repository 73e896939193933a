package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/client/client"
	"github.com/dmitrijs2005/taskhub/internal/common"
)

const (
	CookieName       = "authjs.session-token"
	SecureCookieName = "__Secure-" + CookieName

	DefaultMaxAge    = 30 * 24 * time.Hour
	DefaultUpdateAge = 24 * time.Hour
)

// ErrInvalidCredentials is the single answer for every rejected login.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", common.ErrorUnauthorized)

// Authenticator is the part of the API client the bridge needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
}

type Options struct {
	Secret    string
	MaxAge    time.Duration
	UpdateAge time.Duration
	Secure    bool
}

// Bridge holds no per-login state; concurrent sign-ins are independent.
type Bridge struct {
	api       Authenticator
	codec     *Codec
	maxAge    time.Duration
	updateAge time.Duration
	secure    bool
	now       func() time.Time
}

func NewBridge(api Authenticator, opts Options) (*Bridge, error) {
	b := &Bridge{
		api:       api,
		maxAge:    opts.MaxAge,
		updateAge: opts.UpdateAge,
		secure:    opts.Secure,
		now:       time.Now,
	}
	if b.maxAge <= 0 {
		b.maxAge = DefaultMaxAge
	}
	if b.updateAge <= 0 {
		b.updateAge = DefaultUpdateAge
	}

	codec, err := NewCodec(opts.Secret, b.cookieName())
	if err != nil {
		return nil, err
	}
	b.codec = codec
	return b, nil
}

// WithClock replaces the time source; used by tests.
func (b *Bridge) WithClock(now func() time.Time) *Bridge {
	b.now = now
	b.codec.WithClock(now)
	return b
}

// Authorize checks credentials against the API.
func (b *Bridge) Authorize(ctx context.Context, creds Credentials) (*User, error) {
	email := strings.TrimSpace(creds.Email)
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}

	resp, err := b.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUpstream):
			return nil, err
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &User{
		ID:           resp.ID,
		Email:        resp.Email,
		Name:         resp.Name,
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		Role:         firstNonEmpty(resp.Role, common.DefaultRole),
	}, nil
}

// SignIn authorizes creds and returns the session with its cookie value.
func (b *Bridge) SignIn(ctx context.Context, creds Credentials) (Session, string, error) {
	user, err := b.Authorize(ctx, creds)
	if err != nil {
		return Session{}, "", err
	}

	account := &Account{Provider: string(AccountCredentials), Type: AccountCredentials}
	tok := b.stamp(EnrichToken(Token{}, user, account))

	value, err := b.codec.Encode(tok)
	if err != nil {
		return Session{}, "", err
	}
	return ProjectSession(tok), value, nil
}

// Resume decodes a cookie value. Tokens older than the update age are
// re-issued; the returned value is the one to store. The API access token
// is carried as is, so callers check Session.AccessExpired and sign in
// again once it reports true.
func (b *Bridge) Resume(value string) (Session, string, error) {
	tok, err := b.codec.Decode(value)
	if err != nil {
		return Session{}, "", err
	}
	tok = EnrichToken(tok, nil, nil)

	if b.now().Sub(tok.IssuedAt) >= b.updateAge {
		tok = b.stamp(tok)
		if value, err = b.codec.Encode(tok); err != nil {
			return Session{}, "", err
		}
	}
	return ProjectSession(tok), value, nil
}

// Cookie wraps a session value in the cookie the bridge owns.
func (b *Bridge) Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     b.cookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   int(b.maxAge / time.Second),
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (b *Bridge) cookieName() string {
	if b.secure {
		return SecureCookieName
	}
	return CookieName
}

func (b *Bridge) stamp(tok Token) Token {
	now := b.now()
	tok.IssuedAt = now
	tok.ExpiresAt = now.Add(b.maxAge)
	return tok
}
