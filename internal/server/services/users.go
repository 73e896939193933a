// Package services contains server-side business logic. UserService handles
// registration, login and refresh-token rotation; TaskService, SubtaskService
// and CatalogService own the task domain.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/auth"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken auth.RefreshToken
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	User *models.User
	TokenPair
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer) *UserService {
	return &UserService{db: db, repomanager: m, issuer: issuer}
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns it with a fresh access token.
// A duplicate address yields common.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	switch {
	case name == "":
		return nil, "", common.NewValidationError("name", "is required")
	case email == "":
		return nil, "", common.NewValidationError("email", "is required")
	case in.Password == "":
		return nil, "", common.NewValidationError("password", "is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, "", common.NewValidationError("email", "is not a valid address")
	}

	hash, salt, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         common.DefaultRole,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issuer.CreateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// Login verifies credentials and mints a token pair. An unknown address
// yields common.ErrUserNotFound, a wrong password common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, common.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, common.NewValidationError("password", "is required")
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, TokenPair: *pair}, nil
}

// RefreshToken consumes a refresh token and returns a fresh TokenPair in
// the same transaction, so a token can be redeemed at most once. Unknown or
// already redeemed tokens yield common.ErrorUnauthorized, expired ones
// common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.ExpiredAt(s.issuer.Now()) {
			return common.ErrRefreshTokenExpired
		}
		user, err := s.repomanager.Users(tx).GetUserByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error loading user: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Users(s.db).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return n, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.issuer.CreateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.issuer.GenerateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	tokens := s.repomanager.RefreshTokens(tx)
	if _, err := tokens.DeleteExpired(ctx, s.issuer.Now()); err != nil {
		return nil, common.ErrorInternal
	}
	if err := tokens.Create(ctx, user.ID, refresh.Token, refresh.ExpiresAt); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
