// Package refreshtokens stores the refresh tokens handed out at login so
// they can be redeemed and rotated.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type Repository interface {
	// Create stores token for userID until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Consume deletes token and returns the removed row, or
	// common.ErrorNotFound when no row matched. At most one caller can
	// consume a given token.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteExpired removes every token that expired before t and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, t time.Time) (int64, error)
}
