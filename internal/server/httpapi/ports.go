// Package httpapi exposes the taskhub services over a gin REST API.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/server/auth"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/services"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	CountUsers(ctx context.Context) (int64, error)
}

type TaskService interface {
	List(ctx context.Context, f taskquery.Filter) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
	Create(ctx context.Context, ownerID string, t *models.Task) (*models.Task, error)
	Update(ctx context.Context, ownerID, id string, t *models.Task) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
	AddLabel(ctx context.Context, ownerID, taskID, labelID string) error
	RemoveLabel(ctx context.Context, ownerID, taskID, labelID string) error
}

type SubtaskService interface {
	Create(ctx context.Context, ownerID, taskID string, s *models.Subtask) (*models.Subtask, error)
	Get(ctx context.Context, ownerID, id string) (*models.Subtask, error)
	List(ctx context.Context, ownerID string) ([]models.Subtask, error)
	Update(ctx context.Context, ownerID, id string, s *models.Subtask) error
	Delete(ctx context.Context, ownerID, id string) error
}

type CatalogService interface {
	CreateLabel(ctx context.Context, ownerID string, l *models.Label) (*models.Label, error)
	Labels(ctx context.Context, ownerID string) ([]models.Label, error)
	CreateList(ctx context.Context, ownerID string, l *models.List) (*models.List, error)
	Lists(ctx context.Context, ownerID string) ([]models.List, error)
}

// TokenParser verifies bearer tokens; *auth.Issuer satisfies it.
type TokenParser interface {
	ParseAccessToken(token string) (*auth.Claims, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}
