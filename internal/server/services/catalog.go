package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/repomanager"
)

// CatalogService manages the per-user labels and lists tasks refer to.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

func (s *CatalogService) CreateLabel(ctx context.Context, ownerID string, l *models.Label) (*models.Label, error) {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	l.ID = ""
	l.UserID = ownerID

	created, err := s.repomanager.Labels(s.db).Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

func (s *CatalogService) Labels(ctx context.Context, ownerID string) ([]models.Label, error) {
	list, err := s.repomanager.Labels(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}

func (s *CatalogService) CreateList(ctx context.Context, ownerID string, l *models.List) (*models.List, error) {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	l.ID = ""
	l.UserID = ownerID

	created, err := s.repomanager.Lists(s.db).Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

func (s *CatalogService) Lists(ctx context.Context, ownerID string) ([]models.List, error) {
	list, err := s.repomanager.Lists(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}
