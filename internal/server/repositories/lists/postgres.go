package lists

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query := `INSERT INTO lists (user_id, name, emoji) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, list.UserID, list.Name, list.Emoji).Scan(&list.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.List, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, emoji FROM lists WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.List{}
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Emoji); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Owned(ctx context.Context, userID, id string) (bool, error) {
	var ok bool
	query := `SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}
