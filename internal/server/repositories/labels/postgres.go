package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, label *models.Label) (*models.Label, error) {
	query := `INSERT INTO labels (user_id, name, color) VALUES ($1, $2, $3) RETURNING id`

	var color sql.NullString
	if label.Color != nil {
		color = sql.NullString{String: *label.Color, Valid: true}
	}
	if err := r.db.QueryRowContext(ctx, query, label.UserID, label.Name, color).Scan(&label.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return label, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, name, color FROM labels WHERE id = $1`, id)
	label, err := scanLabel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return label, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, color FROM labels WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLabel(s scanner) (*models.Label, error) {
	var (
		l     models.Label
		color sql.NullString
	)
	if err := s.Scan(&l.ID, &l.UserID, &l.Name, &color); err != nil {
		return nil, err
	}
	if color.Valid {
		l.Color = &color.String
	}
	return &l, nil
}
