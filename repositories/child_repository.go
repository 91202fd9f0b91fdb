package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kidstats/kidstats-server/models"
)

var ErrChildNotFound = errors.New("child not found")

type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	GetByID(ctx context.Context, id int) (*models.Child, error)
	List(ctx context.Context) ([]*models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id int) error
	TouchLastUsed(ctx context.Context, id int, at time.Time) error
	MostRecentlyUsed(ctx context.Context) (*models.Child, error)
}

type postgresChildRepository struct {
	db *sql.DB
}

func NewPostgresChildRepository(db *sql.DB) ChildRepository {
	return &postgresChildRepository{db: db}
}

func (r *postgresChildRepository) Create(ctx context.Context, child *models.Child) error {
	query := `
		INSERT INTO children (name, date_of_birth, last_used_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		child.Name,
		child.DateOfBirth,
		child.LastUsedAt,
	).Scan(&child.ID, &child.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

func (r *postgresChildRepository) GetByID(ctx context.Context, id int) (*models.Child, error) {
	query := `
		SELECT id, name, date_of_birth, last_used_at, created_at
		FROM children
		WHERE id = $1`

	var child models.Child
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&child.ID,
		&child.Name,
		&child.DateOfBirth,
		&child.LastUsedAt,
		&child.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get child %d: %w", id, err)
	}
	return &child, nil
}

func (r *postgresChildRepository) List(ctx context.Context) ([]*models.Child, error) {
	query := `
		SELECT id, name, date_of_birth, last_used_at, created_at
		FROM children
		ORDER BY last_used_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		var child models.Child
		if err := rows.Scan(
			&child.ID,
			&child.Name,
			&child.DateOfBirth,
			&child.LastUsedAt,
			&child.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child row: %w", err)
		}
		children = append(children, &child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child rows: %w", err)
	}
	return children, nil
}

func (r *postgresChildRepository) Update(ctx context.Context, child *models.Child) error {
	query := `
		UPDATE children
		SET name = $1, date_of_birth = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, child.Name, child.DateOfBirth, child.ID)
	if err != nil {
		return fmt.Errorf("failed to update child %d: %w", child.ID, err)
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

func (r *postgresChildRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete child %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

func (r *postgresChildRepository) TouchLastUsed(ctx context.Context, id int, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE children SET last_used_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch last_used_at for child %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

// MostRecentlyUsed returns the default child: the one most recently active.
func (r *postgresChildRepository) MostRecentlyUsed(ctx context.Context) (*models.Child, error) {
	query := `
		SELECT id, name, date_of_birth, last_used_at, created_at
		FROM children
		ORDER BY last_used_at DESC
		LIMIT 1`

	var child models.Child
	err := r.db.QueryRowContext(ctx, query).Scan(
		&child.ID,
		&child.Name,
		&child.DateOfBirth,
		&child.LastUsedAt,
		&child.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get most recently used child: %w", err)
	}
	return &child, nil
}
