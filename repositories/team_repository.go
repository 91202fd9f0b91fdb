package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kidstats/kidstats-server/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Deactivate(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, season, organization, color_tag, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Season,
		team.Organization,
		team.ColorTag,
		team.Active,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, season, organization, color_tag, active, created_at
		FROM teams
		WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Season,
		&team.Organization,
		&team.ColorTag,
		&team.Active,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, activeOnly bool) ([]*models.Team, error) {
	query := `
		SELECT id, name, season, organization, color_tag, active, created_at
		FROM teams`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Season,
			&team.Organization,
			&team.ColorTag,
			&team.Active,
			&team.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, season = $2, organization = $3, color_tag = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.Season,
		team.Organization,
		team.ColorTag,
		team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team %d: %w", team.ID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// Deactivate soft-deactivates a team. Teams are never hard-deleted because
// games and roster assignments keep referencing them.
func (r *postgresTeamRepository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
