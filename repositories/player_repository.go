package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kidstats/kidstats-server/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerConflict     = errors.New("player conflict: child already on this team")
	ErrPlayerChildInvalid = errors.New("player child conflict or invalid")
	ErrPlayerTeamInvalid  = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByChild(ctx context.Context, childID int) ([]*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (child_id, team_id, jersey_number, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ChildID,
		player.TeamID,
		player.JerseyNumber,
		player.Position,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "players_child_id_team_id_key" {
					return ErrPlayerConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "players_child_id_fkey":
					return ErrPlayerChildInvalid
				case "players_team_id_fkey":
					return ErrPlayerTeamInvalid
				}
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, child_id, team_id, jersey_number, position, created_at
		FROM players
		WHERE id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.ChildID,
		&player.TeamID,
		&player.JerseyNumber,
		&player.Position,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return &player, nil
}

func (r *postgresPlayerRepository) ListByChild(ctx context.Context, childID int) ([]*models.Player, error) {
	query := `
		SELECT id, child_id, team_id, jersey_number, position, created_at
		FROM players
		WHERE child_id = $1
		ORDER BY created_at`

	return r.list(ctx, query, childID)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT id, child_id, team_id, jersey_number, position, created_at
		FROM players
		WHERE team_id = $1
		ORDER BY jersey_number NULLS LAST, id`

	return r.list(ctx, query, teamID)
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var player models.Player
		if err := rows.Scan(
			&player.ID,
			&player.ChildID,
			&player.TeamID,
			&player.JerseyNumber,
			&player.Position,
			&player.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET jersey_number = $1, position = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query,
		player.JerseyNumber,
		player.Position,
		player.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
