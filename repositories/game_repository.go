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
	ErrGameNotFound     = errors.New("game not found")
	ErrGameTeamInvalid  = errors.New("game team conflict or invalid")
	ErrGameChildInvalid = errors.New("game focus child conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Game, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	UpdateOpponentScore(ctx context.Context, id int, score int) error
	MarkComplete(ctx context.Context, id int) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, team_id, focus_child_id, opponent_name, opponent_score, game_date, complete, location, notes, created_at`

func scanGame(row interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID,
		&game.TeamID,
		&game.FocusChildID,
		&game.OpponentName,
		&game.OpponentScore,
		&game.GameDate,
		&game.Complete,
		&game.Location,
		&game.Notes,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (team_id, focus_child_id, opponent_name, opponent_score, game_date, complete, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		game.TeamID,
		game.FocusChildID,
		game.OpponentName,
		game.OpponentScore,
		game.GameDate,
		game.Complete,
		game.Location,
		game.Notes,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "games_team_id_fkey":
				return ErrGameTeamInvalid
			case "games_focus_child_id_fkey":
				return ErrGameChildInvalid
			}
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

func (r *postgresGameRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE team_id = $1 ORDER BY game_date DESC`
	return r.list(ctx, query, teamID)
}

// ListByIDs fetches the given games in one round trip. Used by the career
// aggregation to resolve every game referenced by a child's event history.
func (r *postgresGameRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *postgresGameRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game rows: %w", err)
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET opponent_name = $1, game_date = $2, location = $3, notes = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		game.OpponentName,
		game.GameDate,
		game.Location,
		game.Notes,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game %d: %w", game.ID, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateOpponentScore(ctx context.Context, id int, score int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE games SET opponent_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("failed to update opponent score for game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

// MarkComplete is a one-way transition; a completed game stays completed.
func (r *postgresGameRepository) MarkComplete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE games SET complete = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark game %d complete: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}
