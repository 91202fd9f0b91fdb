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
	ErrStatEventNotFound      = errors.New("stat event not found")
	ErrStatEventGameInvalid   = errors.New("stat event game conflict or invalid")
	ErrStatEventPlayerInvalid = errors.New("stat event player conflict or invalid")
)

// StatEventRepository is the append-only ledger. Rows are created once,
// soft-deleted at most once, and never physically removed, so every
// aggregate can be rebuilt and audited from the full history.
type StatEventRepository interface {
	Create(ctx context.Context, event *models.StatEvent) error
	// SoftDelete flags an event as logically deleted. Deleting an already
	// deleted or missing event is a no-op.
	SoftDelete(ctx context.Context, id int) error
	// Aggregation reads: soft-deleted events are excluded.
	ListByGame(ctx context.Context, gameID int) ([]*models.StatEvent, error)
	ListByGameAndPlayer(ctx context.Context, gameID, playerID int) ([]*models.StatEvent, error)
	ListByPlayerIDs(ctx context.Context, playerIDs []int) ([]*models.StatEvent, error)
	// Audit read: includes soft-deleted events.
	ListByGameAudit(ctx context.Context, gameID int) ([]*models.StatEvent, error)
	// GameScore sums the value of every non-deleted event in the game. The
	// team score is always derived this way, never cached on the game row,
	// so a soft delete retroactively corrects it.
	GameScore(ctx context.Context, gameID int) (int, error)
	// GameScores is the batch form of GameScore, one round trip for the
	// career aggregation's win/loss pass.
	GameScores(ctx context.Context, gameIDs []int) (map[int]int, error)
}

type postgresStatEventRepository struct {
	db *sql.DB
}

func NewPostgresStatEventRepository(db *sql.DB) StatEventRepository {
	return &postgresStatEventRepository{db: db}
}

const statEventColumns = `id, game_id, player_id, stat_type, value, timestamp, soft_deleted, created_at`

func scanStatEvent(row interface{ Scan(...interface{}) error }) (*models.StatEvent, error) {
	var event models.StatEvent
	err := row.Scan(
		&event.ID,
		&event.GameID,
		&event.PlayerID,
		&event.StatType,
		&event.Value,
		&event.Timestamp,
		&event.SoftDeleted,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *postgresStatEventRepository) Create(ctx context.Context, event *models.StatEvent) error {
	query := `
		INSERT INTO stat_events (game_id, player_id, stat_type, value, timestamp, soft_deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.GameID,
		event.PlayerID,
		event.StatType,
		event.Value,
		event.Timestamp,
		event.SoftDeleted,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "stat_events_game_id_fkey":
				return ErrStatEventGameInvalid
			case "stat_events_player_id_fkey":
				return ErrStatEventPlayerInvalid
			}
		}
		return fmt.Errorf("failed to create stat event: %w", err)
	}
	return nil
}

func (r *postgresStatEventRepository) SoftDelete(ctx context.Context, id int) error {
	// Idempotent: zero affected rows means the event does not exist or is
	// already deleted, and both are fine.
	_, err := r.db.ExecContext(ctx,
		`UPDATE stat_events SET soft_deleted = TRUE WHERE id = $1 AND soft_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete stat event %d: %w", id, err)
	}
	return nil
}

func (r *postgresStatEventRepository) ListByGame(ctx context.Context, gameID int) ([]*models.StatEvent, error) {
	query := `
		SELECT ` + statEventColumns + `
		FROM stat_events
		WHERE game_id = $1 AND soft_deleted = FALSE
		ORDER BY timestamp, id`
	return r.list(ctx, query, gameID)
}

func (r *postgresStatEventRepository) ListByGameAndPlayer(ctx context.Context, gameID, playerID int) ([]*models.StatEvent, error) {
	query := `
		SELECT ` + statEventColumns + `
		FROM stat_events
		WHERE game_id = $1 AND player_id = $2 AND soft_deleted = FALSE
		ORDER BY timestamp, id`
	return r.list(ctx, query, gameID, playerID)
}

func (r *postgresStatEventRepository) ListByPlayerIDs(ctx context.Context, playerIDs []int) ([]*models.StatEvent, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + statEventColumns + `
		FROM stat_events
		WHERE player_id = ANY($1) AND soft_deleted = FALSE
		ORDER BY timestamp, id`
	return r.list(ctx, query, pq.Array(playerIDs))
}

func (r *postgresStatEventRepository) ListByGameAudit(ctx context.Context, gameID int) ([]*models.StatEvent, error) {
	query := `
		SELECT ` + statEventColumns + `
		FROM stat_events
		WHERE game_id = $1
		ORDER BY timestamp, id`
	return r.list(ctx, query, gameID)
}

func (r *postgresStatEventRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.StatEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stat events: %w", err)
	}
	defer rows.Close()

	var events []*models.StatEvent
	for rows.Next() {
		event, err := scanStatEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stat event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stat event rows: %w", err)
	}
	return events, nil
}

func (r *postgresStatEventRepository) GameScore(ctx context.Context, gameID int) (int, error) {
	var score int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM stat_events WHERE game_id = $1 AND soft_deleted = FALSE`,
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate score for game %d: %w", gameID, err)
	}
	return score, nil
}

func (r *postgresStatEventRepository) GameScores(ctx context.Context, gameIDs []int) (map[int]int, error) {
	scores := make(map[int]int, len(gameIDs))
	if len(gameIDs) == 0 {
		return scores, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT game_id, COALESCE(SUM(value), 0)
		 FROM stat_events
		 WHERE game_id = ANY($1) AND soft_deleted = FALSE
		 GROUP BY game_id`,
		pq.Array(gameIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate game scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gameID, score int
		if err := rows.Scan(&gameID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan game score row: %w", err)
		}
		scores[gameID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game score rows: %w", err)
	}
	return scores, nil
}
