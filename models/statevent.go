package models

import "time"

// StatEvent is one row of the append-only ledger. Events are never updated
// after creation except for the soft-delete flag, and never physically
// removed, so the ledger doubles as an audit trail.
type StatEvent struct {
	ID       int      `json:"id" db:"id"`
	GameID   int      `json:"game_id" db:"game_id"`
	PlayerID int      `json:"player_id" db:"player_id"`
	StatType StatType `json:"stat_type" db:"stat_type"`
	// Value is the point value at the time of recording, denormalized so a
	// later change to the point table can never rewrite history.
	Value       int       `json:"value" db:"value"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	SoftDeleted bool      `json:"soft_deleted" db:"soft_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
