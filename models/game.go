package models

import "time"

// GameResult is derived from the calculated team score and the stored
// opponent score, never persisted.
type GameResult string

const (
	GameResultWin        GameResult = "win"
	GameResultLoss       GameResult = "loss"
	GameResultTie        GameResult = "tie"
	GameResultInProgress GameResult = "in_progress"
)

type Game struct {
	ID           int       `json:"id" db:"id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	FocusChildID int       `json:"focus_child_id" db:"focus_child_id"`
	OpponentName string    `json:"opponent_name" db:"opponent_name"`
	OpponentScore int      `json:"opponent_score" db:"opponent_score"`
	GameDate     time.Time `json:"game_date" db:"game_date"`
	Complete     bool      `json:"complete" db:"complete"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// Result compares a derived team score against the stored opponent score.
// Incomplete games are always in progress.
func (g *Game) Result(teamScore int) GameResult {
	if !g.Complete {
		return GameResultInProgress
	}
	switch {
	case teamScore > g.OpponentScore:
		return GameResultWin
	case teamScore < g.OpponentScore:
		return GameResultLoss
	default:
		return GameResultTie
	}
}
