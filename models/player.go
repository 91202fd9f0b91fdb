package models

import "time"

// Player is a roster assignment: one child's membership on one team for one
// season. Every stat event is scoped by a player id, never by a child id.
type Player struct {
	ID           int       `json:"id" db:"id"`
	ChildID      int       `json:"child_id" db:"child_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	JerseyNumber *int      `json:"jersey_number,omitempty" db:"jersey_number"`
	Position     *string   `json:"position,omitempty" db:"position"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Child *Child `json:"child,omitempty" db:"-"`
	Team  *Team  `json:"team,omitempty" db:"-"`
}
