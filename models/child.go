package models

import "time"

type Child struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	LastUsedAt  time.Time `json:"last_used_at" db:"last_used_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
