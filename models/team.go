package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Season       string    `json:"season" db:"season"`
	Organization *string   `json:"organization,omitempty" db:"organization"`
	ColorTag     *string   `json:"color_tag,omitempty" db:"color_tag"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
