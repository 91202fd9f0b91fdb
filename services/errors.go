package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	// Not found
	ErrNotFound        = errors.New("requested resource not found")
	ErrChildNotFound   = errors.New("child not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrGameNotFound    = errors.New("game not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrChildNameRequired   = errors.New("child name is required")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrTeamSeasonRequired  = errors.New("team season is required")
	ErrOpponentRequired    = errors.New("opponent name is required")
	ErrInvalidStatType     = errors.New("invalid stat type")
	ErrInvalidPointValue   = errors.New("point value must be 1, 2 or 3")
	ErrTeamInactive        = errors.New("team is not active")
	ErrFocusChildNotOnTeam = errors.New("focus child has no roster spot on this team")

	// Conflicts
	ErrRosterConflict = errors.New("child already has a roster spot on this team")

	// Live game session
	ErrGameAlreadyComplete = errors.New("game is already complete")
	ErrGameNotLive         = errors.New("no live session for this game")
	ErrPlayerNotOnRoster   = errors.New("player is not on this game's roster")

	// Career aggregation
	ErrCareerNoData = errors.New("child has no roster records")
)
