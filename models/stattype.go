package models

// StatType identifies the kind of a recorded stat event. The raw values are
// stored in the ledger, so they must stay stable.
type StatType string

const (
	// Shooting - made
	StatTwoPointMade   StatType = "TWO_MADE"
	StatThreePointMade StatType = "THREE_MADE"
	StatFreeThrowMade  StatType = "FT_MADE"

	// Shooting - missed
	StatTwoPointMiss   StatType = "TWO_MISS"
	StatThreePointMiss StatType = "THREE_MISS"
	StatFreeThrowMiss  StatType = "FT_MISS"

	// Hustle stats
	StatRebound  StatType = "REBOUND"
	StatAssist   StatType = "ASSIST"
	StatSteal    StatType = "STEAL"
	StatBlock    StatType = "BLOCK"
	StatTurnover StatType = "TURNOVER"
	StatFoul     StatType = "FOUL"

	// Teammate scoring, tallied against the team score only
	StatTeamPoint StatType = "TEAM_POINT"
)

// StatCategory groups stat types for display and filtering.
type StatCategory string

const (
	CategoryMadeShot   StatCategory = "made_shot"
	CategoryMissedShot StatCategory = "missed_shot"
	CategoryPositive   StatCategory = "positive"
	CategoryNegative   StatCategory = "negative"
	CategoryTeam       StatCategory = "team"
)

// AllStatTypes lists every recordable stat type.
var AllStatTypes = []StatType{
	StatTwoPointMade,
	StatTwoPointMiss,
	StatThreePointMade,
	StatThreePointMiss,
	StatFreeThrowMade,
	StatFreeThrowMiss,
	StatRebound,
	StatAssist,
	StatSteal,
	StatBlock,
	StatTurnover,
	StatFoul,
	StatTeamPoint,
}

// PointValue returns the number of points the stat type is worth.
func (s StatType) PointValue() int {
	switch s {
	case StatFreeThrowMade:
		return 1
	case StatTwoPointMade, StatTeamPoint:
		return 2
	case StatThreePointMade:
		return 3
	default:
		return 0
	}
}

// Category classifies the stat type.
func (s StatType) Category() StatCategory {
	switch s {
	case StatTwoPointMade, StatThreePointMade, StatFreeThrowMade:
		return CategoryMadeShot
	case StatTwoPointMiss, StatThreePointMiss, StatFreeThrowMiss:
		return CategoryMissedShot
	case StatRebound, StatAssist, StatSteal, StatBlock:
		return CategoryPositive
	case StatTurnover, StatFoul:
		return CategoryNegative
	default:
		return CategoryTeam
	}
}

// Label returns the short box-score abbreviation for the stat type.
func (s StatType) Label() string {
	switch s {
	case StatTwoPointMade:
		return "2PT Made"
	case StatTwoPointMiss:
		return "2PT Miss"
	case StatThreePointMade:
		return "3PT Made"
	case StatThreePointMiss:
		return "3PT Miss"
	case StatFreeThrowMade:
		return "FT Made"
	case StatFreeThrowMiss:
		return "FT Miss"
	case StatRebound:
		return "REB"
	case StatAssist:
		return "AST"
	case StatSteal:
		return "STL"
	case StatBlock:
		return "BLK"
	case StatTurnover:
		return "TO"
	case StatFoul:
		return "PF"
	case StatTeamPoint:
		return "+PTS"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known stat types.
func (s StatType) Valid() bool {
	switch s {
	case StatTwoPointMade, StatTwoPointMiss,
		StatThreePointMade, StatThreePointMiss,
		StatFreeThrowMade, StatFreeThrowMiss,
		StatRebound, StatAssist, StatSteal, StatBlock,
		StatTurnover, StatFoul, StatTeamPoint:
		return true
	}
	return false
}
