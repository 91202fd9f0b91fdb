package models

// LiveStats accumulates one player's box score within one game. It is a
// derived cache over the event ledger: folding the non-deleted events for a
// (player, game) pair always reproduces it exactly.
type LiveStats struct {
	Points          int     `json:"points"`
	FGMade          int     `json:"fg_made"`
	FGAttempted     int     `json:"fg_attempted"`
	FGPercentage    float64 `json:"fg_percentage"`
	ThreeMade       int     `json:"three_made"`
	ThreeAttempted  int     `json:"three_attempted"`
	ThreePercentage float64 `json:"three_percentage"`
	FTMade          int     `json:"ft_made"`
	FTAttempted     int     `json:"ft_attempted"`
	FTPercentage    float64 `json:"ft_percentage"`
	Rebounds        int     `json:"rebounds"`
	Assists         int     `json:"assists"`
	Steals          int     `json:"steals"`
	Blocks          int     `json:"blocks"`
	Turnovers       int     `json:"turnovers"`
	Fouls           int     `json:"fouls"`
}

func (s *LiveStats) updatePercentages() {
	// Recomputed from scratch after every mutation so the percentages can
	// never drift from the counters.
	s.FGPercentage = 0
	if s.FGAttempted > 0 {
		s.FGPercentage = float64(s.FGMade) / float64(s.FGAttempted) * 100
	}
	s.ThreePercentage = 0
	if s.ThreeAttempted > 0 {
		s.ThreePercentage = float64(s.ThreeMade) / float64(s.ThreeAttempted) * 100
	}
	s.FTPercentage = 0
	if s.FTAttempted > 0 {
		s.FTPercentage = float64(s.FTMade) / float64(s.FTAttempted) * 100
	}
}

// Record folds one stat event into the accumulator. TEAM_POINT events belong
// to teammates and touch no counters here.
func (s *LiveStats) Record(statType StatType) {
	switch statType {
	case StatFreeThrowMade:
		s.FTMade++
		s.FTAttempted++
		s.Points++
	case StatFreeThrowMiss:
		s.FTAttempted++
	case StatTwoPointMade:
		s.FGMade++
		s.FGAttempted++
		s.Points += 2
	case StatTwoPointMiss:
		s.FGAttempted++
	case StatThreePointMade:
		s.ThreeMade++
		s.ThreeAttempted++
		s.FGMade++
		s.FGAttempted++
		s.Points += 3
	case StatThreePointMiss:
		s.ThreeAttempted++
		s.FGAttempted++
	case StatRebound:
		s.Rebounds++
	case StatAssist:
		s.Assists++
	case StatSteal:
		s.Steals++
	case StatBlock:
		s.Blocks++
	case StatTurnover:
		s.Turnovers++
	case StatFoul:
		s.Fouls++
	case StatTeamPoint:
	}

	s.updatePercentages()
}

// Reverse is the exact inverse of Record: for any state,
// Reverse(k) after Record(k) restores every field, percentages included.
// Counters are not clamped at zero.
func (s *LiveStats) Reverse(statType StatType) {
	switch statType {
	case StatFreeThrowMade:
		s.FTMade--
		s.FTAttempted--
		s.Points--
	case StatFreeThrowMiss:
		s.FTAttempted--
	case StatTwoPointMade:
		s.FGMade--
		s.FGAttempted--
		s.Points -= 2
	case StatTwoPointMiss:
		s.FGAttempted--
	case StatThreePointMade:
		s.ThreeMade--
		s.ThreeAttempted--
		s.FGMade--
		s.FGAttempted--
		s.Points -= 3
	case StatThreePointMiss:
		s.ThreeAttempted--
		s.FGAttempted--
	case StatRebound:
		s.Rebounds--
	case StatAssist:
		s.Assists--
	case StatSteal:
		s.Steals--
	case StatBlock:
		s.Blocks--
	case StatTurnover:
		s.Turnovers--
	case StatFoul:
		s.Fouls--
	case StatTeamPoint:
	}

	s.updatePercentages()
}
