package models

import (
	"math"
	"testing"
)

func TestRecordTwoPointMade(t *testing.T) {
	var stats LiveStats
	stats.Record(StatTwoPointMade)

	if stats.Points != 2 {
		t.Errorf("Points = %d, want 2", stats.Points)
	}
	if stats.FGMade != 1 || stats.FGAttempted != 1 {
		t.Errorf("FG = %d/%d, want 1/1", stats.FGMade, stats.FGAttempted)
	}
	if stats.FGPercentage != 100.0 {
		t.Errorf("FGPercentage = %f, want 100.0", stats.FGPercentage)
	}
}

func TestRecordTwoPointMiss(t *testing.T) {
	var stats LiveStats
	stats.Record(StatTwoPointMiss)

	if stats.Points != 0 {
		t.Errorf("Points = %d, want 0", stats.Points)
	}
	if stats.FGMade != 0 || stats.FGAttempted != 1 {
		t.Errorf("FG = %d/%d, want 0/1", stats.FGMade, stats.FGAttempted)
	}
	if stats.FGPercentage != 0.0 {
		t.Errorf("FGPercentage = %f, want 0.0", stats.FGPercentage)
	}
}

func TestRecordThreePointMade(t *testing.T) {
	var stats LiveStats
	stats.Record(StatThreePointMade)

	if stats.Points != 3 {
		t.Errorf("Points = %d, want 3", stats.Points)
	}
	if stats.FGMade != 1 || stats.FGAttempted != 1 {
		t.Errorf("FG = %d/%d, want 1/1", stats.FGMade, stats.FGAttempted)
	}
	if stats.ThreeMade != 1 || stats.ThreeAttempted != 1 {
		t.Errorf("3PT = %d/%d, want 1/1", stats.ThreeMade, stats.ThreeAttempted)
	}
	if stats.ThreePercentage != 100.0 {
		t.Errorf("ThreePercentage = %f, want 100.0", stats.ThreePercentage)
	}
}

func TestRecordThreePointMissCountsFGAttempt(t *testing.T) {
	var stats LiveStats
	stats.Record(StatThreePointMiss)

	if stats.FGAttempted != 1 {
		t.Errorf("FGAttempted = %d, want 1", stats.FGAttempted)
	}
	if stats.ThreeAttempted != 1 {
		t.Errorf("ThreeAttempted = %d, want 1", stats.ThreeAttempted)
	}
	if stats.Points != 0 {
		t.Errorf("Points = %d, want 0", stats.Points)
	}
}

func TestRecordFreeThrows(t *testing.T) {
	var stats LiveStats
	stats.Record(StatFreeThrowMade)
	stats.Record(StatFreeThrowMiss)

	if stats.Points != 1 {
		t.Errorf("Points = %d, want 1", stats.Points)
	}
	if stats.FTMade != 1 || stats.FTAttempted != 2 {
		t.Errorf("FT = %d/%d, want 1/2", stats.FTMade, stats.FTAttempted)
	}
	if stats.FTPercentage != 50.0 {
		t.Errorf("FTPercentage = %f, want 50.0", stats.FTPercentage)
	}
	// Free throws never touch the field goal split.
	if stats.FGAttempted != 0 {
		t.Errorf("FGAttempted = %d, want 0", stats.FGAttempted)
	}
}

func TestRecordCountingStats(t *testing.T) {
	tests := []struct {
		statType StatType
		field    func(LiveStats) int
		name     string
	}{
		{StatRebound, func(s LiveStats) int { return s.Rebounds }, "rebounds"},
		{StatAssist, func(s LiveStats) int { return s.Assists }, "assists"},
		{StatSteal, func(s LiveStats) int { return s.Steals }, "steals"},
		{StatBlock, func(s LiveStats) int { return s.Blocks }, "blocks"},
		{StatTurnover, func(s LiveStats) int { return s.Turnovers }, "turnovers"},
		{StatFoul, func(s LiveStats) int { return s.Fouls }, "fouls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats LiveStats
			stats.Record(tt.statType)
			if got := tt.field(stats); got != 1 {
				t.Errorf("%s = %d, want 1", tt.name, got)
			}
			if stats.Points != 0 {
				t.Errorf("Points = %d, want 0", stats.Points)
			}
		})
	}
}

func TestTeamPointTouchesNothing(t *testing.T) {
	var stats LiveStats
	stats.Record(StatTeamPoint)

	if stats != (LiveStats{}) {
		t.Errorf("TEAM_POINT mutated the accumulator: %+v", stats)
	}
}

func TestShootingScenario(t *testing.T) {
	// 2PT made, 2PT made, 2PT miss
	var stats LiveStats
	stats.Record(StatTwoPointMade)
	stats.Record(StatTwoPointMade)
	stats.Record(StatTwoPointMiss)

	if stats.Points != 4 {
		t.Errorf("Points = %d, want 4", stats.Points)
	}
	if stats.FGMade != 2 || stats.FGAttempted != 3 {
		t.Errorf("FG = %d/%d, want 2/3", stats.FGMade, stats.FGAttempted)
	}
	if math.Abs(stats.FGPercentage-66.67) > 0.01 {
		t.Errorf("FGPercentage = %f, want ~66.67", stats.FGPercentage)
	}
}

func TestReverseThreePointMadeRestoresInitialState(t *testing.T) {
	var stats LiveStats
	stats.Record(StatThreePointMade)
	stats.Reverse(StatThreePointMade)

	if stats != (LiveStats{}) {
		t.Errorf("accumulator not restored to zero state: %+v", stats)
	}
}

// Record then Reverse must be an exact inverse for every stat type and from
// any starting state, percentages included.
func TestRecordReverseInverseLaw(t *testing.T) {
	base := LiveStats{}
	base.Record(StatTwoPointMade)
	base.Record(StatThreePointMiss)
	base.Record(StatFreeThrowMade)
	base.Record(StatRebound)
	base.Record(StatAssist)

	for _, statType := range AllStatTypes {
		t.Run(string(statType), func(t *testing.T) {
			stats := base
			stats.Record(statType)
			stats.Reverse(statType)
			if stats != base {
				t.Errorf("reverse did not invert record:\n got %+v\nwant %+v", stats, base)
			}
		})
	}
}

func TestZeroAttemptsReportZeroPercent(t *testing.T) {
	var stats LiveStats
	stats.Record(StatRebound)

	if stats.FGPercentage != 0.0 || stats.ThreePercentage != 0.0 || stats.FTPercentage != 0.0 {
		t.Errorf("percentages with zero attempts must be 0.0, got fg=%f three=%f ft=%f",
			stats.FGPercentage, stats.ThreePercentage, stats.FTPercentage)
	}
	if math.IsNaN(stats.FGPercentage) {
		t.Error("FGPercentage is NaN")
	}
}

func TestReverseIsNotClamped(t *testing.T) {
	// Reversing past zero is allowed; counters go negative rather than
	// silently clamping.
	var stats LiveStats
	stats.Reverse(StatTwoPointMade)

	if stats.FGMade != -1 || stats.FGAttempted != -1 || stats.Points != -2 {
		t.Errorf("expected negative counters, got %+v", stats)
	}
}
