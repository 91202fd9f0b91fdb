package models

// CareerStats is the batch-derived career view for one child, rebuilt from
// the full event history on every request.
type CareerStats struct {
	ChildID    int    `json:"child_id"`
	ChildName  string `json:"child_name"`
	TotalGames int    `json:"total_games"`

	// Overall per-game averages
	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
	StealsPerGame   float64 `json:"steals_per_game"`
	BlocksPerGame   float64 `json:"blocks_per_game"`

	// Totals
	TotalPoints    int `json:"total_points"`
	TotalRebounds  int `json:"total_rebounds"`
	TotalAssists   int `json:"total_assists"`
	TotalSteals    int `json:"total_steals"`
	TotalBlocks    int `json:"total_blocks"`
	TotalTurnovers int `json:"total_turnovers"`
	TotalFouls     int `json:"total_fouls"`

	// Shooting splits
	FieldGoalMade        int     `json:"field_goal_made"`
	FieldGoalAttempted   int     `json:"field_goal_attempted"`
	FieldGoalPercentage  float64 `json:"field_goal_percentage"`
	ThreePointMade       int     `json:"three_point_made"`
	ThreePointAttempted  int     `json:"three_point_attempted"`
	ThreePointPercentage float64 `json:"three_point_percentage"`
	FreeThrowMade        int     `json:"free_throw_made"`
	FreeThrowAttempted   int     `json:"free_throw_attempted"`
	FreeThrowPercentage  float64 `json:"free_throw_percentage"`

	// Career highs: the best single completed game, not a cumulative stat.
	CareerHighPoints   int `json:"career_high_points"`
	CareerHighRebounds int `json:"career_high_rebounds"`
	CareerHighAssists  int `json:"career_high_assists"`

	TeamStats []TeamSeasonStats `json:"team_stats"`
}

// TeamSeasonStats is the per-team breakdown within a career: one entry per
// distinct team the child has played for.
type TeamSeasonStats struct {
	TeamID       int     `json:"team_id"`
	TeamName     string  `json:"team_name"`
	Season       string  `json:"season"`
	Organization *string `json:"organization,omitempty"`

	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`

	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
}
