package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
	"golang.org/x/sync/errgroup"
)

// CareerService rebuilds a child's career statistics from the full event
// history across every roster assignment the child has ever held.
type CareerService interface {
	CalculateCareerStats(ctx context.Context, childID int) (*models.CareerStats, error)
}

type careerService struct {
	childRepo  repositories.ChildRepository
	playerRepo repositories.PlayerRepository
	gameRepo   repositories.GameRepository
	teamRepo   repositories.TeamRepository
	eventRepo  repositories.StatEventRepository
}

func NewCareerService(
	childRepo repositories.ChildRepository,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.StatEventRepository,
) CareerService {
	return &careerService{
		childRepo:  childRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		eventRepo:  eventRepo,
	}
}

// gameLine is the per-game breakdown used for career-high detection.
type gameLine struct {
	points   int
	rebounds int
	assists  int
}

func (s *careerService) CalculateCareerStats(ctx context.Context, childID int) (*models.CareerStats, error) {
	var (
		child   *models.Child
		players []*models.Player
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		child, err = s.childRepo.GetByID(gCtx, childID)
		if err != nil {
			if errors.Is(err, repositories.ErrChildNotFound) {
				return ErrChildNotFound
			}
			return fmt.Errorf("failed to load child %d: %w", childID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByChild(gCtx, childID)
		if err != nil {
			return fmt.Errorf("failed to load roster records for child %d: %w", childID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(players) == 0 {
		return nil, ErrCareerNoData
	}

	playerIDs := make([]int, 0, len(players))
	for _, player := range players {
		playerIDs = append(playerIDs, player.ID)
	}

	allEvents, err := s.eventRepo.ListByPlayerIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load stat events: %w", err)
	}

	gameIDSet := make(map[int]bool)
	for _, event := range allEvents {
		gameIDSet[event.GameID] = true
	}
	gameIDs := make([]int, 0, len(gameIDSet))
	for id := range gameIDSet {
		gameIDs = append(gameIDs, id)
	}

	allGames, err := s.gameRepo.ListByIDs(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	// Only completed games count toward a career; events from in-progress
	// games stay out of every pass.
	counted := make(map[int]*models.Game)
	for _, game := range allGames {
		if game.Complete {
			counted[game.ID] = game
		}
	}
	events := allEvents[:0:0]
	for _, event := range allEvents {
		if counted[event.GameID] != nil {
			events = append(events, event)
		}
	}

	stats := &models.CareerStats{
		ChildID:    childID,
		ChildName:  child.Name,
		TotalGames: len(counted),
	}

	// Pass 1: flat totals and shooting splits. TEAM_POINT events belong to
	// teammates and must not leak into the child's own line.
	perGame := make(map[int]*gameLine, len(counted))
	for _, event := range events {
		switch event.StatType {
		case models.StatFreeThrowMade:
			stats.FreeThrowMade++
			stats.FreeThrowAttempted++
			stats.TotalPoints++
		case models.StatFreeThrowMiss:
			stats.FreeThrowAttempted++
		case models.StatTwoPointMade:
			stats.FieldGoalMade++
			stats.FieldGoalAttempted++
			stats.TotalPoints += 2
		case models.StatTwoPointMiss:
			stats.FieldGoalAttempted++
		case models.StatThreePointMade:
			stats.ThreePointMade++
			stats.ThreePointAttempted++
			stats.FieldGoalMade++
			stats.FieldGoalAttempted++
			stats.TotalPoints += 3
		case models.StatThreePointMiss:
			stats.ThreePointAttempted++
			stats.FieldGoalAttempted++
		case models.StatRebound:
			stats.TotalRebounds++
		case models.StatAssist:
			stats.TotalAssists++
		case models.StatSteal:
			stats.TotalSteals++
		case models.StatBlock:
			stats.TotalBlocks++
		case models.StatTurnover:
			stats.TotalTurnovers++
		case models.StatFoul:
			stats.TotalFouls++
		case models.StatTeamPoint:
		}

		// Pass 2 bookkeeping folded into the same loop: per-game lines for
		// career-high detection.
		line := perGame[event.GameID]
		if line == nil {
			line = &gameLine{}
			perGame[event.GameID] = line
		}
		switch event.StatType {
		case models.StatFreeThrowMade:
			line.points++
		case models.StatTwoPointMade:
			line.points += 2
		case models.StatThreePointMade:
			line.points += 3
		case models.StatRebound:
			line.rebounds++
		case models.StatAssist:
			line.assists++
		}
	}

	// Career highs are the best single game, never a sum.
	for _, line := range perGame {
		if line.points > stats.CareerHighPoints {
			stats.CareerHighPoints = line.points
		}
		if line.rebounds > stats.CareerHighRebounds {
			stats.CareerHighRebounds = line.rebounds
		}
		if line.assists > stats.CareerHighAssists {
			stats.CareerHighAssists = line.assists
		}
	}

	gameCount := float64(len(counted))
	if gameCount > 0 {
		stats.PointsPerGame = float64(stats.TotalPoints) / gameCount
		stats.ReboundsPerGame = float64(stats.TotalRebounds) / gameCount
		stats.AssistsPerGame = float64(stats.TotalAssists) / gameCount
		stats.StealsPerGame = float64(stats.TotalSteals) / gameCount
		stats.BlocksPerGame = float64(stats.TotalBlocks) / gameCount
	}
	stats.FieldGoalPercentage = percentage(stats.FieldGoalMade, stats.FieldGoalAttempted)
	stats.ThreePointPercentage = percentage(stats.ThreePointMade, stats.ThreePointAttempted)
	stats.FreeThrowPercentage = percentage(stats.FreeThrowMade, stats.FreeThrowAttempted)

	teamStats, err := s.teamBreakdown(ctx, counted, events)
	if err != nil {
		return nil, err
	}
	stats.TeamStats = teamStats

	return stats, nil
}

// teamBreakdown computes the per-team slice of a career: games, wins and
// losses from derived game scores, plus per-game volume averages. Events are
// bucketed by team in one pass, never refiltered per team.
func (s *careerService) teamBreakdown(
	ctx context.Context,
	counted map[int]*models.Game,
	events []*models.StatEvent,
) ([]models.TeamSeasonStats, error) {
	if len(counted) == 0 {
		return []models.TeamSeasonStats{}, nil
	}

	gameIDs := make([]int, 0, len(counted))
	for id := range counted {
		gameIDs = append(gameIDs, id)
	}
	// Win/loss needs the full derived score of each game, teammates
	// included, which the child's own event subset cannot provide.
	gameScores, err := s.eventRepo.GameScores(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load derived game scores: %w", err)
	}

	type teamAgg struct {
		games    int
		wins     int
		losses   int
		points   int
		rebounds int
		assists  int
	}
	byTeam := make(map[int]*teamAgg)

	for _, game := range counted {
		agg := byTeam[game.TeamID]
		if agg == nil {
			agg = &teamAgg{}
			byTeam[game.TeamID] = agg
		}
		agg.games++
		switch game.Result(gameScores[game.ID]) {
		case models.GameResultWin:
			agg.wins++
		case models.GameResultLoss:
			agg.losses++
		}
	}

	for _, event := range events {
		game := counted[event.GameID]
		if game == nil {
			continue
		}
		agg := byTeam[game.TeamID]
		agg.points += event.StatType.PointValue()
		if event.StatType == models.StatRebound {
			agg.rebounds++
		}
		if event.StatType == models.StatAssist {
			agg.assists++
		}
	}

	teamStats := make([]models.TeamSeasonStats, 0, len(byTeam))
	for teamID, agg := range byTeam {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
		}

		entry := models.TeamSeasonStats{
			TeamID:       teamID,
			TeamName:     team.Name,
			Season:       team.Season,
			Organization: team.Organization,
			Games:        agg.games,
			Wins:         agg.wins,
			Losses:       agg.losses,
		}
		if agg.games > 0 {
			games := float64(agg.games)
			entry.PointsPerGame = float64(agg.points) / games
			entry.ReboundsPerGame = float64(agg.rebounds) / games
			entry.AssistsPerGame = float64(agg.assists) / games
		}
		teamStats = append(teamStats, entry)
	}

	sort.Slice(teamStats, func(i, j int) bool {
		return teamStats[i].TeamID < teamStats[j].TeamID
	})
	return teamStats, nil
}

func percentage(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(made) / float64(attempted) * 100
}
