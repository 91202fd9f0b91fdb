package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
)

type CreateGameInput struct {
	TeamID       int       `json:"team_id"`
	FocusChildID int       `json:"focus_child_id"`
	OpponentName string    `json:"opponent_name"`
	GameDate     time.Time `json:"game_date"`
	Location     *string   `json:"location,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type UpdateGameInput struct {
	OpponentName *string    `json:"opponent_name,omitempty"`
	GameDate     *time.Time `json:"game_date,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// GameSummary is the read-side view of one game: the stored game row plus
// everything derived from the ledger.
type GameSummary struct {
	Game            *models.Game      `json:"game"`
	TeamScore       int               `json:"team_score"`
	Result          models.GameResult `json:"result"`
	FocusPlayerID   int               `json:"focus_player_id"`
	FocusPlayerStats models.LiveStats `json:"focus_player_stats"`
}

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	ListGamesByTeam(ctx context.Context, teamID int) ([]*models.Game, error)
	UpdateGame(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error)
	// Summary derives team score, result and the focus player's box score
	// from the non-deleted events of the game.
	Summary(ctx context.Context, gameID int) (*GameSummary, error)
	// CalculatedTeamScore sums non-deleted event values; the team score is
	// never stored on the game row.
	CalculatedTeamScore(ctx context.Context, gameID int) (int, error)
	// ListEvents returns the game's ledger rows. The audit path includes
	// soft-deleted events; the default path excludes them.
	ListEvents(ctx context.Context, gameID int, includeDeleted bool) ([]*models.StatEvent, error)
}

type gameService struct {
	gameRepo   repositories.GameRepository
	teamRepo   repositories.TeamRepository
	childRepo  repositories.ChildRepository
	playerRepo repositories.PlayerRepository
	eventRepo  repositories.StatEventRepository
}

func NewGameService(
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	childRepo repositories.ChildRepository,
	playerRepo repositories.PlayerRepository,
	eventRepo repositories.StatEventRepository,
) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		childRepo:  childRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
	}
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	opponent := strings.TrimSpace(input.OpponentName)
	if opponent == "" {
		return nil, ErrOpponentRequired
	}

	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team: %w", err)
	}
	if !team.Active {
		return nil, ErrTeamInactive
	}

	if _, err := s.focusPlayer(ctx, input.TeamID, input.FocusChildID); err != nil {
		return nil, err
	}

	gameDate := input.GameDate
	if gameDate.IsZero() {
		gameDate = time.Now()
	}

	game := &models.Game{
		TeamID:       input.TeamID,
		FocusChildID: input.FocusChildID,
		OpponentName: opponent,
		GameDate:     gameDate,
		Location:     input.Location,
		Notes:        input.Notes,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	// Starting a game makes this child the default for the next session.
	if err := s.childRepo.TouchLastUsed(ctx, input.FocusChildID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to touch child last_used_at: %w", err)
	}

	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (s *gameService) ListGamesByTeam(ctx context.Context, teamID int) ([]*models.Game, error) {
	games, err := s.gameRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for team %d: %w", teamID, err)
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

func (s *gameService) UpdateGame(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error) {
	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OpponentName != nil {
		opponent := strings.TrimSpace(*input.OpponentName)
		if opponent == "" {
			return nil, ErrOpponentRequired
		}
		game.OpponentName = opponent
	}
	if input.GameDate != nil {
		game.GameDate = *input.GameDate
	}
	if input.Location != nil {
		game.Location = input.Location
	}
	if input.Notes != nil {
		game.Notes = input.Notes
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	return game, nil
}

func (s *gameService) Summary(ctx context.Context, gameID int) (*GameSummary, error) {
	game, err := s.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	focusPlayer, err := s.focusPlayer(ctx, game.TeamID, game.FocusChildID)
	if err != nil {
		return nil, err
	}

	teamScore, err := s.eventRepo.GameScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate team score: %w", err)
	}

	events, err := s.eventRepo.ListByGameAndPlayer(ctx, gameID, focusPlayer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load focus player events: %w", err)
	}

	var stats models.LiveStats
	for _, event := range events {
		stats.Record(event.StatType)
	}

	return &GameSummary{
		Game:            game,
		TeamScore:       teamScore,
		Result:          game.Result(teamScore),
		FocusPlayerID:   focusPlayer.ID,
		FocusPlayerStats: stats,
	}, nil
}

func (s *gameService) CalculatedTeamScore(ctx context.Context, gameID int) (int, error) {
	if _, err := s.GetGameByID(ctx, gameID); err != nil {
		return 0, err
	}
	score, err := s.eventRepo.GameScore(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate team score: %w", err)
	}
	return score, nil
}

func (s *gameService) ListEvents(ctx context.Context, gameID int, includeDeleted bool) ([]*models.StatEvent, error) {
	if _, err := s.GetGameByID(ctx, gameID); err != nil {
		return nil, err
	}

	var (
		events []*models.StatEvent
		err    error
	)
	if includeDeleted {
		events, err = s.eventRepo.ListByGameAudit(ctx, gameID)
	} else {
		events, err = s.eventRepo.ListByGame(ctx, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list events for game %d: %w", gameID, err)
	}
	if events == nil {
		events = []*models.StatEvent{}
	}
	return events, nil
}

// focusPlayer resolves the focus child's roster spot on the game's team.
func (s *gameService) focusPlayer(ctx context.Context, teamID, childID int) (*models.Player, error) {
	players, err := s.playerRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster spots for child %d: %w", childID, err)
	}
	for _, player := range players {
		if player.TeamID == teamID {
			return player, nil
		}
	}
	return nil, ErrFocusChildNotOnTeam
}
