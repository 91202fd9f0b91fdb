package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
)

type CreatePlayerInput struct {
	ChildID      int     `json:"child_id"`
	TeamID       int     `json:"team_id"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Position     *string `json:"position,omitempty"`
}

type UpdatePlayerInput struct {
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Position     *string `json:"position,omitempty"`
}

// PlayerService manages roster assignments: the join records that bind one
// child to one team and scope every stat event.
type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayersByChild(ctx context.Context, childID int) ([]*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	childRepo  repositories.ChildRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	childRepo repositories.ChildRepository,
	teamRepo repositories.TeamRepository,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		childRepo:  childRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if _, err := s.childRepo.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to check child: %w", err)
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

	player := &models.Player{
		ChildID:      input.ChildID,
		TeamID:       input.TeamID,
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerConflict) {
			return nil, ErrRosterConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (s *playerService) ListPlayersByChild(ctx context.Context, childID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for child %d: %w", childID, err)
	}
	if players == nil {
		players = []*models.Player{}
	}
	return players, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	if players == nil {
		players = []*models.Player{}
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.JerseyNumber != nil {
		player.JerseyNumber = input.JerseyNumber
	}
	if input.Position != nil {
		player.Position = input.Position
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
