package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
)

type CreateTeamInput struct {
	Name         string  `json:"name"`
	Season       string  `json:"season"`
	Organization *string `json:"organization,omitempty"`
	ColorTag     *string `json:"color_tag,omitempty"`
}

type UpdateTeamInput struct {
	Name         *string `json:"name,omitempty"`
	Season       *string `json:"season,omitempty"`
	Organization *string `json:"organization,omitempty"`
	ColorTag     *string `json:"color_tag,omitempty"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, activeOnly bool) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeactivateTeam(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	season := strings.TrimSpace(input.Season)
	if season == "" {
		return nil, ErrTeamSeasonRequired
	}

	team := &models.Team{
		Name:         name,
		Season:       season,
		Organization: input.Organization,
		ColorTag:     input.ColorTag,
		Active:       true,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, activeOnly bool) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []*models.Team{}
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.Season != nil {
		season := strings.TrimSpace(*input.Season)
		if season == "" {
			return nil, ErrTeamSeasonRequired
		}
		team.Season = season
	}
	if input.Organization != nil {
		team.Organization = input.Organization
	}
	if input.ColorTag != nil {
		team.ColorTag = input.ColorTag
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

func (s *teamService) DeactivateTeam(ctx context.Context, id int) error {
	if err := s.teamRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to deactivate team: %w", err)
	}
	return nil
}
