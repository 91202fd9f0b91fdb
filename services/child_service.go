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

type CreateChildInput struct {
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

type UpdateChildInput struct {
	Name        *string    `json:"name,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

type ChildService interface {
	CreateChild(ctx context.Context, input CreateChildInput) (*models.Child, error)
	GetChildByID(ctx context.Context, id int) (*models.Child, error)
	ListChildren(ctx context.Context) ([]*models.Child, error)
	UpdateChild(ctx context.Context, id int, input UpdateChildInput) (*models.Child, error)
	DeleteChild(ctx context.Context, id int) error
	// DefaultChild returns the most recently active child, the one a fresh
	// app session should preselect.
	DefaultChild(ctx context.Context) (*models.Child, error)
}

type childService struct {
	childRepo repositories.ChildRepository
}

func NewChildService(childRepo repositories.ChildRepository) ChildService {
	return &childService{childRepo: childRepo}
}

func (s *childService) CreateChild(ctx context.Context, input CreateChildInput) (*models.Child, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrChildNameRequired
	}

	child := &models.Child{
		Name:        name,
		DateOfBirth: input.DateOfBirth,
		LastUsedAt:  time.Now(),
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return child, nil
}

func (s *childService) GetChildByID(ctx context.Context, id int) (*models.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

func (s *childService) ListChildren(ctx context.Context) ([]*models.Child, error) {
	children, err := s.childRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	if children == nil {
		children = []*models.Child{}
	}
	return children, nil
}

func (s *childService) UpdateChild(ctx context.Context, id int, input UpdateChildInput) (*models.Child, error) {
	child, err := s.GetChildByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrChildNameRequired
		}
		child.Name = name
	}
	if input.DateOfBirth != nil {
		child.DateOfBirth = *input.DateOfBirth
	}

	if err := s.childRepo.Update(ctx, child); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	return child, nil
}

func (s *childService) DeleteChild(ctx context.Context, id int) error {
	if err := s.childRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

func (s *childService) DefaultChild(ctx context.Context) (*models.Child, error) {
	child, err := s.childRepo.MostRecentlyUsed(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get default child: %w", err)
	}
	return child, nil
}
