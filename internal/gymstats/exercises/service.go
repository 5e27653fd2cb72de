package exercises

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context, ownerID int) ([]Exercise, error)
	Rename(ctx context.Context, id int, name string) error
	Update(ctx context.Context, exercise Exercise) error
	Delete(ctx context.Context, id int) error
}

type ownerCache interface {
	InvalidateOwner(ownerID int)
}

type Service struct {
	repo  exercisesRepo
	cache ownerCache
}

func NewService(repo exercisesRepo, cache ownerCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) owned(ctx context.Context, id, ownerID int) (*Exercise, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != ownerID {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrUnauthorized)
	}
	return e, nil
}

func (s *Service) Add(ctx context.Context, ownerID int, exercise Exercise) (*Exercise, error) {
	exercise.Normalize()
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	exercise.UserID = ownerID
	return s.repo.Add(ctx, exercise)
}

func (s *Service) Get(ctx context.Context, id, ownerID int) (*Exercise, error) {
	return s.owned(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID int) ([]Exercise, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Rename(ctx context.Context, id, ownerID int, name string) (*Exercise, error) {
	e, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	e.Name = name
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, id, e.Name); err != nil {
		return nil, err
	}
	s.invalidate(ownerID)
	return e, nil
}

// Update changes everything but the name. A changed name is applied through Rename.
func (s *Service) Update(ctx context.Context, ownerID int, exercise Exercise) (*Exercise, error) {
	current, err := s.owned(ctx, exercise.ID, ownerID)
	if err != nil {
		return nil, err
	}

	exercise.Normalize()
	if exercise.Name != "" && exercise.Name != current.Name {
		if _, err := s.Rename(ctx, exercise.ID, ownerID, exercise.Name); err != nil {
			return nil, err
		}
		current.Name = exercise.Name
	}

	current.Icon = exercise.Icon
	current.MuscleGroups = exercise.MuscleGroups
	if err := s.repo.Update(ctx, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int) error {
	e, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Debugf("exercise %d [%s] deleted with its sets", id, e.Name)
	s.invalidate(ownerID)
	return nil
}

func (s *Service) invalidate(ownerID int) {
	if s.cache != nil {
		s.cache.InvalidateOwner(ownerID)
	}
}
