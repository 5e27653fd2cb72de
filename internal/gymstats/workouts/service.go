package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	GetOrCreate(ctx context.Context, ownerID int, date string) (*Workout, bool, error)
	Get(ctx context.Context, id int) (*Workout, error)
	GetByDate(ctx context.Context, ownerID int, date string) (*Workout, error)
	List(ctx context.Context, ownerID, page, size int) ([]Workout, int, error)
	UpdateNotes(ctx context.Context, id int, notes string) error
	Delete(ctx context.Context, id int) error
	TotalDuration(ctx context.Context, workoutID int) (int, error)
	AddWarmup(ctx context.Context, warmup Warmup) (*Warmup, error)
	UpdateWarmup(ctx context.Context, warmup Warmup) error
	DeleteWarmup(ctx context.Context, id int) error
	ListWarmups(ctx context.Context, workoutID int) ([]Warmup, error)
	WarmupOwner(ctx context.Context, warmupID int) (int, error)
}

type setsLister interface {
	ListForWorkout(ctx context.Context, workoutID int) ([]sets.Set, error)
}

type ownerCache interface {
	InvalidateOwner(ownerID int)
}

type Service struct {
	repo  workoutsRepo
	sets  setsLister
	cache ownerCache
}

// NewService builds the workouts service. cache may be nil.
func NewService(repo workoutsRepo, sets setsLister, cache ownerCache) *Service {
	return &Service{
		repo:  repo,
		sets:  sets,
		cache: cache,
	}
}

func (s *Service) owned(ctx context.Context, workoutID, ownerID int) (*Workout, error) {
	w, err := s.repo.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if w.UserID != ownerID {
		return nil, fmt.Errorf("workout %d: %w", workoutID, ErrUnauthorized)
	}
	return w, nil
}

func (s *Service) GetOrCreate(ctx context.Context, ownerID int, date string) (*Workout, bool, error) {
	if _, err := pkg.ParseDate(date); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return s.repo.GetOrCreate(ctx, ownerID, date)
}

func (s *Service) Get(ctx context.Context, workoutID, ownerID int) (*Details, error) {
	w, err := s.owned(ctx, workoutID, ownerID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, w)
}

// GetByDate returns the owner's workout of one day with its sets, warmups
// and total duration.
func (s *Service) GetByDate(ctx context.Context, ownerID int, date string) (*Details, error) {
	if _, err := pkg.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	w, err := s.repo.GetByDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, w)
}

func (s *Service) details(ctx context.Context, w *Workout) (*Details, error) {
	workoutSets, err := s.sets.ListForWorkout(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	warmups, err := s.repo.ListWarmups(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list warmups: %w", err)
	}
	total, err := s.repo.TotalDuration(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("total duration: %w", err)
	}
	return &Details{
		Workout:              *w,
		Sets:                 workoutSets,
		Warmups:              warmups,
		TotalDurationSeconds: total,
	}, nil
}

func (s *Service) List(ctx context.Context, ownerID, page, size int) ([]Workout, int, error) {
	return s.repo.List(ctx, ownerID, page, size)
}

func (s *Service) UpdateNotes(ctx context.Context, workoutID, ownerID int, notes string) error {
	if _, err := s.owned(ctx, workoutID, ownerID); err != nil {
		return err
	}
	return s.repo.UpdateNotes(ctx, workoutID, notes)
}

func (s *Service) Delete(ctx context.Context, workoutID, ownerID int) error {
	if _, err := s.owned(ctx, workoutID, ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, workoutID); err != nil {
		return err
	}
	// the workout's sets are gone with it
	if s.cache != nil {
		s.cache.InvalidateOwner(ownerID)
	}
	return nil
}

func (s *Service) AddWarmup(ctx context.Context, ownerID int, warmup Warmup) (*Warmup, error) {
	if err := warmup.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, warmup.WorkoutID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.AddWarmup(ctx, warmup)
}

func (s *Service) authorizeWarmup(ctx context.Context, warmupID, ownerID int) error {
	owner, err := s.repo.WarmupOwner(ctx, warmupID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return fmt.Errorf("warmup %d: %w", warmupID, ErrUnauthorized)
	}
	return nil
}

func (s *Service) UpdateWarmup(ctx context.Context, ownerID int, warmup Warmup) error {
	if err := warmup.Validate(); err != nil {
		return err
	}
	if err := s.authorizeWarmup(ctx, warmup.ID, ownerID); err != nil {
		return err
	}
	return s.repo.UpdateWarmup(ctx, warmup)
}

func (s *Service) DeleteWarmup(ctx context.Context, warmupID, ownerID int) error {
	if err := s.authorizeWarmup(ctx, warmupID, ownerID); err != nil {
		return err
	}
	return s.repo.DeleteWarmup(ctx, warmupID)
}
