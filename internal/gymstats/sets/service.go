package sets

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sets_test

type setsRepo interface {
	Get(ctx context.Context, id int) (*Set, error)
	Owner(ctx context.Context, setID int) (int, error)
	ParentOwners(ctx context.Context, workoutID, exerciseID int) (workoutOwner, exerciseOwner int, err error)
	WorkoutOwner(ctx context.Context, workoutID int) (int, error)
	ListForWorkout(ctx context.Context, workoutID int) ([]Set, error)
	Add(ctx context.Context, newSet NewSet) (_ *Set, updated bool, err error)
	Update(ctx context.Context, id int, update SetUpdate) error
	Complete(ctx context.Context, id int, at time.Time) error
	DeleteWithRenumber(ctx context.Context, setID int) (DeleteResult, error)
	Link(ctx context.Context, setIDA, setIDB, ownerID int) (LinkResult, error)
	Unlink(ctx context.Context, setID int) error
	Partners(ctx context.Context, setID, ownerID int) ([]Set, error)
	LinkCandidates(ctx context.Context, setID int) ([]Set, error)
}

// ownerCache drops cached derived data of an owner after a mutation.
type ownerCache interface {
	InvalidateOwner(ownerID int)
}

type Service struct {
	repo           setsRepo
	metricsManager *metrics.Manager
	cache          ownerCache
	now            func() time.Time
}

// NewService builds the sets service. metricsManager and cache may be nil.
func NewService(repo setsRepo, metricsManager *metrics.Manager, cache ownerCache) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		cache:          cache,
		now:            time.Now,
	}
}

// authorize checks that ownerID owns the set.
func (s *Service) authorize(ctx context.Context, setID, ownerID int) error {
	owner, err := s.repo.Owner(ctx, setID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return fmt.Errorf("set %d: %w", setID, ErrUnauthorized)
	}
	return nil
}

func (s *Service) invalidate(ownerID int) {
	if s.cache != nil {
		s.cache.InvalidateOwner(ownerID)
	}
}

// DeleteSet deletes a set and renumbers its siblings. Deleting a set that
// does not exist is not an error: the result reports Deleted=false.
func (s *Service) DeleteSet(ctx context.Context, setID, ownerID int) (DeleteResult, error) {
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			return DeleteResult{}, nil
		}
		return DeleteResult{}, err
	}

	res, err := s.repo.DeleteWithRenumber(ctx, setID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete set %d: %w", setID, err)
	}

	if res.Deleted {
		log.Debugf("set %d deleted, %d siblings renumbered", setID, res.Renumbered)
		s.invalidate(ownerID)
		if s.metricsManager != nil {
			s.metricsManager.CounterSetsDeleted.Inc()
			s.metricsManager.CounterSetsRenumbered.Add(float64(res.Renumbered))
		}
	}
	return res, nil
}

func (s *Service) LinkSets(ctx context.Context, setIDA, setIDB, ownerID int) (LinkResult, error) {
	if setIDA == setIDB {
		return LinkResult{}, fmt.Errorf("%w: cannot link set %d to itself", ErrInvalidState, setIDA)
	}
	if err := s.authorize(ctx, setIDA, ownerID); err != nil {
		return LinkResult{}, err
	}
	if err := s.authorize(ctx, setIDB, ownerID); err != nil {
		return LinkResult{}, err
	}

	res, err := s.repo.Link(ctx, setIDA, setIDB, ownerID)
	if err != nil {
		return LinkResult{}, fmt.Errorf("link sets %d and %d: %w", setIDA, setIDB, err)
	}

	log.Debugf("sets %d and %d linked [%s]: %s", setIDA, setIDB, res.Outcome, res.SupersetID)
	if res.Outcome != LinkNoop {
		s.invalidate(ownerID)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterSupersetsLinked.WithLabelValues(string(res.Outcome)).Inc()
	}
	return res, nil
}

func (s *Service) UnlinkSuperset(ctx context.Context, setID, ownerID int) error {
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		return err
	}
	if err := s.repo.Unlink(ctx, setID); err != nil {
		return fmt.Errorf("unlink set %d: %w", setID, err)
	}
	s.invalidate(ownerID)
	return nil
}

func (s *Service) Partners(ctx context.Context, setID, ownerID int) ([]Set, error) {
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.Partners(ctx, setID, ownerID)
}

func (s *Service) LinkCandidates(ctx context.Context, setID, ownerID int) ([]Set, error) {
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.LinkCandidates(ctx, setID)
}

func (s *Service) AddSet(ctx context.Context, ownerID int, newSet NewSet) (*Set, bool, error) {
	if newSet.Difficulty == "" {
		newSet.Difficulty = DifficultyMedium
	}
	if err := newSet.Validate(); err != nil {
		return nil, false, err
	}

	workoutOwner, exerciseOwner, err := s.repo.ParentOwners(ctx, newSet.WorkoutID, newSet.ExerciseID)
	if err != nil {
		return nil, false, err
	}
	if workoutOwner != ownerID || exerciseOwner != ownerID {
		return nil, false, fmt.Errorf("workout %d / exercise %d: %w", newSet.WorkoutID, newSet.ExerciseID, ErrUnauthorized)
	}

	added, updated, err := s.repo.Add(ctx, newSet)
	if err != nil {
		return nil, false, fmt.Errorf("add set: %w", err)
	}
	s.invalidate(ownerID)
	return added, updated, nil
}

func (s *Service) UpdateSet(ctx context.Context, setID, ownerID int, update SetUpdate) (*Set, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, setID, update); err != nil {
		return nil, fmt.Errorf("update set %d: %w", setID, err)
	}
	s.invalidate(ownerID)
	return s.repo.Get(ctx, setID)
}

func (s *Service) CompleteSet(ctx context.Context, setID, ownerID int) (*Set, error) {
	if err := s.authorize(ctx, setID, ownerID); err != nil {
		return nil, err
	}
	if err := s.repo.Complete(ctx, setID, s.now()); err != nil {
		return nil, fmt.Errorf("complete set %d: %w", setID, err)
	}
	s.invalidate(ownerID)
	return s.repo.Get(ctx, setID)
}

func (s *Service) ListForWorkout(ctx context.Context, workoutID, ownerID int) ([]Set, error) {
	owner, err := s.repo.WorkoutOwner(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if owner != ownerID {
		return nil, fmt.Errorf("workout %d: %w", workoutID, ErrUnauthorized)
	}
	return s.repo.ListForWorkout(ctx, workoutID)
}
