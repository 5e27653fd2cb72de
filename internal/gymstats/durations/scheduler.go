package durations

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultInterval = 5 * time.Minute

type recomputer interface {
	Recompute(ctx context.Context, policy Policy) (Result, error)
}

// Scheduler runs a recompute once on start and then on every tick.
type Scheduler struct {
	recomputer recomputer
	policy     Policy
	interval   time.Duration
}

func NewScheduler(recomputer recomputer, policy Policy, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		recomputer: recomputer,
		policy:     policy,
		interval:   interval,
	}
}

// Start runs the scheduler in its own goroutine until ctx is done. The
// returned channel is closed once the goroutine has exited.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	return done
}

func (s *Scheduler) Run(ctx context.Context) {
	log.Infof("durations scheduler started, interval %s, batch %d", s.interval, s.policy.BatchSize)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("durations scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.recomputer.Recompute(ctx, s.policy); err != nil && ctx.Err() == nil {
		log.Errorf("scheduled durations recompute: %s", err)
	}
}
