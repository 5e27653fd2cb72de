package durations

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=recomputer_mocks_test.go -package=durations_test

type durationsRepo interface {
	WorkoutIDs(ctx context.Context, policy Policy) ([]int, error)
	RecomputeWorkout(ctx context.Context, workoutID int, compute func(WorkoutTimings) WorkoutResult) (WorkoutResult, error)
}

type Recomputer struct {
	repo           durationsRepo
	metricsManager *metrics.Manager
}

func NewRecomputer(repo durationsRepo, metricsManager *metrics.Manager) *Recomputer {
	return &Recomputer{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

// Recompute rederives and cleans the rest durations of every workout the
// policy covers. Each workout is handled in its own transaction; a workout
// that fails is logged and skipped. Only failing to list the workouts, or
// the context ending, fails the run.
func (r *Recomputer) Recompute(ctx context.Context, policy Policy) (result Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "durations.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("trigger", policy.Trigger))

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		r.observe(policy, result, err)
	}()

	workoutIDs, err := r.repo.WorkoutIDs(ctx, policy)
	if err != nil {
		return result, fmt.Errorf("list workouts: %w", err)
	}

	compute := func(timings WorkoutTimings) WorkoutResult {
		return ComputeWorkout(timings, policy)
	}

	for _, workoutID := range workoutIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		workoutResult, err := r.repo.RecomputeWorkout(ctx, workoutID, compute)
		if err != nil {
			log.Warnf("[%s] recompute durations of workout %d: %s", policy.Trigger, workoutID, err)
			result.WorkoutsFailed++
			continue
		}
		result.add(workoutResult)
	}

	span.SetAttributes(attribute.Int("workouts_processed", result.WorkoutsProcessed))
	span.SetAttributes(attribute.Int("sets_updated", result.SetsUpdated))
	span.SetAttributes(attribute.Int("outliers_found", result.OutliersFound))
	return result, nil
}

func (r *Recomputer) observe(policy Policy, result Result, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	log.Infof(
		"[%s] durations recompute %s: workouts %d (failed %d), sets updated %d, outliers %d, flagged %d, took %s",
		policy.Trigger, outcome, result.WorkoutsProcessed, result.WorkoutsFailed,
		result.SetsUpdated, result.OutliersFound, result.SetsFlagged, result.Elapsed,
	)

	if r.metricsManager == nil {
		return
	}
	r.metricsManager.CounterRecomputeRuns.WithLabelValues(policy.Trigger, outcome).Inc()
	r.metricsManager.CounterSetsUpdated.Add(float64(result.SetsUpdated))
	r.metricsManager.CounterOutliersFound.Add(float64(result.OutliersFound))
	r.metricsManager.CounterSetsFlagged.Add(float64(result.SetsFlagged))
	r.metricsManager.HistogramRecomputeDuration.Observe(result.Elapsed.Seconds())
}
