package durations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// WorkoutIDs lists the workouts a run with the given policy covers, newest first.
func (r *Repo) WorkoutIDs(ctx context.Context, policy Policy) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.durations.workout-ids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("scope", policy.Scope.String()))
	span.SetAttributes(attribute.Int("batch_size", policy.BatchSize))
	span.SetAttributes(attribute.Int("owner_id", policy.OwnerID))

	rows, err := r.db.Query(ctx, `
		SELECT id FROM workout
		WHERE ($1::boolean IS FALSE OR durations_stale)
			AND ($2::int = 0 OR user_id = $2)
		ORDER BY date DESC, id DESC
		LIMIT NULLIF($3::int, 0)`,
		policy.Scope == ScopeStale, policy.OwnerID, policy.BatchSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	return ids, nil
}

// RecomputeWorkout loads the timings of one workout, lets compute derive the
// new durations and writes them back, all in one serializable transaction.
// The workout is no longer stale afterwards.
func (r *Repo) RecomputeWorkout(
	ctx context.Context,
	workoutID int,
	compute func(WorkoutTimings) WorkoutResult,
) (_ WorkoutResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.durations.recompute-workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))

	var result WorkoutResult
	err = db.WithSerializableTx(ctx, r.db, "durations.recompute", func(tx pgx.Tx) error {
		timings, err := loadTimings(ctx, tx, workoutID)
		if err != nil {
			return err
		}

		result = compute(timings)

		batch := &pgx.Batch{}
		for _, d := range result.Durations {
			batch.Queue(`
				UPDATE workout_set
				SET duration_seconds = $1, duration_cleaned = $2, duration_flagged = $3
				WHERE id = $4`,
				d.Raw, d.Cleaned, d.Flagged, d.SetID,
			)
		}
		batch.Queue(`UPDATE workout SET durations_stale = false WHERE id = $1`, workoutID)

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("write durations: %w", err)
		}
		return nil
	})
	if err != nil {
		return WorkoutResult{}, err
	}

	span.SetAttributes(attribute.Int("sets_updated", result.SetsUpdated))
	span.SetAttributes(attribute.Int("outliers_found", result.OutliersFound))
	return result, nil
}

func loadTimings(ctx context.Context, tx pgx.Tx, workoutID int) (WorkoutTimings, error) {
	timings := WorkoutTimings{WorkoutID: workoutID}

	rows, err := tx.Query(ctx, `
		SELECT id, exercise_id, created_at, completed_at
		FROM workout_set
		WHERE workout_id = $1
		ORDER BY created_at, id`,
		workoutID,
	)
	if err != nil {
		return timings, fmt.Errorf("query sets: %w", err)
	}
	timings.Sets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (SetTiming, error) {
		var s SetTiming
		err := row.Scan(&s.SetID, &s.ExerciseID, &s.CreatedAt, &s.CompletedAt)
		return s, err
	})
	if err != nil {
		return timings, fmt.Errorf("collect sets: %w", err)
	}

	var w WarmupTiming
	err = tx.QueryRow(ctx, `
		SELECT created_at, duration_seconds
		FROM warmup
		WHERE workout_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		workoutID,
	).Scan(&w.CreatedAt, &w.DurationSeconds)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return timings, fmt.Errorf("query last warmup: %w", err)
	default:
		timings.LastWarmup = &w
	}

	return timings, nil
}
