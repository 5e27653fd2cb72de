package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/gymstats/exercises"
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

// SetRows returns the owner's sets done on or after from. A non-nil
// exerciseID narrows the result to that exercise.
func (r *Repo) SetRows(ctx context.Context, ownerID int, from time.Time, exerciseID *int) (_ []SetRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.set-rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))
	span.SetAttributes(attribute.String("from", from.String()))

	rows, err := r.db.Query(
		ctx,
		`SELECT w.id, w.date, e.id, e.name, s.weight, s.reps, s.duration_seconds, s.duration_cleaned
			FROM workout_set s
			JOIN workout w ON w.id = s.workout_id
			JOIN exercise e ON e.id = s.exercise_id
			WHERE w.user_id = $1
			  AND w.date >= $2::date
			  AND ($3::int IS NULL OR s.exercise_id = $3)
			ORDER BY w.date, s.created_at, s.id`,
		ownerID, from, exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	setRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SetRow, error) {
		var sr SetRow
		err := row.Scan(
			&sr.WorkoutID, &sr.Date, &sr.ExerciseID, &sr.ExerciseName,
			&sr.Weight, &sr.Reps, &sr.DurationSeconds, &sr.DurationCleaned,
		)
		return sr, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect set rows: %w", err)
	}
	span.SetAttributes(attribute.Int("rows", len(setRows)))
	return setRows, nil
}

// Exercise returns the owner and name of an exercise.
func (r *Repo) Exercise(ctx context.Context, exerciseID int) (ownerID int, name string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `SELECT user_id, name FROM exercise WHERE id = $1`, exerciseID).Scan(&ownerID, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", exercises.ErrExerciseNotFound
	}
	return ownerID, name, err
}
