package workouts

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

const workoutColumns = `id, user_id, date::text, notes, durations_stale, created_at`

const warmupColumns = `
	id, workout_id, type, duration_seconds, distance_meters, avg_heart_rate,
	difficulty, calories, notes, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetOrCreate returns the owner's workout of the given day (YYYY-MM-DD),
// creating it when missing.
func (r *Repo) GetOrCreate(ctx context.Context, ownerID int, date string) (_ *Workout, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get-or-create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	row := r.db.QueryRow(ctx, `
		INSERT INTO workout (user_id, date)
		VALUES ($1, $2::date)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING `+workoutColumns,
		ownerID, date,
	)
	w, err := scanWorkout(row)
	if err == nil {
		return &w, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert workout: %w", err)
	}

	row = r.db.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workout WHERE user_id = $1 AND date = $2::date`,
		ownerID, date,
	)
	w, err = scanWorkout(row)
	if err != nil {
		return nil, false, fmt.Errorf("select workout: %w", err)
	}
	return &w, false, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	w, err := scanWorkout(r.db.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workout WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) GetByDate(ctx context.Context, ownerID int, date string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get-by-date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	w, err := scanWorkout(r.db.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workout WHERE user_id = $1 AND date = $2::date`,
		ownerID, date,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns one page of the owner's workouts, newest first, and the
// total number of workouts.
func (r *Repo) List(ctx context.Context, ownerID, page, size int) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page))
	span.SetAttributes(attribute.Int("size", size))

	if page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("count workouts: %w", err)
	}
	span.SetAttributes(attribute.Int("count_all", total))

	rows, err := r.db.Query(ctx,
		`SELECT `+workoutColumns+` FROM workout
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`,
		ownerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}

	workouts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Workout, error) {
		return scanWorkout(row)
	})
	if err != nil {
		return nil, -1, fmt.Errorf("collect: %w", err)
	}
	if workouts == nil {
		workouts = make([]Workout, 0)
	}
	return workouts, total, nil
}

func (r *Repo) UpdateNotes(ctx context.Context, id int, notes string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update-notes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `UPDATE workout SET notes = $1 WHERE id = $2`, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// Delete removes a workout with its sets and warmups.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// TotalDuration is the warmup time plus the rest time of all sets, preferring
// cleaned over raw rest durations.
func (r *Repo) TotalDuration(ctx context.Context, workoutID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.total-duration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workoutID))

	var total int
	err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(duration_seconds) FROM warmup WHERE workout_id = $1), 0) +
			COALESCE((SELECT SUM(COALESCE(duration_cleaned, duration_seconds)) FROM workout_set WHERE workout_id = $1), 0)`,
		workoutID,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repo) AddWarmup(ctx context.Context, warmup Warmup) (_ *Warmup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add-warmup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", warmup.WorkoutID))

	var added Warmup
	err = db.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var createdAt any
		if !warmup.CreatedAt.IsZero() {
			createdAt = warmup.CreatedAt
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO warmup
				(workout_id, type, duration_seconds, distance_meters, avg_heart_rate, difficulty, calories, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, now()))
			RETURNING `+warmupColumns,
			warmup.WorkoutID, warmup.Type, warmup.DurationSeconds, warmup.DistanceMeters,
			warmup.AvgHeartRate, warmup.Difficulty, warmup.Calories, warmup.Notes, createdAt,
		)
		var err error
		if added, err = scanWarmup(row); err != nil {
			return fmt.Errorf("insert warmup: %w", err)
		}
		return markStale(ctx, tx, warmup.WorkoutID)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("warmup.id", added.ID))
	return &added, nil
}

func (r *Repo) UpdateWarmup(ctx context.Context, warmup Warmup) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update-warmup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", warmup.ID))

	return db.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var workoutID int
		err := tx.QueryRow(ctx, `
			UPDATE warmup
			SET type = $1, duration_seconds = $2, distance_meters = $3, avg_heart_rate = $4,
				difficulty = $5, calories = $6, notes = $7
			WHERE id = $8
			RETURNING workout_id`,
			warmup.Type, warmup.DurationSeconds, warmup.DistanceMeters, warmup.AvgHeartRate,
			warmup.Difficulty, warmup.Calories, warmup.Notes, warmup.ID,
		).Scan(&workoutID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWarmupNotFound
		}
		if err != nil {
			return err
		}
		return markStale(ctx, tx, workoutID)
	})
}

func (r *Repo) DeleteWarmup(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete-warmup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return db.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var workoutID int
		err := tx.QueryRow(ctx, `DELETE FROM warmup WHERE id = $1 RETURNING workout_id`, id).Scan(&workoutID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWarmupNotFound
		}
		if err != nil {
			return err
		}
		return markStale(ctx, tx, workoutID)
	})
}

func (r *Repo) ListWarmups(ctx context.Context, workoutID int) (_ []Warmup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list-warmups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))

	rows, err := r.db.Query(ctx,
		`SELECT `+warmupColumns+` FROM warmup WHERE workout_id = $1 ORDER BY created_at, id`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	warmups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Warmup, error) {
		return scanWarmup(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	if warmups == nil {
		warmups = make([]Warmup, 0)
	}
	return warmups, nil
}

// WarmupOwner returns the owner of the workout a warmup belongs to.
func (r *Repo) WarmupOwner(ctx context.Context, warmupID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.warmup-owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", warmupID))

	var ownerID int
	err = r.db.QueryRow(ctx, `
		SELECT w.user_id FROM warmup wu
		JOIN workout w ON w.id = wu.workout_id
		WHERE wu.id = $1`,
		warmupID,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWarmupNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

func markStale(ctx context.Context, tx pgx.Tx, workoutID int) error {
	if _, err := tx.Exec(ctx, `UPDATE workout SET durations_stale = true WHERE id = $1`, workoutID); err != nil {
		return fmt.Errorf("mark workout %d stale: %w", workoutID, err)
	}
	return nil
}

func scanWorkout(row pgx.Row) (Workout, error) {
	var w Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.Notes, &w.DurationsStale, &w.CreatedAt)
	return w, err
}

func scanWarmup(row pgx.Row) (Warmup, error) {
	var w Warmup
	err := row.Scan(
		&w.ID, &w.WorkoutID, &w.Type, &w.DurationSeconds, &w.DistanceMeters, &w.AvgHeartRate,
		&w.Difficulty, &w.Calories, &w.Notes, &w.CreatedAt,
	)
	return w, err
}
