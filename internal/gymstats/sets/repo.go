package sets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

var ErrParentNotFound = errors.New("workout or exercise not found")

const setColumns = `
	s.id, s.workout_id, s.exercise_id, e.name, s.set_number, s.weight, s.reps, s.difficulty,
	s.created_at, s.completed_at, s.duration_seconds, s.duration_cleaned, s.duration_flagged,
	s.superset_id::text`

const setFrom = `
	FROM workout_set s
	JOIN exercise e ON e.id = s.exercise_id`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return getSet(ctx, r.db, id)
}

// Owner returns the user owning the workout the set belongs to.
func (r *Repo) Owner(ctx context.Context, setID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", setID))

	var ownerID int
	err = r.db.QueryRow(ctx, `
		SELECT w.user_id
		FROM workout_set s
		JOIN workout w ON w.id = s.workout_id
		WHERE s.id = $1`,
		setID,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrSetNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

// ParentOwners returns the owners of a workout and an exercise.
func (r *Repo) ParentOwners(ctx context.Context, workoutID, exerciseID int) (workoutOwner, exerciseOwner int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.parent-owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))
	span.SetAttributes(attribute.Int("exercise_id", exerciseID))

	err = r.db.QueryRow(ctx, `
		SELECT w.user_id, e.user_id
		FROM workout w, exercise e
		WHERE w.id = $1 AND e.id = $2`,
		workoutID, exerciseID,
	).Scan(&workoutOwner, &exerciseOwner)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrParentNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return workoutOwner, exerciseOwner, nil
}

func (r *Repo) WorkoutOwner(ctx context.Context, workoutID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.workout-owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))

	var ownerID int
	err = r.db.QueryRow(ctx, `SELECT user_id FROM workout WHERE id = $1`, workoutID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrParentNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

// ListForWorkout returns all sets of a workout in the order they were logged.
func (r *Repo) ListForWorkout(ctx context.Context, workoutID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list-for-workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))

	rows, err := r.db.Query(ctx,
		`SELECT `+setColumns+setFrom+`
		WHERE s.workout_id = $1
		ORDER BY s.created_at, s.id`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2sets(rows)
}

// Add inserts a set. Without an explicit set number the set is appended to
// its (workout, exercise) group. An explicit number that is already taken
// updates the existing row instead; updated reports that case. A number past
// the next free one is ErrInvalidState.
func (r *Repo) Add(ctx context.Context, newSet NewSet) (_ *Set, updated bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", newSet.WorkoutID))
	span.SetAttributes(attribute.Int("exercise_id", newSet.ExerciseID))

	var added *Set
	err = db.WithSerializableTx(ctx, r.db, "sets.add", func(tx pgx.Tx) error {
		var maxNumber int
		if err := tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(set_number), 0)
			FROM workout_set
			WHERE workout_id = $1 AND exercise_id = $2`,
			newSet.WorkoutID, newSet.ExerciseID,
		).Scan(&maxNumber); err != nil {
			return fmt.Errorf("max set number: %w", err)
		}
		setNumber, err := resolveSetNumber(newSet.SetNumber, maxNumber)
		if err != nil {
			return err
		}

		var id int
		if err := tx.QueryRow(ctx, `
			INSERT INTO workout_set (workout_id, exercise_id, set_number, weight, reps, difficulty, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, now()))
			ON CONFLICT (workout_id, exercise_id, set_number) DO UPDATE
				SET weight = EXCLUDED.weight, reps = EXCLUDED.reps, difficulty = EXCLUDED.difficulty
			RETURNING id, (xmax <> 0)`,
			newSet.WorkoutID, newSet.ExerciseID, setNumber,
			newSet.Weight, newSet.Reps, string(newSet.Difficulty), newSet.CreatedAt,
		).Scan(&id, &updated); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return ErrParentNotFound
			}
			return fmt.Errorf("insert set: %w", err)
		}

		if err := markWorkoutStale(ctx, tx, newSet.WorkoutID); err != nil {
			return err
		}

		s, err := getSet(ctx, tx, id)
		if err != nil {
			return err
		}
		added = s
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	span.SetAttributes(attribute.Int("set.id", added.ID))
	return added, updated, nil
}

func (r *Repo) Update(ctx context.Context, id int, update SetUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx,
		`UPDATE workout_set SET weight = $1, reps = $2, difficulty = $3 WHERE id = $4`,
		update.Weight, update.Reps, string(update.Difficulty), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// Complete stamps the set as finished at the given time. The next set's rest
// duration is measured from this timestamp.
func (r *Repo) Complete(ctx context.Context, id int, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return db.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var workoutID int
		err := tx.QueryRow(ctx,
			`UPDATE workout_set SET completed_at = $1 WHERE id = $2 RETURNING workout_id`,
			at, id,
		).Scan(&workoutID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSetNotFound
		}
		if err != nil {
			return err
		}
		return markWorkoutStale(ctx, tx, workoutID)
	})
}

func getSet(ctx context.Context, q querier, id int) (*Set, error) {
	row := q.QueryRow(ctx, `SELECT `+setColumns+setFrom+` WHERE s.id = $1`, id)
	s, err := scanSet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func markWorkoutStale(ctx context.Context, q querier, workoutID int) error {
	if _, err := q.Exec(ctx, `UPDATE workout SET durations_stale = true WHERE id = $1`, workoutID); err != nil {
		return fmt.Errorf("mark workout %d stale: %w", workoutID, err)
	}
	return nil
}

func scanSet(row pgx.Row) (Set, error) {
	var s Set
	var difficulty string
	var supersetID *string
	if err := row.Scan(
		&s.ID, &s.WorkoutID, &s.ExerciseID, &s.ExerciseName, &s.SetNumber, &s.Weight, &s.Reps, &difficulty,
		&s.CreatedAt, &s.CompletedAt, &s.DurationSeconds, &s.DurationCleaned, &s.DurationFlagged,
		&supersetID,
	); err != nil {
		return Set{}, err
	}
	s.Difficulty = Difficulty(difficulty)
	if supersetID != nil {
		id, err := ParseSupersetID(*supersetID)
		if err != nil {
			return Set{}, err
		}
		s.SupersetID = &id
	}
	return s, nil
}

func rows2sets(rows pgx.Rows) ([]Set, error) {
	sets := make([]Set, 0)
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return sets, nil
}
