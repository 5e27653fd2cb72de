package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const exerciseColumns = `id, user_id, name, icon, muscle_groups, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.MuscleGroups == nil {
		exercise.MuscleGroups = []string{}
	}

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (user_id, name, icon, muscle_groups)
			VALUES ($1, $2, $3, $4)
		RETURNING `+exerciseColumns,
		exercise.UserID, exercise.Name, exercise.Icon, exercise.MuscleGroups,
	)
	added, err := scanExercise(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, fmt.Errorf("%q: %w", exercise.Name, ErrExerciseExists)
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", added.ID))
	return &added, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	e, err := scanExercise(r.db.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercise WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns the owner's catalogue ordered by name.
func (r *Repo) List(ctx context.Context, ownerID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercise WHERE user_id = $1 ORDER BY name, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		return scanExercise(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect exercises: %w", err)
	}
	if exercises == nil {
		exercises = make([]Exercise, 0)
	}
	return exercises, nil
}

func (r *Repo) Rename(ctx context.Context, id int, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `UPDATE exercise SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return fmt.Errorf("%q: %w", name, ErrExerciseExists)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Update replaces the icon and muscle groups; the name is changed by Rename only.
func (r *Repo) Update(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	if exercise.MuscleGroups == nil {
		exercise.MuscleGroups = []string{}
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise SET icon = $1, muscle_groups = $2 WHERE id = $3`,
		exercise.Icon, exercise.MuscleGroups, exercise.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Delete removes the exercise together with all its sets.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) Owner(ctx context.Context, id int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var ownerID int
	if err := r.db.QueryRow(ctx, `SELECT user_id FROM exercise WHERE id = $1`, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrExerciseNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

func scanExercise(row pgx.Row) (Exercise, error) {
	var e Exercise
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Icon, &e.MuscleGroups, &e.CreatedAt)
	return e, err
}
