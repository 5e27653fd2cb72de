package sets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

// RenumberOffset moves surviving set numbers out of the 1..N range before
// they are reassigned, so the unique (workout, exercise, set_number)
// constraint never sees a transient collision.
const RenumberOffset = 1_000_000

// DeleteWithRenumber deletes a set and closes the gap it leaves, so the
// remaining sets of its (workout, exercise) group are numbered 1..N in their
// previous order. A missing set is reported as Deleted=false.
func (r *Repo) DeleteWithRenumber(ctx context.Context, setID int) (_ DeleteResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", setID))

	var result DeleteResult
	err = db.WithSerializableTx(ctx, r.db, "sets.delete", func(tx pgx.Tx) error {
		result = DeleteResult{}

		var workoutID, exerciseID int
		err := tx.QueryRow(ctx,
			`SELECT workout_id, exercise_id FROM workout_set WHERE id = $1`,
			setID,
		).Scan(&workoutID, &exerciseID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read set meta: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM workout_set WHERE id = $1`, setID); err != nil {
			return fmt.Errorf("delete set: %w", err)
		}

		renumbered, err := renumberGroup(ctx, tx, workoutID, exerciseID)
		if err != nil {
			return err
		}

		if err := markWorkoutStale(ctx, tx, workoutID); err != nil {
			return err
		}

		result = DeleteResult{Deleted: true, Renumbered: renumbered}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	span.SetAttributes(attribute.Bool("deleted", result.Deleted))
	span.SetAttributes(attribute.Int("renumbered", result.Renumbered))
	return result, nil
}

// renumberGroup assigns 1..N to the sets of a (workout, exercise) group in
// their current set_number order and returns N.
func renumberGroup(ctx context.Context, tx pgx.Tx, workoutID, exerciseID int) (int, error) {
	if _, err := tx.Exec(ctx, `
		UPDATE workout_set SET set_number = set_number + $1
		WHERE workout_id = $2 AND exercise_id = $3`,
		RenumberOffset, workoutID, exerciseID,
	); err != nil {
		return 0, fmt.Errorf("bump set numbers: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id FROM workout_set
		WHERE workout_id = $1 AND exercise_id = $2
		ORDER BY set_number, id`,
		workoutID, exerciseID,
	)
	if err != nil {
		return 0, fmt.Errorf("read siblings: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return 0, fmt.Errorf("collect siblings: %w", err)
	}

	for i, id := range ids {
		if _, err := tx.Exec(ctx,
			`UPDATE workout_set SET set_number = $1 WHERE id = $2`,
			i+1, id,
		); err != nil {
			return 0, fmt.Errorf("renumber set %d: %w", id, err)
		}
	}

	return len(ids), nil
}
