package sets

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

// Link puts two sets into one superset group:
//   - neither grouped: a new id is minted for both
//   - one grouped: the other adopts its id
//   - same group: nothing changes
//   - different groups: every set of B's group (owned by ownerID) moves to A's group
func (r *Repo) Link(ctx context.Context, setIDA, setIDB, ownerID int) (_ LinkResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.link")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set_a", setIDA))
	span.SetAttributes(attribute.Int("set_b", setIDB))

	var result LinkResult
	err = db.WithSerializableTx(ctx, r.db, "sets.link", func(tx pgx.Tx) error {
		groups, err := lockGroups(ctx, tx, setIDA, setIDB)
		if err != nil {
			return err
		}
		groupA, groupB := groups[setIDA], groups[setIDB]

		switch {
		case groupA == nil && groupB == nil:
			result = LinkResult{SupersetID: NewSupersetID(), Outcome: LinkMinted}
			return setGroup(ctx, tx, &result.SupersetID, setIDA, setIDB)
		case groupA != nil && groupB == nil:
			result = LinkResult{SupersetID: *groupA, Outcome: LinkAdopted}
			return setGroup(ctx, tx, groupA, setIDB)
		case groupA == nil && groupB != nil:
			result = LinkResult{SupersetID: *groupB, Outcome: LinkAdopted}
			return setGroup(ctx, tx, groupB, setIDA)
		case *groupA == *groupB:
			result = LinkResult{SupersetID: *groupA, Outcome: LinkNoop}
			return nil
		default:
			result = LinkResult{SupersetID: *groupA, Outcome: LinkMerged}
			if _, err := tx.Exec(ctx, `
				UPDATE workout_set s SET superset_id = $1::uuid
				FROM workout w
				WHERE w.id = s.workout_id AND w.user_id = $3 AND s.superset_id = $2::uuid`,
				groupA.String(), groupB.String(), ownerID,
			); err != nil {
				return fmt.Errorf("merge superset groups: %w", err)
			}
			return nil
		}
	})
	if err != nil {
		return LinkResult{}, err
	}

	span.SetAttributes(attribute.String("superset_id", result.SupersetID.String()))
	span.SetAttributes(attribute.String("outcome", string(result.Outcome)))
	return result, nil
}

// lockGroups reads the superset ids of the given sets, locking their rows.
func lockGroups(ctx context.Context, tx pgx.Tx, setIDs ...int) (map[int]*SupersetID, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, superset_id::text FROM workout_set WHERE id = ANY($1) FOR UPDATE`,
		setIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("lock sets: %w", err)
	}
	defer rows.Close()

	groups := make(map[int]*SupersetID, len(setIDs))
	for rows.Next() {
		var id int
		var group *string
		if err := rows.Scan(&id, &group); err != nil {
			return nil, fmt.Errorf("scan set group: %w", err)
		}
		groups[id] = nil
		if group != nil {
			parsed, err := ParseSupersetID(*group)
			if err != nil {
				return nil, err
			}
			groups[id] = &parsed
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range setIDs {
		if _, ok := groups[id]; !ok {
			return nil, fmt.Errorf("set %d: %w", id, ErrSetNotFound)
		}
	}
	return groups, nil
}

func setGroup(ctx context.Context, tx pgx.Tx, group *SupersetID, setIDs ...int) error {
	if _, err := tx.Exec(ctx,
		`UPDATE workout_set SET superset_id = $1::uuid WHERE id = ANY($2)`,
		group.String(), setIDs,
	); err != nil {
		return fmt.Errorf("assign superset group: %w", err)
	}
	return nil
}

// Unlink removes a set from its superset group. The rest of the group keeps
// its id. Unlinking an ungrouped set is a no-op.
func (r *Repo) Unlink(ctx context.Context, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.unlink")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", setID))

	tag, err := r.db.Exec(ctx, `UPDATE workout_set SET superset_id = NULL WHERE id = $1`, setID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// Partners returns the other sets sharing the set's superset group within
// the owner's workouts.
func (r *Repo) Partners(ctx context.Context, setID, ownerID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.partners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", setID))

	rows, err := r.db.Query(ctx,
		`SELECT `+setColumns+setFrom+`
		JOIN workout w ON w.id = s.workout_id
		WHERE s.superset_id = (SELECT superset_id FROM workout_set WHERE id = $1)
			AND s.id <> $1
			AND w.user_id = $2
		ORDER BY s.created_at, s.id`,
		setID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2sets(rows)
}

// LinkCandidates returns sets of other exercises logged in the same workout,
// the usual partners of a superset.
func (r *Repo) LinkCandidates(ctx context.Context, setID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.link-candidates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", setID))

	source, err := getSet(ctx, r.db, setID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+setColumns+setFrom+`
		WHERE s.workout_id = $1 AND s.exercise_id <> $2
		ORDER BY s.exercise_id, s.set_number`,
		source.WorkoutID, source.ExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2sets(rows)
}

