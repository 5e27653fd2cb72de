package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

// sourceSet is a set logged against a combined superset exercise.
type sourceSet struct {
	ID          int
	WorkoutID   int
	Date        string
	SetNumber   int
	Weight      float64
	Reps        int
	Difficulty  sets.Difficulty
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type PlannedCopy struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
}

// PlannedSet is one source set and the linked copies replacing it.
type PlannedSet struct {
	SourceSetID int             `json:"sourceSetId"`
	WorkoutID   int             `json:"workoutId"`
	Date        string          `json:"date"`
	SetNumber   int             `json:"setNumber"`
	Reps        int             `json:"reps"`
	SupersetID  sets.SupersetID `json:"supersetId"`
	Copies      []PlannedCopy   `json:"copies"`

	difficulty  sets.Difficulty
	createdAt   time.Time
	completedAt *time.Time
}

type PlanTarget struct {
	Name       string `json:"name"`
	ExerciseID int    `json:"exerciseId"`
	// Create is set when the target exercise does not exist yet.
	Create bool `json:"create"`
}

type PlanItem struct {
	Source           string       `json:"source"`
	SourceExerciseID int          `json:"sourceExerciseId"`
	Found            bool         `json:"found"`
	Targets          []PlanTarget `json:"targets"`
	Sets             []PlannedSet `json:"sets"`
}

type Plan struct {
	Items []PlanItem `json:"items"`
}

type MigrationResult struct {
	SupersetsProcessed int `json:"supersetsProcessed"`
	SetsCreated        int `json:"setsCreated"`
	SetsDeleted        int `json:"setsDeleted"`
	ExercisesCreated   int `json:"exercisesCreated"`
	ExercisesDeleted   int `json:"exercisesDeleted"`
}

// buildPlan is the pure part of the migration: every source set gets a
// fresh superset id shared by its copies.
func buildPlan(mapping *Mapping, exerciseIDs map[string]int, setsBySource map[string][]sourceSet) *Plan {
	plan := &Plan{}
	for _, rule := range mapping.Supersets {
		item := PlanItem{Source: rule.Source}
		sourceID, found := exerciseIDs[rule.Source]
		if !found {
			plan.Items = append(plan.Items, item)
			continue
		}
		item.Found = true
		item.SourceExerciseID = sourceID

		for _, name := range rule.Targets {
			id, exists := exerciseIDs[name]
			item.Targets = append(item.Targets, PlanTarget{Name: name, ExerciseID: id, Create: !exists})
		}

		for _, s := range setsBySource[rule.Source] {
			ps := PlannedSet{
				SourceSetID: s.ID,
				WorkoutID:   s.WorkoutID,
				Date:        s.Date,
				SetNumber:   s.SetNumber,
				Reps:        s.Reps,
				SupersetID:  sets.NewSupersetID(),
				difficulty:  s.Difficulty,
				createdAt:   s.CreatedAt,
				completedAt: s.CompletedAt,
			}
			for _, name := range rule.Targets {
				ps.Copies = append(ps.Copies, PlannedCopy{
					Exercise: name,
					Weight:   rule.TargetWeight(name, s.Weight),
				})
			}
			item.Sets = append(item.Sets, ps)
		}
		plan.Items = append(plan.Items, item)
	}
	return plan
}

// SupersetMigrator splits combined superset exercises into linked sets of
// their target exercises.
type SupersetMigrator struct {
	db db.TxBeginner
}

func NewSupersetMigrator(db db.TxBeginner) *SupersetMigrator {
	return &SupersetMigrator{
		db: db,
	}
}

func loadState(ctx context.Context, tx pgx.Tx, mapping *Mapping, ownerID int) (map[string]int, map[string][]sourceSet, error) {
	rows, err := tx.Query(ctx, `SELECT name, id FROM exercise WHERE user_id = $1`, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("query exercises: %w", err)
	}
	exerciseIDs := make(map[string]int)
	var name string
	var id int
	if _, err := pgx.ForEachRow(rows, []any{&name, &id}, func() error {
		exerciseIDs[name] = id
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("read exercises: %w", err)
	}

	setsBySource := make(map[string][]sourceSet)
	for _, rule := range mapping.Supersets {
		sourceID, ok := exerciseIDs[rule.Source]
		if !ok {
			continue
		}
		rows, err := tx.Query(ctx,
			`SELECT s.id, s.workout_id, w.date::text, s.set_number, s.weight, s.reps, s.difficulty, s.created_at, s.completed_at
				FROM workout_set s
				JOIN workout w ON w.id = s.workout_id
				WHERE s.exercise_id = $1
				ORDER BY w.date, s.set_number`,
			sourceID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("query sets of %q: %w", rule.Source, err)
		}
		sourceSets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sourceSet, error) {
			var s sourceSet
			var difficulty string
			err := row.Scan(&s.ID, &s.WorkoutID, &s.Date, &s.SetNumber, &s.Weight, &s.Reps, &difficulty, &s.CreatedAt, &s.CompletedAt)
			s.Difficulty = sets.Difficulty(difficulty)
			return s, err
		})
		if err != nil {
			return nil, nil, fmt.Errorf("read sets of %q: %w", rule.Source, err)
		}
		setsBySource[rule.Source] = sourceSets
	}
	return exerciseIDs, setsBySource, nil
}

// DryRun reports what Execute would do without changing anything.
func (m *SupersetMigrator) DryRun(ctx context.Context, mapping *Mapping, ownerID int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "legacy.supersets.dry-run")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var plan *Plan
	err = db.WithTx(ctx, m.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		exerciseIDs, setsBySource, err := loadState(ctx, tx, mapping, ownerID)
		if err != nil {
			return err
		}
		plan = buildPlan(mapping, exerciseIDs, setsBySource)
		return nil
	})
	return plan, err
}

// Execute applies the migration in one transaction: target exercises are
// created when missing, each source set is copied to every target with the
// next free set number and a shared superset id, then the source sets and
// exercise are deleted.
func (m *SupersetMigrator) Execute(ctx context.Context, mapping *Mapping, ownerID int) (_ MigrationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "legacy.supersets.execute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	var result MigrationResult
	err = db.WithSerializableTx(ctx, m.db, "legacy.supersets", func(tx pgx.Tx) error {
		result = MigrationResult{}

		exerciseIDs, setsBySource, err := loadState(ctx, tx, mapping, ownerID)
		if err != nil {
			return err
		}
		plan := buildPlan(mapping, exerciseIDs, setsBySource)

		for _, item := range plan.Items {
			if !item.Found {
				log.Warnf("superset exercise %q not found, skipped", item.Source)
				continue
			}

			targetIDs := make(map[string]int, len(item.Targets))
			for _, target := range item.Targets {
				if !target.Create {
					targetIDs[target.Name] = target.ExerciseID
					continue
				}
				var id int
				if err := tx.QueryRow(ctx,
					`INSERT INTO exercise (user_id, name) VALUES ($1, $2) RETURNING id`,
					ownerID, target.Name,
				).Scan(&id); err != nil {
					return fmt.Errorf("create exercise %q: %w", target.Name, err)
				}
				targetIDs[target.Name] = id
				result.ExercisesCreated++
			}

			for _, ps := range item.Sets {
				for _, c := range ps.Copies {
					if _, err := tx.Exec(ctx,
						`INSERT INTO workout_set
							(workout_id, exercise_id, set_number, weight, reps, difficulty, created_at, completed_at, superset_id)
						SELECT $1::integer, $2::integer, COALESCE(MAX(set_number), 0) + 1, $3::double precision, $4::integer, $5::varchar, $6::timestamptz, $7::timestamptz, $8::uuid
							FROM workout_set WHERE workout_id = $1::integer AND exercise_id = $2::integer`,
						ps.WorkoutID, targetIDs[c.Exercise], c.Weight, ps.Reps, string(ps.difficulty),
						ps.createdAt, ps.completedAt, ps.SupersetID.String(),
					); err != nil {
						return fmt.Errorf("copy set %d to %q: %w", ps.SourceSetID, c.Exercise, err)
					}
					result.SetsCreated++
				}
			}

			tag, err := tx.Exec(ctx, `DELETE FROM workout_set WHERE exercise_id = $1`, item.SourceExerciseID)
			if err != nil {
				return fmt.Errorf("delete sets of %q: %w", item.Source, err)
			}
			result.SetsDeleted += int(tag.RowsAffected())

			if _, err := tx.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, item.SourceExerciseID); err != nil {
				return fmt.Errorf("delete exercise %q: %w", item.Source, err)
			}
			result.ExercisesDeleted++

			if _, err := tx.Exec(ctx,
				`UPDATE workout SET durations_stale = true
					WHERE id = ANY($1)`,
				workoutIDs(item.Sets),
			); err != nil {
				return fmt.Errorf("mark workouts stale: %w", err)
			}
			result.SupersetsProcessed++
		}
		return nil
	})
	if err != nil {
		return MigrationResult{}, err
	}

	log.Infof("superset migration for owner %d: %+v", ownerID, result)
	return result, nil
}

func workoutIDs(planned []PlannedSet) []int {
	seen := make(map[int]bool)
	ids := make([]int, 0)
	for _, ps := range planned {
		if !seen[ps.WorkoutID] {
			seen[ps.WorkoutID] = true
			ids = append(ids, ps.WorkoutID)
		}
	}
	return ids
}
