package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

type ImportResult struct {
	Exercises      int `json:"exercises"`
	Workouts       int `json:"workouts"`
	SetsImported   int `json:"setsImported"`
	SetsSkipped    int `json:"setsSkipped"`
	Warmups        int `json:"warmups"`
	WarmupsSkipped int `json:"warmupsSkipped"`
}

// Importer copies a legacy snapshot into the database for one owner.
type Importer struct {
	db db.TxBeginner
}

func NewImporter(db db.TxBeginner) *Importer {
	return &Importer{
		db: db,
	}
}

// Import maps legacy rows onto the owner's exercises and workouts, matching
// exercises by name and workouts by date. Sets already present at the same
// (workout, exercise, set number) are skipped, so a re-import is harmless.
// Everything runs in one transaction and touched workouts are marked stale.
func (i *Importer) Import(ctx context.Context, snap *Snapshot, ownerID int) (_ ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "legacy.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	var result ImportResult
	err = db.WithSerializableTx(ctx, i.db, "legacy.import", func(tx pgx.Tx) error {
		result = ImportResult{}

		exerciseIDs := make(map[int]int, len(snap.Exercises))
		for _, e := range snap.Exercises {
			var id int
			err := tx.QueryRow(ctx,
				`INSERT INTO exercise (user_id, name, created_at)
					VALUES ($1, $2, COALESCE($3::timestamptz, now()))
				ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`,
				ownerID, e.Name, nonZero(e.CreatedAt),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", e.Name, err)
			}
			exerciseIDs[e.ID] = id
			result.Exercises++
		}

		workoutIDs := make(map[int]int, len(snap.Workouts))
		for _, w := range snap.Workouts {
			var id int
			err := tx.QueryRow(ctx,
				`INSERT INTO workout (user_id, date, notes, created_at, durations_stale)
					VALUES ($1, $2::date, $3, COALESCE($4::timestamptz, now()), true)
				ON CONFLICT (user_id, date) DO UPDATE
					SET notes = CASE WHEN workout.notes = '' THEN EXCLUDED.notes ELSE workout.notes END,
						durations_stale = true
				RETURNING id`,
				ownerID, w.Date, w.Notes, nonZero(w.CreatedAt),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("import workout %s: %w", w.Date, err)
			}
			workoutIDs[w.ID] = id
			result.Workouts++
		}

		batch := &pgx.Batch{}
		for _, s := range snap.Sets {
			workoutID, okW := workoutIDs[s.WorkoutID]
			exerciseID, okE := exerciseIDs[s.ExerciseID]
			if !okW || !okE {
				log.Warnf("legacy set %d: dangling workout %d / exercise %d, skipped", s.ID, s.WorkoutID, s.ExerciseID)
				result.SetsSkipped++
				continue
			}
			var supersetID *string
			if s.SupersetID != nil {
				v := s.SupersetID.String()
				supersetID = &v
			}
			batch.Queue(
				`INSERT INTO workout_set
					(workout_id, exercise_id, set_number, weight, reps, difficulty,
					 created_at, completed_at, duration_seconds, duration_cleaned, superset_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::uuid)
				ON CONFLICT (workout_id, exercise_id, set_number) DO NOTHING`,
				workoutID, exerciseID, s.SetNumber, s.Weight, s.Reps, string(s.Difficulty),
				s.CreatedAt, s.CompletedAt, s.DurationSeconds, s.DurationCleaned, supersetID,
			)
		}
		imported, skipped, err := execCounting(ctx, tx, batch)
		if err != nil {
			return fmt.Errorf("import sets: %w", err)
		}
		result.SetsImported += imported
		result.SetsSkipped += skipped

		batch = &pgx.Batch{}
		for _, wu := range snap.Warmups {
			workoutID, ok := workoutIDs[wu.WorkoutID]
			if !ok {
				result.WarmupsSkipped++
				continue
			}
			batch.Queue(
				`INSERT INTO warmup
					(workout_id, type, duration_seconds, distance_meters, avg_heart_rate, calories, notes, created_at)
				SELECT $1::integer, $2::varchar, $3::integer, $4::double precision, $5::integer, $6::integer, $7::text, $8::timestamptz
				WHERE NOT EXISTS (
					SELECT 1 FROM warmup WHERE workout_id = $1::integer AND type = $2::varchar AND created_at = $8::timestamptz
				)`,
				workoutID, wu.Type, wu.DurationSeconds, wu.DistanceMeters, wu.AvgHeartRate, wu.Calories, wu.Notes, wu.CreatedAt,
			)
		}
		imported, skipped, err = execCounting(ctx, tx, batch)
		if err != nil {
			return fmt.Errorf("import warmups: %w", err)
		}
		result.Warmups += imported
		result.WarmupsSkipped += skipped

		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	log.Infof("legacy import for owner %d: %+v", ownerID, result)
	return result, nil
}

// execCounting sends the batch and counts statements that wrote a row.
func execCounting(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) (written, skipped int, err error) {
	if batch.Len() == 0 {
		return 0, 0, nil
	}
	br := tx.SendBatch(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for n := 0; n < batch.Len(); n++ {
		tag, err := br.Exec()
		if err != nil {
			return written, skipped, fmt.Errorf("statement %d: %w", n, err)
		}
		if tag.RowsAffected() > 0 {
			written++
		} else {
			skipped++
		}
	}
	return written, skipped, nil
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
