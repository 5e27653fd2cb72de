package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/2beens/gymlog/internal/gymstats/sets"
)

// legacyTimeLayouts are the timestamp shapes found in the old database:
// SQLite CURRENT_TIMESTAMP and JavaScript toISOString.
var legacyTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
	time.RFC3339Nano,
	"2006-01-02",
}

type LegacyExercise struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

type LegacyWorkout struct {
	ID        int
	Date      string
	Notes     string
	CreatedAt time.Time
}

type LegacySet struct {
	ID              int
	WorkoutID       int
	ExerciseID      int
	SetNumber       int
	Weight          float64
	Reps            int
	Difficulty      sets.Difficulty
	CreatedAt       time.Time
	CompletedAt     *time.Time
	DurationSeconds *int
	DurationCleaned *int
	SupersetID      *sets.SupersetID
}

type LegacyWarmup struct {
	ID              int
	WorkoutID       int
	Type            string
	DurationSeconds int
	DistanceMeters  *float64
	AvgHeartRate    *int
	Calories        *int
	Notes           string
	CreatedAt       time.Time
}

// Snapshot is everything read from a legacy training database.
type Snapshot struct {
	Exercises []LegacyExercise
	Workouts  []LegacyWorkout
	Sets      []LegacySet
	Warmups   []LegacyWarmup
}

// OpenSQLite opens a legacy training database read-only.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open legacy db %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping legacy db %s: %w", path, err)
	}
	return db, nil
}

func parseLegacyTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown time format [%s]", raw)
}

func parseNullTime(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := parseLegacyTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func columns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// optional selects col when the table has it, NULL otherwise.
func optional(cols map[string]bool, col string) string {
	if cols[col] {
		return col
	}
	return "NULL"
}

// ReadSnapshot reads the legacy tables. Columns added by later versions of
// the old app (superset_id, warmups) are read when present.
func ReadSnapshot(ctx context.Context, db *sql.DB) (*Snapshot, error) {
	snap := &Snapshot{}

	exRows, err := db.QueryContext(ctx, `SELECT id, name, CAST(COALESCE(created_at, '') AS TEXT) FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var e LegacyExercise
		var createdAt string
		if err := exRows.Scan(&e.ID, &e.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.CreatedAt, _ = parseLegacyTime(createdAt)
		snap.Exercises = append(snap.Exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	wRows, err := db.QueryContext(ctx, `SELECT id, date, COALESCE(notes, ''), CAST(COALESCE(created_at, '') AS TEXT) FROM workouts ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer wRows.Close()
	for wRows.Next() {
		var w LegacyWorkout
		var createdAt string
		if err := wRows.Scan(&w.ID, &w.Date, &w.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.CreatedAt, _ = parseLegacyTime(createdAt)
		snap.Workouts = append(snap.Workouts, w)
	}
	if err := wRows.Err(); err != nil {
		return nil, err
	}

	setCols, err := columns(ctx, db, "sets")
	if err != nil {
		return nil, err
	}
	sRows, err := db.QueryContext(ctx, `
		SELECT id, workout_id, exercise_id, set_number, weight, reps,
			COALESCE(difficulty, ''),
			CAST(COALESCE(created_at, '') AS TEXT),
			CAST(`+optional(setCols, "completed_at")+` AS TEXT),
			`+optional(setCols, "duration_seconds")+`,
			`+optional(setCols, "duration_cleaned")+`,
			`+optional(setCols, "superset_id")+`
		FROM sets ORDER BY workout_id, exercise_id, set_number`)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer sRows.Close()
	supersetIDs := make(legacySupersetIDs)
	for sRows.Next() {
		var s LegacySet
		var difficulty, createdAt string
		var completedAt, supersetID sql.NullString
		var duration, cleaned sql.NullInt64
		if err := sRows.Scan(
			&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber, &s.Weight, &s.Reps,
			&difficulty, &createdAt, &completedAt, &duration, &cleaned, &supersetID,
		); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}

		if s.CreatedAt, err = parseLegacyTime(createdAt); err != nil {
			return nil, fmt.Errorf("set %d created_at: %w", s.ID, err)
		}
		if s.CompletedAt, err = parseNullTime(completedAt); err != nil {
			return nil, fmt.Errorf("set %d completed_at: %w", s.ID, err)
		}
		s.DurationSeconds = nullInt(duration)
		s.DurationCleaned = nullInt(cleaned)

		s.Difficulty = sets.Difficulty(difficulty)
		if !s.Difficulty.Valid() {
			s.Difficulty = sets.DifficultyMedium
		}
		if supersetID.Valid && supersetID.String != "" {
			ssID := supersetIDs.resolve(supersetID.String)
			s.SupersetID = &ssID
		}
		snap.Sets = append(snap.Sets, s)
	}
	if err := sRows.Err(); err != nil {
		return nil, err
	}

	warmupCols, err := columns(ctx, db, "warmups")
	if err != nil {
		return nil, err
	}
	if len(warmupCols) == 0 {
		return snap, nil
	}
	wuRows, err := db.QueryContext(ctx, `
		SELECT id, workout_id, COALESCE(type, ''), COALESCE(duration_seconds, 0),
			`+optional(warmupCols, "distance_meters")+`,
			`+optional(warmupCols, "avg_heart_rate")+`,
			`+optional(warmupCols, "calories")+`,
			COALESCE(`+optional(warmupCols, "notes")+`, ''),
			CAST(COALESCE(created_at, '') AS TEXT)
		FROM warmups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query warmups: %w", err)
	}
	defer wuRows.Close()
	for wuRows.Next() {
		var wu LegacyWarmup
		var distance sql.NullFloat64
		var heartRate, calories sql.NullInt64
		var createdAt string
		if err := wuRows.Scan(
			&wu.ID, &wu.WorkoutID, &wu.Type, &wu.DurationSeconds,
			&distance, &heartRate, &calories, &wu.Notes, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan warmup: %w", err)
		}
		if wu.CreatedAt, err = parseLegacyTime(createdAt); err != nil {
			return nil, fmt.Errorf("warmup %d created_at: %w", wu.ID, err)
		}
		wu.DistanceMeters = nullFloat(distance)
		wu.AvgHeartRate = nullInt(heartRate)
		wu.Calories = nullInt(calories)
		snap.Warmups = append(snap.Warmups, wu)
	}
	return snap, wuRows.Err()
}

// legacySupersetIDs keeps superset groups together when the old database
// used ids that are not UUIDs: each distinct legacy id gets one fresh id.
type legacySupersetIDs map[string]sets.SupersetID

func (m legacySupersetIDs) resolve(legacyID string) sets.SupersetID {
	if id, ok := m[legacyID]; ok {
		return id
	}
	id := sets.NewSupersetID()
	if parsed, err := uuid.Parse(legacyID); err == nil {
		id = sets.SupersetID(parsed)
	} else {
		log.Debugf("legacy superset id [%s] is not a uuid, minted %s", legacyID, id)
	}
	m[legacyID] = id
	return id
}
