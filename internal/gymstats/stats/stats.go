package stats

import "time"

// SetRow is one logged set joined with its workout date and exercise name.
type SetRow struct {
	WorkoutID       int
	Date            time.Time
	ExerciseID      int
	ExerciseName    string
	Weight          float64
	Reps            int
	DurationSeconds *int
	DurationCleaned *int
}

// Volume is weight times reps.
func (r SetRow) Volume() float64 {
	return r.Weight * float64(r.Reps)
}

// Rest prefers the cleaned duration over the raw one.
func (r SetRow) Rest() *int {
	if r.DurationCleaned != nil {
		return r.DurationCleaned
	}
	return r.DurationSeconds
}

// ProgressionPoint aggregates one exercise within one workout.
type ProgressionPoint struct {
	WorkoutID int     `json:"workoutId"`
	Date      string  `json:"date"`
	MaxWeight float64 `json:"maxWeight"`
	AvgWeight float64 `json:"avgWeight"`
	AvgReps   float64 `json:"avgReps"`
	Volume    float64 `json:"volume"`
	Sets      int     `json:"sets"`
}

type Progression struct {
	ExerciseID   int                `json:"exerciseId"`
	ExerciseName string             `json:"exerciseName"`
	From         string             `json:"from"`
	Points       []ProgressionPoint `json:"points"`
}

type WeekStats struct {
	// Week is the ISO year-week, e.g. 2026-W07.
	Week     string  `json:"week"`
	Workouts int     `json:"workouts"`
	Sets     int     `json:"sets"`
	Volume   float64 `json:"volume"`
}

type ExerciseStats struct {
	ExerciseID   int     `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Volume       float64 `json:"volume"`
	// AvgRestSeconds is nil when no set of the exercise has a known rest.
	AvgRestSeconds *float64 `json:"avgRestSeconds"`
}

type Summary struct {
	From      string          `json:"from"`
	Workouts  int             `json:"workouts"`
	Sets      int             `json:"sets"`
	Reps      int             `json:"reps"`
	Volume    float64         `json:"volume"`
	Weekly    []WeekStats     `json:"weekly"`
	Exercises []ExerciseStats `json:"exercises"`
}
