package workouts

import (
	"errors"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/sets"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrWarmupNotFound  = errors.New("warmup not found")
	ErrUnauthorized    = errors.New("workout belongs to another user")
	ErrInvalidWarmup   = errors.New("invalid warmup")
	ErrInvalidDate     = errors.New("invalid date")
)

type Workout struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Date           string    `json:"date"`
	Notes          string    `json:"notes"`
	DurationsStale bool      `json:"durationsStale"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Warmup struct {
	ID              int       `json:"id"`
	WorkoutID       int       `json:"workoutId"`
	Type            string    `json:"type"`
	DurationSeconds int       `json:"durationSeconds"`
	DistanceMeters  *float64  `json:"distanceMeters,omitempty"`
	AvgHeartRate    *int      `json:"avgHeartRate,omitempty"`
	Difficulty      *string   `json:"difficulty,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (w Warmup) Validate() error {
	if w.Type == "" {
		return errors.Join(ErrInvalidWarmup, errors.New("type empty"))
	}
	if w.DurationSeconds < 0 {
		return errors.Join(ErrInvalidWarmup, errors.New("negative duration"))
	}
	return nil
}

// Details is a workout with everything logged in it.
type Details struct {
	Workout
	Sets                 []sets.Set `json:"sets"`
	Warmups              []Warmup   `json:"warmups"`
	TotalDurationSeconds int        `json:"totalDurationSeconds"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}
