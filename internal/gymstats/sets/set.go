package sets

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSetNotFound  = errors.New("set not found")
	ErrUnauthorized = errors.New("set belongs to another user")
	ErrInvalidState = errors.New("invalid set state")
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "Leicht"
	DifficultyMedium   Difficulty = "Mittel"
	DifficultyHard     Difficulty = "Schwer"
	DifficultyVeryHard Difficulty = "Sehr schwer"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyVeryHard:
		return true
	}
	return false
}

// SupersetID identifies a superset group: all sets sharing the same value
// were performed back to back.
type SupersetID uuid.UUID

func NewSupersetID() SupersetID {
	return SupersetID(uuid.New())
}

func ParseSupersetID(s string) (SupersetID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SupersetID{}, fmt.Errorf("parse superset id: %w", err)
	}
	return SupersetID(id), nil
}

func (id SupersetID) String() string {
	return uuid.UUID(id).String()
}

func (id SupersetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *SupersetID) UnmarshalText(text []byte) error {
	parsed, err := ParseSupersetID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type Set struct {
	ID              int         `json:"id"`
	WorkoutID       int         `json:"workoutId"`
	ExerciseID      int         `json:"exerciseId"`
	ExerciseName    string      `json:"exerciseName,omitempty"`
	SetNumber       int         `json:"setNumber"`
	Weight          float64     `json:"weight"`
	Reps            int         `json:"reps"`
	Difficulty      Difficulty  `json:"difficulty"`
	CreatedAt       time.Time   `json:"createdAt"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
	DurationSeconds *int        `json:"durationSeconds,omitempty"`
	DurationCleaned *int        `json:"durationCleaned,omitempty"`
	DurationFlagged bool        `json:"durationFlagged,omitempty"`
	SupersetID      *SupersetID `json:"supersetId,omitempty"`
}

// NewSet holds the fields a caller provides when logging a set.
// A zero SetNumber means "next in the group".
type NewSet struct {
	WorkoutID  int        `json:"workoutId"`
	ExerciseID int        `json:"exerciseId"`
	SetNumber  int        `json:"setNumber,omitempty"`
	Weight     float64    `json:"weight"`
	Reps       int        `json:"reps"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

func (s NewSet) Validate() error {
	if s.SetNumber < 0 {
		return fmt.Errorf("%w: negative set number", ErrInvalidState)
	}
	return validateValues(s.Weight, s.Reps, s.Difficulty)
}

// resolveSetNumber picks the number a new set gets in a group whose highest
// number is maxNumber. Zero appends; an explicit number must be taken
// already (1..maxNumber) or be the next one, so numbering stays 1..N.
func resolveSetNumber(requested, maxNumber int) (int, error) {
	if requested == 0 {
		return maxNumber + 1, nil
	}
	if requested < 0 || requested > maxNumber+1 {
		return 0, fmt.Errorf("%w: set number %d, next free is %d", ErrInvalidState, requested, maxNumber+1)
	}
	return requested, nil
}

type SetUpdate struct {
	Weight     float64    `json:"weight"`
	Reps       int        `json:"reps"`
	Difficulty Difficulty `json:"difficulty"`
}

func (u SetUpdate) Validate() error {
	return validateValues(u.Weight, u.Reps, u.Difficulty)
}

func validateValues(weight float64, reps int, difficulty Difficulty) error {
	if weight < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidState)
	}
	if reps < 0 {
		return fmt.Errorf("%w: negative reps", ErrInvalidState)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidState, difficulty)
	}
	return nil
}

type DeleteResult struct {
	Deleted    bool `json:"deleted"`
	Renumbered int  `json:"renumbered"`
}

type LinkOutcome string

const (
	LinkMinted  LinkOutcome = "minted"
	LinkAdopted LinkOutcome = "adopted"
	LinkNoop    LinkOutcome = "noop"
	LinkMerged  LinkOutcome = "merged"
)

type LinkResult struct {
	SupersetID SupersetID  `json:"supersetId"`
	Outcome    LinkOutcome `json:"outcome"`
}
