package exercises

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with this name already exists")
	ErrUnauthorized     = errors.New("exercise belongs to another user")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

type Exercise struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	MuscleGroups []string  `json:"muscleGroups"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Normalize trims the name and drops empty muscle groups.
func (e *Exercise) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	groups := make([]string, 0, len(e.MuscleGroups))
	for _, g := range e.MuscleGroups {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	e.MuscleGroups = groups
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.Join(ErrInvalidExercise, errors.New("name empty"))
	}
	return nil
}
