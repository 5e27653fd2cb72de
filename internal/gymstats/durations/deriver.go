package durations

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MaxRestSeconds is the longest raw rest duration accepted as-is.
const MaxRestSeconds = 1800

// AnomalyPolicy decides what happens to a raw duration that is negative or
// longer than MaxRestSeconds.
type AnomalyPolicy string

const (
	// AnomalyAbs keeps the absolute value of the anomalous duration.
	AnomalyAbs AnomalyPolicy = "abs"
	// AnomalyFlag drops the value and flags the set for review.
	AnomalyFlag AnomalyPolicy = "flag"
)

func ParseAnomalyPolicy(s string) (AnomalyPolicy, error) {
	switch p := AnomalyPolicy(s); p {
	case AnomalyAbs, AnomalyFlag:
		return p, nil
	case "":
		return AnomalyAbs, nil
	}
	return "", fmt.Errorf("unknown anomaly policy %q", s)
}

type SetTiming struct {
	SetID       int
	ExerciseID  int
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type WarmupTiming struct {
	CreatedAt       time.Time
	DurationSeconds int
}

func (w WarmupTiming) End() time.Time {
	return w.CreatedAt.Add(time.Duration(w.DurationSeconds) * time.Second)
}

type Derived struct {
	SetID      int
	ExerciseID int
	Seconds    *int
	Flagged    bool
}

// Derive computes the rest duration preceding each set of one workout.
// Sets are taken in created_at order (id breaks ties) regardless of exercise:
//   - the first set rests since the end of the last warmup, or has no
//     duration without a warmup or when the warmup ended after it started
//   - every other set rests since the previous set was completed, or
//     created when it was never completed
//
// Durations are whole seconds rounded half up.
func Derive(setTimings []SetTiming, lastWarmup *WarmupTiming, policy AnomalyPolicy) []Derived {
	ordered := make([]SetTiming, len(setTimings))
	copy(ordered, setTimings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].SetID < ordered[j].SetID
	})

	derived := make([]Derived, 0, len(ordered))
	for i, s := range ordered {
		d := Derived{SetID: s.SetID, ExerciseID: s.ExerciseID}

		var raw int
		hasRaw := false
		if i == 0 {
			if lastWarmup != nil {
				raw = roundSeconds(s.CreatedAt.Sub(lastWarmup.End()))
				hasRaw = raw >= 0
			}
		} else {
			prev := ordered[i-1]
			prevTime := prev.CreatedAt
			if prev.CompletedAt != nil {
				prevTime = *prev.CompletedAt
			}
			raw = roundSeconds(s.CreatedAt.Sub(prevTime))
			hasRaw = true
		}

		if hasRaw {
			if raw < 0 || raw > MaxRestSeconds {
				switch policy {
				case AnomalyFlag:
					d.Flagged = true
					hasRaw = false
				default:
					raw = absInt(raw)
				}
			}
		}
		if hasRaw {
			d.Seconds = &raw
		}

		derived = append(derived, d)
	}

	return derived
}

func roundSeconds(d time.Duration) int {
	return roundHalfUp(d.Seconds())
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
