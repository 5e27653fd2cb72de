package durations

import "time"

type WorkoutTimings struct {
	WorkoutID  int
	Sets       []SetTiming
	LastWarmup *WarmupTiming
}

// SetDurations is what gets written back to one set.
type SetDurations struct {
	SetID   int
	Raw     *int
	Cleaned *int
	Flagged bool
}

type WorkoutResult struct {
	Durations     []SetDurations
	SetsUpdated   int
	OutliersFound int
	SetsFlagged   int
}

// ComputeWorkout derives the raw durations of a workout and cleans them per
// exercise. Sets without a raw duration get no cleaned duration either.
func ComputeWorkout(timings WorkoutTimings, policy Policy) WorkoutResult {
	derived := Derive(timings.Sets, timings.LastWarmup, policy.Anomaly)

	var result WorkoutResult
	samplesByExercise := make(map[int][]Sample)
	var exerciseOrder []int
	for _, d := range derived {
		if d.Flagged {
			result.SetsFlagged++
		}
		if d.Seconds == nil {
			continue
		}
		result.SetsUpdated++
		if _, ok := samplesByExercise[d.ExerciseID]; !ok {
			exerciseOrder = append(exerciseOrder, d.ExerciseID)
		}
		samplesByExercise[d.ExerciseID] = append(samplesByExercise[d.ExerciseID], Sample{SetID: d.SetID, Seconds: *d.Seconds})
	}

	cleanedBySet := make(map[int]int, result.SetsUpdated)
	for _, exerciseID := range exerciseOrder {
		cleaned, outliers := Clean(samplesByExercise[exerciseID], policy.Bounds)
		result.OutliersFound += outliers
		for _, c := range cleaned {
			cleanedBySet[c.SetID] = c.Seconds
		}
	}

	result.Durations = make([]SetDurations, 0, len(derived))
	for _, d := range derived {
		sd := SetDurations{SetID: d.SetID, Raw: d.Seconds, Flagged: d.Flagged}
		if v, ok := cleanedBySet[d.SetID]; ok {
			sd.Cleaned = &v
		}
		result.Durations = append(result.Durations, sd)
	}

	return result
}

type Result struct {
	WorkoutsProcessed int           `json:"workoutsProcessed"`
	WorkoutsFailed    int           `json:"workoutsFailed"`
	SetsUpdated       int           `json:"setsUpdated"`
	OutliersFound     int           `json:"outliersFound"`
	SetsFlagged       int           `json:"setsFlagged"`
	Elapsed           time.Duration `json:"-"`
}

func (r *Result) add(w WorkoutResult) {
	r.WorkoutsProcessed++
	r.SetsUpdated += w.SetsUpdated
	r.OutliersFound += w.OutliersFound
	r.SetsFlagged += w.SetsFlagged
}
