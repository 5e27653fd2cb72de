package durations

import (
	"math"
	"sort"
)

// Bounds clamp the Tukey fences of the cleaner.
type Bounds struct {
	Floor   float64
	Ceiling float64
}

var (
	GeneralBounds   = Bounds{Floor: 0, Ceiling: math.Inf(1)}
	ScheduledBounds = Bounds{Floor: 10, Ceiling: 600}
)

// MinCleanSamples is the smallest sample count the fences are computed for.
const MinCleanSamples = 4

type Sample struct {
	SetID   int
	Seconds int
}

type Cleaned struct {
	SetID   int
	Seconds int
	Outlier bool
}

// Clean replaces outliers of one (workout, exercise) group by the rounded
// median of the group. A sample is an outlier outside
// [max(Floor, Q1-1.5*IQR), min(Ceiling, Q3+1.5*IQR)]. Groups smaller than
// MinCleanSamples pass through unchanged. Results are in ascending order of
// the raw value.
func Clean(samples []Sample, bounds Bounds) (_ []Cleaned, outliers int) {
	if len(samples) == 0 {
		return nil, 0
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Seconds != sorted[j].Seconds {
			return sorted[i].Seconds < sorted[j].Seconds
		}
		return sorted[i].SetID < sorted[j].SetID
	})

	cleaned := make([]Cleaned, len(sorted))
	for i, s := range sorted {
		cleaned[i] = Cleaned{SetID: s.SetID, Seconds: s.Seconds}
	}

	n := len(sorted)
	if n < MinCleanSamples {
		return cleaned, 0
	}

	q1 := float64(sorted[n/4].Seconds)
	q3 := float64(sorted[n*3/4].Seconds)
	iqr := q3 - q1
	lower := math.Max(bounds.Floor, q1-1.5*iqr)
	upper := math.Min(bounds.Ceiling, q3+1.5*iqr)
	replacement := roundHalfUp(median(sorted))

	for i, s := range sorted {
		v := float64(s.Seconds)
		if v < lower || v > upper {
			cleaned[i].Seconds = replacement
			cleaned[i].Outlier = true
			outliers++
		}
	}

	return cleaned, outliers
}

func median(sorted []Sample) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2].Seconds)
	}
	return float64(sorted[n/2-1].Seconds+sorted[n/2].Seconds) / 2
}
