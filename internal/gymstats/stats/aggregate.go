package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/2beens/gymlog/pkg"
)

// isoWeek formats t as an ISO year-week, e.g. 2026-W07.
func isoWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// progressionPoints groups rows of a single exercise per workout, ordered by date.
func progressionPoints(rows []SetRow) []ProgressionPoint {
	byWorkout := make(map[int]*ProgressionPoint)
	var order []int
	weightSum := make(map[int]float64)
	repsSum := make(map[int]int)

	for _, r := range rows {
		p, ok := byWorkout[r.WorkoutID]
		if !ok {
			p = &ProgressionPoint{
				WorkoutID: r.WorkoutID,
				Date:      r.Date.Format(pkg.DateLayout),
			}
			byWorkout[r.WorkoutID] = p
			order = append(order, r.WorkoutID)
		}
		p.Sets++
		p.Volume += r.Volume()
		if r.Weight > p.MaxWeight {
			p.MaxWeight = r.Weight
		}
		weightSum[r.WorkoutID] += r.Weight
		repsSum[r.WorkoutID] += r.Reps
	}

	points := make([]ProgressionPoint, 0, len(order))
	for _, id := range order {
		p := byWorkout[id]
		p.AvgWeight = round2(weightSum[id] / float64(p.Sets))
		p.AvgReps = round2(float64(repsSum[id]) / float64(p.Sets))
		p.Volume = round2(p.Volume)
		points = append(points, *p)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

func summarize(rows []SetRow, from time.Time) Summary {
	summary := Summary{
		From:      from.Format(pkg.DateLayout),
		Weekly:    []WeekStats{},
		Exercises: []ExerciseStats{},
	}

	workouts := make(map[int]struct{})
	weeks := make(map[string]*WeekStats)
	weekWorkouts := make(map[string]map[int]struct{})
	exercises := make(map[int]*ExerciseStats)
	restSum := make(map[int]int)
	restCount := make(map[int]int)

	for _, r := range rows {
		workouts[r.WorkoutID] = struct{}{}
		summary.Sets++
		summary.Reps += r.Reps
		summary.Volume += r.Volume()

		wk := isoWeek(r.Date)
		ws, ok := weeks[wk]
		if !ok {
			ws = &WeekStats{Week: wk}
			weeks[wk] = ws
			weekWorkouts[wk] = make(map[int]struct{})
		}
		weekWorkouts[wk][r.WorkoutID] = struct{}{}
		ws.Sets++
		ws.Volume += r.Volume()

		es, ok := exercises[r.ExerciseID]
		if !ok {
			es = &ExerciseStats{ExerciseID: r.ExerciseID, ExerciseName: r.ExerciseName}
			exercises[r.ExerciseID] = es
		}
		es.Sets++
		es.Reps += r.Reps
		es.Volume += r.Volume()
		if rest := r.Rest(); rest != nil {
			restSum[r.ExerciseID] += *rest
			restCount[r.ExerciseID]++
		}
	}

	summary.Workouts = len(workouts)
	summary.Volume = round2(summary.Volume)

	for wk, ws := range weeks {
		ws.Workouts = len(weekWorkouts[wk])
		ws.Volume = round2(ws.Volume)
		summary.Weekly = append(summary.Weekly, *ws)
	}
	sort.Slice(summary.Weekly, func(i, j int) bool {
		return summary.Weekly[i].Week < summary.Weekly[j].Week
	})

	for id, es := range exercises {
		es.Volume = round2(es.Volume)
		if n := restCount[id]; n > 0 {
			avg := round2(float64(restSum[id]) / float64(n))
			es.AvgRestSeconds = &avg
		}
		summary.Exercises = append(summary.Exercises, *es)
	}
	sort.Slice(summary.Exercises, func(i, j int) bool {
		if summary.Exercises[i].Volume != summary.Exercises[j].Volume {
			return summary.Exercises[i].Volume > summary.Exercises[j].Volume
		}
		return summary.Exercises[i].ExerciseID < summary.Exercises[j].ExerciseID
	})

	return summary
}
