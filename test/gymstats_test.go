package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/gymstats/durations"
	"github.com/2beens/gymlog/internal/gymstats/exercises"
	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/internal/gymstats/stats"
	"github.com/2beens/gymlog/internal/gymstats/workouts"
)

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	owner testOwner,
	method, path string,
	body any,
) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if owner.Token != "" {
		req.Header.Set("Authorization", "Bearer "+owner.Token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) doJSON(
	ctx context.Context,
	owner testOwner,
	method, path string,
	body any,
	expectedStatus int,
	out any,
) {
	resp := s.doRequest(ctx, owner, method, path, body)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, string(respBytes))

	if out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
}

func (s *IntegrationTestSuite) newWorkout(ctx context.Context, owner testOwner, date string) workouts.GetOrCreateResponse {
	var resp workouts.GetOrCreateResponse
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/workouts",
		workouts.GetOrCreateRequest{Date: date},
		http.StatusCreated, &resp,
	)
	require.True(s.T(), resp.Created)
	return resp
}

func (s *IntegrationTestSuite) newExercise(ctx context.Context, owner testOwner) exercises.Exercise {
	var added exercises.Exercise
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/exercises",
		exercises.Exercise{
			Name:         gofakeit.Noun() + " " + gofakeit.UUID()[:8],
			MuscleGroups: []string{"legs"},
		},
		http.StatusCreated, &added,
	)
	return added
}

func (s *IntegrationTestSuite) newSet(
	ctx context.Context,
	owner testOwner,
	workoutID, exerciseID int,
	weight float64,
	createdAt *time.Time,
) sets.Set {
	var resp sets.AddSetResponse
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/sets",
		sets.NewSet{
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			Weight:     weight,
			Reps:       gofakeit.Number(5, 12),
			Difficulty: sets.DifficultyMedium,
			CreatedAt:  createdAt,
		},
		http.StatusCreated, &resp,
	)
	return resp.Set
}

func (s *IntegrationTestSuite) setNumbers(ctx context.Context, workoutID, exerciseID int) map[int]int {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, set_number FROM workout_set WHERE workout_id = $1 AND exercise_id = $2`,
		workoutID, exerciseID,
	)
	require.NoError(s.T(), err)
	defer rows.Close()

	numbers := make(map[int]int)
	for rows.Next() {
		var id, number int
		require.NoError(s.T(), rows.Scan(&id, &number))
		numbers[id] = number
	}
	require.NoError(s.T(), rows.Err())
	return numbers
}

func (s *IntegrationTestSuite) TestDeleteSet_Renumbers() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	workout := s.newWorkout(ctx, owner, "2024-03-01")
	exercise := s.newExercise(ctx, owner)

	var added []sets.Set
	for i := 0; i < 4; i++ {
		added = append(added, s.newSet(ctx, owner, workout.ID, exercise.ID, 50, nil))
	}
	for i, set := range added {
		require.Equal(s.T(), i+1, set.SetNumber)
	}

	var deleted sets.DeleteResult
	s.doJSON(ctx, owner, http.MethodDelete, fmt.Sprintf("/gymstats/sets/%d", added[1].ID), nil, http.StatusOK, &deleted)
	assert.True(s.T(), deleted.Deleted)
	assert.Equal(s.T(), 2, deleted.Renumbered)

	assert.Equal(s.T(), map[int]int{
		added[0].ID: 1,
		added[2].ID: 2,
		added[3].ID: 3,
	}, s.setNumbers(ctx, workout.ID, exercise.ID))

	// deleting the same set again is a miss
	resp := s.doRequest(ctx, owner, http.MethodDelete, fmt.Sprintf("/gymstats/sets/%d", added[1].ID), nil)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)

	// arbitrary deletes keep numbering dense
	s.doJSON(ctx, owner, http.MethodDelete, fmt.Sprintf("/gymstats/sets/%d", added[0].ID), nil, http.StatusOK, &deleted)
	assert.Equal(s.T(), map[int]int{
		added[2].ID: 1,
		added[3].ID: 2,
	}, s.setNumbers(ctx, workout.ID, exercise.ID))
}

func (s *IntegrationTestSuite) TestDeleteSet_ConcurrentRenumbers() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	workout := s.newWorkout(ctx, owner, "2024-03-05")
	exercise := s.newExercise(ctx, owner)

	var added []sets.Set
	for i := 0; i < 8; i++ {
		added = append(added, s.newSet(ctx, owner, workout.ID, exercise.ID, 40, nil))
	}

	service := sets.NewService(sets.NewRepo(s.dbPool), nil, nil)
	toDelete := []int{added[1].ID, added[3].ID, added[4].ID, added[6].ID}
	results := make([]sets.DeleteResult, len(toDelete))
	errs := make([]error, len(toDelete))

	var wg sync.WaitGroup
	for i, setID := range toDelete {
		wg.Add(1)
		go func(i, setID int) {
			defer wg.Done()
			results[i], errs[i] = service.DeleteSet(ctx, setID, owner.ID)
		}(i, setID)
	}
	wg.Wait()

	for i := range toDelete {
		require.NoError(s.T(), errs[i])
		assert.True(s.T(), results[i].Deleted)
	}

	// survivors keep their relative order and close up to 1..4
	assert.Equal(s.T(), map[int]int{
		added[0].ID: 1,
		added[2].ID: 2,
		added[5].ID: 3,
		added[7].ID: 4,
	}, s.setNumbers(ctx, workout.ID, exercise.ID))
}

func (s *IntegrationTestSuite) TestAddSet_ExplicitNumberStaysDense() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	workout := s.newWorkout(ctx, owner, "2024-03-06")
	exercise := s.newExercise(ctx, owner)

	post := func(setNumber int) *http.Response {
		return s.doRequest(ctx, owner, http.MethodPost, "/gymstats/sets", sets.NewSet{
			WorkoutID:  workout.ID,
			ExerciseID: exercise.ID,
			SetNumber:  setNumber,
			Weight:     70,
			Reps:       8,
		})
	}

	// nothing to number after in an empty group
	resp := post(10)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	assert.Empty(s.T(), s.setNumbers(ctx, workout.ID, exercise.ID))

	first := s.newSet(ctx, owner, workout.ID, exercise.ID, 70, nil)
	second := s.newSet(ctx, owner, workout.ID, exercise.ID, 70, nil)

	resp = post(5)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	var appended sets.AddSetResponse
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/sets",
		sets.NewSet{WorkoutID: workout.ID, ExerciseID: exercise.ID, SetNumber: 3, Weight: 75, Reps: 6},
		http.StatusCreated, &appended,
	)
	assert.Equal(s.T(), 3, appended.SetNumber)

	var replaced sets.AddSetResponse
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/sets",
		sets.NewSet{WorkoutID: workout.ID, ExerciseID: exercise.ID, SetNumber: 2, Weight: 72, Reps: 7},
		http.StatusOK, &replaced,
	)
	assert.True(s.T(), replaced.Updated)
	assert.Equal(s.T(), second.ID, replaced.ID)

	assert.Equal(s.T(), map[int]int{
		first.ID:    1,
		second.ID:   2,
		appended.ID: 3,
	}, s.setNumbers(ctx, workout.ID, exercise.ID))
}

func (s *IntegrationTestSuite) TestSupersets_Merge() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	workout := s.newWorkout(ctx, owner, "2024-03-02")

	var members []sets.Set
	for i := 0; i < 5; i++ {
		exercise := s.newExercise(ctx, owner)
		members = append(members, s.newSet(ctx, owner, workout.ID, exercise.ID, 20, nil))
	}

	link := func(a, b sets.Set) sets.LinkResult {
		var res sets.LinkResult
		s.doJSON(ctx, owner, http.MethodPost, "/gymstats/sets/link",
			map[string]int{"setId": a.ID, "targetSetId": b.ID},
			http.StatusOK, &res,
		)
		return res
	}

	// {0,1,2} and {3,4}
	first := link(members[0], members[1])
	assert.Equal(s.T(), sets.LinkMinted, first.Outcome)
	assert.Equal(s.T(), sets.LinkAdopted, link(members[1], members[2]).Outcome)
	assert.Equal(s.T(), sets.LinkNoop, link(members[0], members[2]).Outcome)
	link(members[3], members[4])

	merged := link(members[2], members[3])
	assert.Equal(s.T(), sets.LinkMerged, merged.Outcome)

	for _, member := range members {
		var partners []sets.Set
		s.doJSON(ctx, owner, http.MethodGet, fmt.Sprintf("/gymstats/sets/%d/partners", member.ID), nil, http.StatusOK, &partners)
		assert.Len(s.T(), partners, 4, "partners of set %d", member.ID)
		for _, p := range partners {
			require.NotNil(s.T(), p.SupersetID)
			assert.Equal(s.T(), merged.SupersetID, *p.SupersetID)
			assert.NotEqual(s.T(), member.ID, p.ID)
		}
	}

	// unlink is idempotent
	for i := 0; i < 2; i++ {
		resp := s.doRequest(ctx, owner, http.MethodDelete, fmt.Sprintf("/gymstats/sets/%d/superset", members[0].ID), nil)
		resp.Body.Close()
		assert.Equal(s.T(), http.StatusNoContent, resp.StatusCode)
	}
	var partners []sets.Set
	s.doJSON(ctx, owner, http.MethodGet, fmt.Sprintf("/gymstats/sets/%d/partners", members[0].ID), nil, http.StatusOK, &partners)
	assert.Empty(s.T(), partners)
	s.doJSON(ctx, owner, http.MethodGet, fmt.Sprintf("/gymstats/sets/%d/partners", members[1].ID), nil, http.StatusOK, &partners)
	assert.Len(s.T(), partners, 3)

	// self link is rejected
	resp := s.doRequest(ctx, owner, http.MethodPost, "/gymstats/sets/link", map[string]int{"setId": members[1].ID, "targetSetId": members[1].ID})
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestForeignOwner() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	intruder := s.newOwner(ctx)

	workout := s.newWorkout(ctx, owner, "2024-03-03")
	exercise := s.newExercise(ctx, owner)
	set := s.newSet(ctx, owner, workout.ID, exercise.ID, 30, nil)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodDelete, fmt.Sprintf("/gymstats/sets/%d", set.ID)},
		{http.MethodGet, fmt.Sprintf("/gymstats/sets/%d/partners", set.ID)},
		{http.MethodGet, fmt.Sprintf("/gymstats/workouts/%d", workout.ID)},
		{http.MethodDelete, fmt.Sprintf("/gymstats/exercises/%d", exercise.ID)},
		{http.MethodGet, fmt.Sprintf("/gymstats/stats/exercise/%d/progression", exercise.ID)},
	} {
		resp := s.doRequest(ctx, intruder, tc.method, tc.path, nil)
		resp.Body.Close()
		assert.Equal(s.T(), http.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
	}

	resp := s.doRequest(ctx, testOwner{}, http.MethodGet, fmt.Sprintf("/gymstats/workouts/%d", workout.ID), nil)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)

	// still there
	assert.Len(s.T(), s.setNumbers(ctx, workout.ID, exercise.ID), 1)
}

func (s *IntegrationTestSuite) TestRecompute_StaleWorkouts() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	workout := s.newWorkout(ctx, owner, "2024-03-04")
	exercise := s.newExercise(ctx, owner)

	start := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	at := func(seconds int) *time.Time {
		t := start.Add(time.Duration(seconds) * time.Second)
		return &t
	}
	first := s.newSet(ctx, owner, workout.ID, exercise.ID, 60, at(0))
	third := s.newSet(ctx, owner, workout.ID, exercise.ID, 60, at(95))
	second := s.newSet(ctx, owner, workout.ID, exercise.ID, 60, at(40))

	var stale bool
	require.NoError(s.T(), s.DB.QueryRowContext(ctx, `SELECT durations_stale FROM workout WHERE id = $1`, workout.ID).Scan(&stale))
	require.True(s.T(), stale)

	recomputer := durations.NewRecomputer(durations.NewRepo(s.dbPool), nil)
	result, err := recomputer.Recompute(ctx, durations.ScheduledPolicy(durations.AnomalyAbs, 1000))
	require.NoError(s.T(), err)
	assert.GreaterOrEqual(s.T(), result.WorkoutsProcessed, 1)

	require.NoError(s.T(), s.DB.QueryRowContext(ctx, `SELECT durations_stale FROM workout WHERE id = $1`, workout.ID).Scan(&stale))
	assert.False(s.T(), stale)

	var details workouts.Details
	s.doJSON(ctx, owner, http.MethodGet, fmt.Sprintf("/gymstats/workouts/%d", workout.ID), nil, http.StatusOK, &details)
	durationsByID := make(map[int]*int)
	for _, set := range details.Sets {
		durationsByID[set.ID] = set.DurationSeconds
	}
	assert.Nil(s.T(), durationsByID[first.ID])
	require.NotNil(s.T(), durationsByID[second.ID])
	assert.Equal(s.T(), 40, *durationsByID[second.ID])
	require.NotNil(s.T(), durationsByID[third.ID])
	assert.Equal(s.T(), 55, *durationsByID[third.ID])

	// a second scheduled run finds nothing stale for this workout
	result, err = recomputer.Recompute(ctx, durations.ScheduledPolicy(durations.AnomalyAbs, 1000).ForOwner(owner.ID))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, result.WorkoutsProcessed)

	// the http trigger recomputes all of the owner's workouts
	var httpResult durations.Result
	s.doJSON(ctx, owner, http.MethodPost, "/gymstats/durations/recompute", nil, http.StatusOK, &httpResult)
	assert.Equal(s.T(), 1, httpResult.WorkoutsProcessed)
}

func (s *IntegrationTestSuite) TestStats_Summary() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	exercise := s.newExercise(ctx, owner)

	for _, date := range []string{"2024-04-01", "2024-04-03", "2024-04-10"} {
		workout := s.newWorkout(ctx, owner, date)
		s.newSet(ctx, owner, workout.ID, exercise.ID, 100, nil)
		s.newSet(ctx, owner, workout.ID, exercise.ID, 110, nil)
	}

	var summary stats.Summary
	s.doJSON(ctx, owner, http.MethodGet, "/gymstats/stats/summary?from=2024-03-01", nil, http.StatusOK, &summary)
	assert.Equal(s.T(), 3, summary.Workouts)
	assert.Equal(s.T(), 6, summary.Sets)
	require.Len(s.T(), summary.Weekly, 2)
	require.Len(s.T(), summary.Exercises, 1)
	assert.Equal(s.T(), exercise.ID, summary.Exercises[0].ExerciseID)

	var progression stats.Progression
	s.doJSON(ctx, owner, http.MethodGet,
		fmt.Sprintf("/gymstats/stats/exercise/%d/progression?from=2024-03-01", exercise.ID),
		nil, http.StatusOK, &progression,
	)
	require.Len(s.T(), progression.Points, 3)
	assert.Equal(s.T(), 110.0, progression.Points[0].MaxWeight)

	// a new set shows up right away, the cache is dropped on mutation
	workout := s.newWorkout(ctx, owner, "2024-04-11")
	s.newSet(ctx, owner, workout.ID, exercise.ID, 120, nil)
	s.doJSON(ctx, owner, http.MethodGet, "/gymstats/stats/summary?from=2024-03-01", nil, http.StatusOK, &summary)
	assert.Equal(s.T(), 4, summary.Workouts)

	s.doJSON(ctx, owner, http.MethodDelete, fmt.Sprintf("/gymstats/workouts/%d", workout.ID), nil, http.StatusOK, nil)
	s.doJSON(ctx, owner, http.MethodGet, "/gymstats/stats/summary?from=2024-03-01", nil, http.StatusOK, &summary)
	assert.Equal(s.T(), 3, summary.Workouts)
	assert.Equal(s.T(), 6, summary.Sets)

	resp :=s.doRequest(ctx, owner, http.MethodGet, "/gymstats/stats/summary?from=yesterday", nil)
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestExercises_DuplicateName() {
	ctx := context.Background()
	owner := s.newOwner(ctx)
	exercise := s.newExercise(ctx, owner)

	resp := s.doRequest(ctx, owner, http.MethodPost, "/gymstats/exercises", exercises.Exercise{Name: exercise.Name})
	resp.Body.Close()
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	// names are unique per user only
	other := s.newOwner(ctx)
	var added exercises.Exercise
	s.doJSON(ctx, other, http.MethodPost, "/gymstats/exercises", exercises.Exercise{Name: exercise.Name}, http.StatusCreated, &added)
	assert.Equal(s.T(), other.ID, added.UserID)
}
