package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the training tools. It is mounted at
// /mcp by the main service and served over stdio by cmd/gymstats_mcp.
func NewServer(service contextService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymlog",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_schema",
		Description: "Returns the DB schema of the training tables (exercise, workout, workout_set, warmup): columns, types, nullable, default. Use when you need to know how workouts, sets and supersets are stored.",
	}, h.GetTrainingSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_exercises",
		Description: "Returns the user's exercise catalogue (id, name, icon, muscle groups).",
	}, h.ListExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "create_exercise",
		Description: "Creates a new exercise in the user's catalogue. Args: name; optional: icon, muscle_groups. Fails when the name is already taken.",
	}, h.CreateExerciseTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "rename_exercise",
		Description: "Renames an exercise. Args: exercise_id, name. Fails when the new name is already taken.",
	}, h.RenameExerciseTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout",
		Description: "Returns the workout of a day with its warmups, sets (weight, reps, difficulty, superset id) and rest durations in seconds. Arg: date (YYYY-MM-DD).",
	}, h.GetWorkoutTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_superset_partners",
		Description: "Returns the other sets of the superset a set belongs to. Arg: set_id. Empty when the set is not in a superset.",
	}, h.GetSupersetPartnersTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "recompute_durations",
		Description: "Recomputes rest durations between sets for all of the user's workouts and replaces outliers. Returns the number of workouts processed, sets updated and outliers found.",
	}, h.RecomputeDurationsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_summary",
		Description: "Returns training totals since a date: workouts, sets, reps, volume, weekly volume (ISO weeks) and per exercise volume with average rest. Optional arg: from_date (YYYY-MM-DD).",
	}, h.GetTrainingSummaryTool())

	return s
}
