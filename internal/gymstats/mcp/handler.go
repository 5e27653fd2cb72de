package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/gymlog/internal/gymstats/exercises"
	"github.com/2beens/gymlog/pkg"
)

// DefaultSummaryLookback applies when get_training_summary gets no from_date.
const DefaultSummaryLookback = 28 * 24 * time.Hour

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
	now     func() time.Time
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetTrainingSchemaTool returns the MCP tool handler for get_training_schema.
func (h *Handler) GetTrainingSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// ListExercisesTool returns the MCP tool handler for list_exercises.
func (h *Handler) ListExercisesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListExercises(ctx)
		if err != nil {
			return errorResult("Error listing exercises: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// CreateExerciseInput is the input for create_exercise.
type CreateExerciseInput struct {
	Name         string   `json:"name" jsonschema:"Exercise name, unique per user"`
	Icon         string   `json:"icon,omitempty" jsonschema:"Optional icon name"`
	MuscleGroups []string `json:"muscle_groups,omitempty" jsonschema:"Muscle groups worked (e.g. chest, triceps)"`
}

// CreateExerciseTool returns the MCP tool handler for create_exercise.
func (h *Handler) CreateExerciseTool() func(context.Context, *mcp.CallToolRequest, CreateExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CreateExerciseInput) (*mcp.CallToolResult, any, error) {
		added, err := h.service.CreateExercise(ctx, exercises.Exercise{
			Name:         in.Name,
			Icon:         in.Icon,
			MuscleGroups: in.MuscleGroups,
		})
		if err != nil {
			return errorResult("Error creating exercise: " + err.Error()), nil, nil
		}
		return jsonResult(added), nil, nil
	}
}

// RenameExerciseInput is the input for rename_exercise.
type RenameExerciseInput struct {
	ExerciseID int    `json:"exercise_id" jsonschema:"ID of the exercise to rename"`
	Name       string `json:"name" jsonschema:"New exercise name"`
}

// RenameExerciseTool returns the MCP tool handler for rename_exercise.
func (h *Handler) RenameExerciseTool() func(context.Context, *mcp.CallToolRequest, RenameExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RenameExerciseInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID <= 0 {
			return errorResult("Invalid exercise_id"), nil, nil
		}
		renamed, err := h.service.RenameExercise(ctx, in.ExerciseID, in.Name)
		if err != nil {
			return errorResult("Error renaming exercise: " + err.Error()), nil, nil
		}
		return jsonResult(renamed), nil, nil
	}
}

// WorkoutInput is the input for get_workout.
type WorkoutInput struct {
	Date string `json:"date" jsonschema:"Workout date (YYYY-MM-DD)"`
}

// GetWorkoutTool returns the MCP tool handler for get_workout.
func (h *Handler) GetWorkoutTool() func(context.Context, *mcp.CallToolRequest, WorkoutInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutInput) (*mcp.CallToolResult, any, error) {
		if _, err := pkg.ParseDate(in.Date); err != nil {
			return errorResult("Invalid date: use YYYY-MM-DD"), nil, nil
		}
		details, err := h.service.GetWorkout(ctx, in.Date)
		if err != nil {
			return errorResult("Error fetching workout: " + err.Error()), nil, nil
		}
		return jsonResult(details), nil, nil
	}
}

// SupersetPartnersInput is the input for get_superset_partners.
type SupersetPartnersInput struct {
	SetID int `json:"set_id" jsonschema:"ID of a set in the superset"`
}

// GetSupersetPartnersTool returns the MCP tool handler for get_superset_partners.
func (h *Handler) GetSupersetPartnersTool() func(context.Context, *mcp.CallToolRequest, SupersetPartnersInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SupersetPartnersInput) (*mcp.CallToolResult, any, error) {
		if in.SetID <= 0 {
			return errorResult("Invalid set_id"), nil, nil
		}
		partners, err := h.service.GetSupersetPartners(ctx, in.SetID)
		if err != nil {
			return errorResult("Error fetching superset partners: " + err.Error()), nil, nil
		}
		return jsonResult(partners), nil, nil
	}
}

// RecomputeDurationsTool returns the MCP tool handler for recompute_durations.
func (h *Handler) RecomputeDurationsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		result, err := h.service.RecomputeDurations(ctx)
		if err != nil {
			return errorResult("Error recomputing durations: " + err.Error()), nil, nil
		}
		return jsonResult(result), nil, nil
	}
}

// TrainingSummaryInput is the input for get_training_summary.
type TrainingSummaryInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to four weeks ago"`
}

// GetTrainingSummaryTool returns the MCP tool handler for get_training_summary.
func (h *Handler) GetTrainingSummaryTool() func(context.Context, *mcp.CallToolRequest, TrainingSummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TrainingSummaryInput) (*mcp.CallToolResult, any, error) {
		def := h.now().UTC().Add(-DefaultSummaryLookback).Truncate(24 * time.Hour)
		from, err := pkg.ParseDateOr(in.FromDate, def)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		summary, err := h.service.GetTrainingSummary(ctx, from)
		if err != nil {
			return errorResult("Error fetching training summary: " + err.Error()), nil, nil
		}
		return jsonResult(summary), nil, nil
	}
}
