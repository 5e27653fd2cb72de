package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/gymstats/durations"
	"github.com/2beens/gymlog/internal/gymstats/exercises"
	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/internal/gymstats/stats"
	"github.com/2beens/gymlog/internal/gymstats/workouts"
)

type exerciseCatalog interface {
	List(ctx context.Context, ownerID int) ([]exercises.Exercise, error)
	Add(ctx context.Context, ownerID int, exercise exercises.Exercise) (*exercises.Exercise, error)
	Rename(ctx context.Context, id, ownerID int, name string) (*exercises.Exercise, error)
}

type workoutReader interface {
	GetByDate(ctx context.Context, ownerID int, date string) (*workouts.Details, error)
}

type supersetReader interface {
	Partners(ctx context.Context, setID, ownerID int) ([]sets.Set, error)
}

type durationsRecomputer interface {
	Recompute(ctx context.Context, policy durations.Policy) (durations.Result, error)
}

type summaryAnalyzer interface {
	Summary(ctx context.Context, ownerID int, from time.Time) (*stats.Summary, error)
}

// contextService is what the tool handlers need. Every call acts on behalf
// of the configured owner.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListExercises(ctx context.Context) ([]exercises.Exercise, error)
	CreateExercise(ctx context.Context, exercise exercises.Exercise) (*exercises.Exercise, error)
	RenameExercise(ctx context.Context, id int, name string) (*exercises.Exercise, error)
	GetWorkout(ctx context.Context, date string) (*workouts.Details, error)
	GetSupersetPartners(ctx context.Context, setID int) ([]sets.Set, error)
	RecomputeDurations(ctx context.Context) (durations.Result, error)
	GetTrainingSummary(ctx context.Context, from time.Time) (*stats.Summary, error)
}

// Deps groups the services the chat tools are built on.
type Deps struct {
	Schema     SchemaRepo
	Exercises  exerciseCatalog
	Workouts   workoutReader
	Sets       supersetReader
	Recomputer durationsRecomputer
	Analyzer   summaryAnalyzer
	Anomaly    durations.AnomalyPolicy
}

// ContextService implements the tools' business logic for a single owner.
type ContextService struct {
	deps    Deps
	ownerID int
}

func NewContextService(deps Deps, ownerID int) *ContextService {
	return &ContextService{
		deps:    deps,
		ownerID: ownerID,
	}
}

// GetSchema returns the schema of the training tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.deps.Schema.GetTrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatTrainingSchema(cols), nil
}

func formatTrainingSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Training DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Training DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(trainingTables, ", "))
	b.WriteString(" (schema: public).\n")
	b.WriteString("Sets sharing a non-null superset_id form one superset. ")
	b.WriteString("duration_seconds is the rest before a set, duration_cleaned the same value with outliers replaced.\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) ListExercises(ctx context.Context) ([]exercises.Exercise, error) {
	return s.deps.Exercises.List(ctx, s.ownerID)
}

func (s *ContextService) CreateExercise(ctx context.Context, exercise exercises.Exercise) (*exercises.Exercise, error) {
	return s.deps.Exercises.Add(ctx, s.ownerID, exercise)
}

func (s *ContextService) RenameExercise(ctx context.Context, id int, name string) (*exercises.Exercise, error) {
	return s.deps.Exercises.Rename(ctx, id, s.ownerID, name)
}

// GetWorkout returns the workout of a day with its sets and rest durations.
func (s *ContextService) GetWorkout(ctx context.Context, date string) (*workouts.Details, error) {
	return s.deps.Workouts.GetByDate(ctx, s.ownerID, date)
}

func (s *ContextService) GetSupersetPartners(ctx context.Context, setID int) ([]sets.Set, error) {
	return s.deps.Sets.Partners(ctx, setID, s.ownerID)
}

// RecomputeDurations reruns the duration derivation over all of the owner's workouts.
func (s *ContextService) RecomputeDurations(ctx context.Context) (durations.Result, error) {
	return s.deps.Recomputer.Recompute(ctx, durations.GeneralPolicy(s.deps.Anomaly).ForOwner(s.ownerID))
}

func (s *ContextService) GetTrainingSummary(ctx context.Context, from time.Time) (*stats.Summary, error) {
	return s.deps.Analyzer.Summary(ctx, s.ownerID, from)
}
