package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/gymstats/exercises"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type statsRepo interface {
	SetRows(ctx context.Context, ownerID int, from time.Time, exerciseID *int) ([]SetRow, error)
	Exercise(ctx context.Context, exerciseID int) (ownerID int, name string, err error)
}

type Analyzer struct {
	repo  statsRepo
	cache *Cache
}

func NewAnalyzer(repo statsRepo, cache *Cache) *Analyzer {
	return &Analyzer{
		repo:  repo,
		cache: cache,
	}
}

// Progression returns per workout figures of one exercise since from.
func (a *Analyzer) Progression(ctx context.Context, ownerID, exerciseID int, from time.Time) (_ *Progression, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.progression")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	exOwner, name, err := a.repo.Exercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exOwner != ownerID {
		return nil, fmt.Errorf("exercise %d: %w", exerciseID, exercises.ErrUnauthorized)
	}

	query := "progression::" + strconv.Itoa(exerciseID) + "::" + from.Format(pkg.DateLayout)
	var cached Progression
	if a.cache != nil && a.cache.Get(ownerID, query, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}

	rows, err := a.repo.SetRows(ctx, ownerID, from, &exerciseID)
	if err != nil {
		return nil, fmt.Errorf("set rows: %w", err)
	}

	progression := &Progression{
		ExerciseID:   exerciseID,
		ExerciseName: name,
		From:         from.Format(pkg.DateLayout),
		Points:       progressionPoints(rows),
	}
	if a.cache != nil {
		a.cache.Set(ownerID, query, progression)
	}
	return progression, nil
}

// Summary returns totals, weekly and per exercise figures since from.
func (a *Analyzer) Summary(ctx context.Context, ownerID int, from time.Time) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := "summary::" + from.Format(pkg.DateLayout)
	var cached Summary
	if a.cache != nil && a.cache.Get(ownerID, query, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}

	rows, err := a.repo.SetRows(ctx, ownerID, from, nil)
	if err != nil {
		return nil, fmt.Errorf("set rows: %w", err)
	}

	summary := summarize(rows, from)
	if a.cache != nil {
		a.cache.Set(ownerID, query, summary)
	}
	return &summary, nil
}
