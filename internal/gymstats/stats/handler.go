package stats

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/gymstats/exercises"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

// DefaultLookback is used when a request carries no from date.
const DefaultLookback = 90 * 24 * time.Hour

type analyzer interface {
	Progression(ctx context.Context, ownerID, exerciseID int, from time.Time) (*Progression, error)
	Summary(ctx context.Context, ownerID int, from time.Time) (*Summary, error)
}

type Handler struct {
	analyzer analyzer
	now      func() time.Time
}

func NewHandler(analyzer analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (handler *Handler) from(r *http.Request) (time.Time, error) {
	def := handler.now().UTC().Add(-DefaultLookback).Truncate(24 * time.Hour)
	return pkg.ParseDateOr(r.URL.Query().Get("from"), def)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.summary")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	from, err := handler.from(r)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}

	summary, err := handler.analyzer.Summary(ctx, ownerID, from)
	if err != nil {
		log.Errorf("stats summary for owner %d: %s", ownerID, err)
		http.Error(w, "failed to get stats summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (handler *Handler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.progression")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	exerciseID, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}
	from, err := handler.from(r)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}

	progression, err := handler.analyzer.Progression(ctx, ownerID, exerciseID, from)
	switch {
	case errors.Is(err, exercises.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	case errors.Is(err, exercises.ErrUnauthorized):
		http.Error(w, "exercise belongs to another user", http.StatusForbidden)
		return
	case err != nil:
		log.Errorf("stats progression for exercise %d: %s", exerciseID, err)
		http.Error(w, "failed to get progression", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, progression, http.StatusOK)
}
