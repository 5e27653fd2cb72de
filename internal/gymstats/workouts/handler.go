package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	GetOrCreate(ctx context.Context, ownerID int, date string) (*Workout, bool, error)
	Get(ctx context.Context, workoutID, ownerID int) (*Details, error)
	List(ctx context.Context, ownerID, page, size int) ([]Workout, int, error)
	UpdateNotes(ctx context.Context, workoutID, ownerID int, notes string) error
	Delete(ctx context.Context, workoutID, ownerID int) error
	AddWarmup(ctx context.Context, ownerID int, warmup Warmup) (*Warmup, error)
	UpdateWarmup(ctx context.Context, ownerID int, warmup Warmup) error
	DeleteWarmup(ctx context.Context, warmupID, ownerID int) error
}

type GetOrCreateRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

type GetOrCreateResponse struct {
	Workout
	Created bool `json:"created"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrWarmupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidWarmup), errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error, op string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", status)
		return
	}
	log.Debugf("%s: %s", op, err)
	http.Error(w, err.Error(), status)
}

func (handler *Handler) HandleGetOrCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.get-or-create")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var req GetOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("get or create workout, unmarshal json params: %s", err)
		http.Error(w, "get or create workout failed", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}

	workout, created, err := handler.service.GetOrCreate(ctx, ownerID, req.Date)
	if err != nil {
		writeError(w, err, "get or create workout")
		return
	}

	if created && req.Notes != "" {
		if err := handler.service.UpdateNotes(ctx, workout.ID, ownerID, req.Notes); err != nil {
			writeError(w, err, "set workout notes")
			return
		}
		workout.Notes = req.Notes
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	pkg.WriteJSON(w, GetOrCreateResponse{Workout: *workout, Created: created}, status)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.list")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	page, err := pkg.IntPathParam(r, "page")
	if err != nil {
		log.Tracef("handle get workouts page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := pkg.IntPathParam(r, "size")
	if err != nil {
		log.Tracef("handle get workouts page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	workouts, total, err := handler.service.List(ctx, ownerID, page, size)
	if err != nil {
		writeError(w, err, "list workouts")
		return
	}
	pkg.WriteJSON(w, ListResponse{Workouts: workouts, Total: total}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.get")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	id, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	details, err := handler.service.Get(ctx, id, ownerID)
	if err != nil {
		writeError(w, err, "get workout")
		return
	}
	pkg.WriteJSON(w, details, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.delete")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	id, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id, ownerID); err != nil {
		writeError(w, err, "delete workout")
		return
	}
	pkg.WriteJSON(w, map[string]int{"deletedId": id}, http.StatusOK)
}

func (handler *Handler) HandleAddWarmup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmups.add")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	workoutID, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, workout id NaN", http.StatusBadRequest)
		return
	}

	var warmup Warmup
	if err := json.NewDecoder(r.Body).Decode(&warmup); err != nil {
		log.Tracef("add warmup, unmarshal json params: %s", err)
		http.Error(w, "add warmup failed", http.StatusBadRequest)
		return
	}
	warmup.WorkoutID = workoutID

	added, err := handler.service.AddWarmup(ctx, ownerID, warmup)
	if err != nil {
		writeError(w, err, "add warmup")
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdateWarmup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmups.update")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	warmupID, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, warmup id NaN", http.StatusBadRequest)
		return
	}

	var warmup Warmup
	if err := json.NewDecoder(r.Body).Decode(&warmup); err != nil {
		log.Tracef("update warmup, unmarshal json params: %s", err)
		http.Error(w, "update warmup failed", http.StatusBadRequest)
		return
	}
	warmup.ID = warmupID

	if err := handler.service.UpdateWarmup(ctx, ownerID, warmup); err != nil {
		writeError(w, err, "update warmup")
		return
	}
	pkg.WriteJSON(w, map[string]int{"updatedId": warmupID}, http.StatusOK)
}

func (handler *Handler) HandleDeleteWarmup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmups.delete")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	warmupID, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, warmup id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteWarmup(ctx, warmupID, ownerID); err != nil {
		writeError(w, err, "delete warmup")
		return
	}
	pkg.WriteJSON(w, map[string]int{"deletedId": warmupID}, http.StatusOK)
}
