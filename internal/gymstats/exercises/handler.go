package exercises

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesService interface {
	Add(ctx context.Context, ownerID int, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id, ownerID int) (*Exercise, error)
	List(ctx context.Context, ownerID int) ([]Exercise, error)
	Update(ctx context.Context, ownerID int, exercise Exercise) (*Exercise, error)
	Delete(ctx context.Context, id, ownerID int) error
}

type DeleteExerciseResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service exercisesService
}

func NewHandler(service exercisesService) *Handler {
	return &Handler{
		service: service,
	}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrExerciseExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidExercise):
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

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.add")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	added, err := handler.service.Add(ctx, ownerID, exercise)
	if err != nil {
		writeError(w, err, "add exercise")
		return
	}

	log.Debugf("new exercise added: %d [%s]", added.ID, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.list")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	exercises, err := handler.service.List(ctx, ownerID)
	if err != nil {
		writeError(w, err, "list exercises")
		return
	}
	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.get")
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

	e, err := handler.service.Get(ctx, id, ownerID)
	if err != nil {
		writeError(w, err, "get exercise")
		return
	}
	pkg.WriteJSON(w, e, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.update")
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

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	exercise.ID = id

	updated, err := handler.service.Update(ctx, ownerID, exercise)
	if err != nil {
		writeError(w, err, "update exercise")
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.delete")
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
		writeError(w, err, "delete exercise")
		return
	}
	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}
