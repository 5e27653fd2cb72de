package sets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sets_test

type setsService interface {
	DeleteSet(ctx context.Context, setID, ownerID int) (DeleteResult, error)
	LinkSets(ctx context.Context, setIDA, setIDB, ownerID int) (LinkResult, error)
	UnlinkSuperset(ctx context.Context, setID, ownerID int) error
	Partners(ctx context.Context, setID, ownerID int) ([]Set, error)
	LinkCandidates(ctx context.Context, setID, ownerID int) ([]Set, error)
	AddSet(ctx context.Context, ownerID int, newSet NewSet) (*Set, bool, error)
	UpdateSet(ctx context.Context, setID, ownerID int, update SetUpdate) (*Set, error)
	CompleteSet(ctx context.Context, setID, ownerID int) (*Set, error)
}

type LinkRequest struct {
	SetID       int `json:"setId"`
	TargetSetID int `json:"targetSetId"`
}

type AddSetResponse struct {
	Set
	Updated bool `json:"updated"`
}

type Handler struct {
	service setsService
}

func NewHandler(service setsService) *Handler {
	return &Handler{
		service: service,
	}
}

// StatusFor maps sets errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrSetNotFound), errors.Is(err, ErrParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrTxContention):
		return http.StatusServiceUnavailable
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
	if status == http.StatusServiceUnavailable {
		log.Warnf("%s: %s", op, err)
		w.Header().Set("Retry-After", "1")
		http.Error(w, "busy, retry", status)
		return
	}
	log.Debugf("%s: %s", op, err)
	http.Error(w, err.Error(), status)
}

func ownerOrUnauthorized(w http.ResponseWriter, r *http.Request) (int, bool) {
	ownerID, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
	}
	return ownerID, ok
}

func setIDOrBadRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := pkg.IntPathParam(r, "id")
	if err != nil {
		http.Error(w, "error, set id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.add")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	var newSet NewSet
	if err := json.NewDecoder(r.Body).Decode(&newSet); err != nil {
		log.Tracef("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}
	if newSet.WorkoutID == 0 || newSet.ExerciseID == 0 {
		http.Error(w, "error, workout id or exercise id empty", http.StatusBadRequest)
		return
	}

	added, updated, err := handler.service.AddSet(ctx, ownerID, newSet)
	if err != nil {
		writeError(w, err, "add set")
		return
	}

	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	pkg.WriteJSON(w, AddSetResponse{Set: *added, Updated: updated}, status)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.update")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var update SetUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update set, unmarshal json params: %s", err)
		http.Error(w, "update set failed", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.UpdateSet(ctx, setID, ownerID, update)
	if err != nil {
		writeError(w, err, "update set")
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.complete")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	completed, err := handler.service.CompleteSet(ctx, setID, ownerID)
	if err != nil {
		writeError(w, err, "complete set")
		return
	}
	pkg.WriteJSON(w, completed, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.delete")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	res, err := handler.service.DeleteSet(ctx, setID, ownerID)
	if err != nil {
		writeError(w, err, "delete set")
		return
	}

	status := http.StatusOK
	if !res.Deleted {
		status = http.StatusNotFound
	}
	pkg.WriteJSON(w, res, status)
}

func (handler *Handler) HandleLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.link")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("link sets, unmarshal json params: %s", err)
		http.Error(w, "link sets failed", http.StatusBadRequest)
		return
	}
	if req.SetID == 0 || req.TargetSetID == 0 {
		http.Error(w, "error, setId or targetSetId empty", http.StatusBadRequest)
		return
	}

	res, err := handler.service.LinkSets(ctx, req.SetID, req.TargetSetID, ownerID)
	if err != nil {
		writeError(w, err, "link sets")
		return
	}
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (handler *Handler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.unlink")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := handler.service.UnlinkSuperset(ctx, setID, ownerID); err != nil {
		writeError(w, err, "unlink set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandlePartners(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.partners")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	partners, err := handler.service.Partners(ctx, setID, ownerID)
	if err != nil {
		writeError(w, err, "set partners")
		return
	}
	pkg.WriteJSON(w, partners, http.StatusOK)
}

func (handler *Handler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sets.candidates")
	defer span.End()

	ownerID, ok := ownerOrUnauthorized(w, r)
	if !ok {
		return
	}
	setID, ok := setIDOrBadRequest(w, r)
	if !ok {
		return
	}

	candidates, err := handler.service.LinkCandidates(ctx, setID, ownerID)
	if err != nil {
		writeError(w, err, "set link candidates")
		return
	}
	pkg.WriteJSON(w, candidates, http.StatusOK)
}
