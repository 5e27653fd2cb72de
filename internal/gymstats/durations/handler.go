package durations

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

type Handler struct {
	recomputer recomputer
	anomaly    AnomalyPolicy
}

func NewHandler(recomputer recomputer, anomaly AnomalyPolicy) *Handler {
	return &Handler{
		recomputer: recomputer,
		anomaly:    anomaly,
	}
}

// HandleRecompute recomputes all workouts of the requesting user.
func (handler *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.durations.recompute")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	result, err := handler.recomputer.Recompute(ctx, GeneralPolicy(handler.anomaly).ForOwner(ownerID))
	if errors.Is(err, db.ErrTxContention) {
		log.Warnf("recompute durations for owner %d: %s", ownerID, err)
		w.Header().Set("Retry-After", "1")
		http.Error(w, "busy, retry", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		log.Errorf("recompute durations for owner %d: %s", ownerID, err)
		http.Error(w, "failed to recompute durations", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}
