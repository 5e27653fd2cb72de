package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/pkg"
)

// PanicRecovery turns a handler panic into a 500 with a JSON error body.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				log.WithFields(log.Fields{
					"method": req.Method,
					"route":  routeTemplate(req),
					"path":   req.URL.Path,
				}).Errorf("panic serving request: %v\n%s", r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSON(w, map[string]string{"error": "internal error"}, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
