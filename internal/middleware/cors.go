package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-MCP-Secret, MCP-Protocol-Version, MCP-Session-Id"
	corsAllowMethods = "POST, GET, OPTIONS, PUT, DELETE"
)

// Cors lets through browsers from allowedOrigins, the curl and test
// agents, and MCP clients (which usually send no Origin). Everything else
// gets a 403.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimSuffix(o, "/")] = true
	}

	allowed := func(r *http.Request) bool {
		userAgent := r.Header.Get("User-Agent")
		return origins[r.Header.Get("Origin")] ||
			strings.HasPrefix(userAgent, "curl/") ||
			strings.HasPrefix(userAgent, "test-agent") ||
			strings.HasPrefix(r.URL.Path, "/mcp")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !allowed(r) {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)

			next.ServeHTTP(w, r)
		})
	}
}
