package httpx

import (
	"io"
	"net/http"
)

// healthHandler answers readiness/liveness probes. Deliberately unauthenticated
// and independent of Postgres and Redis: it reports that the process serves,
// not that the gate's stores are reachable.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	// A write failure means the prober hung up; nothing to do.
	_, _ = io.WriteString(w, `{"status":"ok","service":"rotaportal"}`)
}
