package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"streamd/pkg/logging"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// withRequestID tags every request with an id for log correlation. A caller
// supplied id is kept, so ids can follow requests across hops.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestIDFrom returns the request id tagged by withRequestID.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withPreflight answers CORS preflight requests for every path, so the
// panel can call the API from another origin during development.
func withPreflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// withAccessLog logs one line per request at debug level. The panel polls
// every few seconds, so this stays out of the default log output.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		logging.Debug("API", "%s %s -> %d in %s (request %s)",
			req.Method, req.URL.Path, rec.status, time.Since(begin), requestIDFrom(req.Context()))
	})
}
