package api

import (
	"net/http"
	"runtime/debug"

	"github.com/studylist/studylist-sync/internal/api/respond"
	"github.com/studylist/studylist-sync/internal/auth"
	"github.com/studylist/studylist-sync/internal/platform/logger"
)

var panicLog = logger.New("studylist-sync")

// Recover intercepts panics from downstream handlers so one bad aggregate
// cannot take the process down. The response is a generic 500; details go
// to the log only.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				panicLog.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("request handler panicked")
				respond.WriteInternalError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS answers preflight requests and stamps permissive headers on every
// response so the browser extension can call the API from any origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,OPTIONS,PATCH,DELETE,POST,PUT")
		h.Set("Access-Control-Allow-Headers",
			"X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid bearer token before they reach
// any handler. The verified identity is not threaded further; handlers trust
// the external id in the path, matching the upstream contract.
func RequireAuth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractBearer(r)
			if err != nil {
				respond.WriteUnauthorized(w, "No token provided")
				return
			}
			if _, err := verifier.Verify(r.Context(), token); err != nil {
				respond.WriteUnauthorized(w, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
