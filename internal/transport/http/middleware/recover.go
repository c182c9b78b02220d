package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// GenericErrorMessage is the only detail a client sees when a handler panics.
const GenericErrorMessage = "Internal server error"

// RecoverJSON converts panics into a JSON 500 and logs the stack with the request id.
func RecoverJSON(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log.Error().
					Str("request_id", chimiddleware.GetReqID(r.Context())).
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				writeJSONError(w, r, http.StatusInternalServerError, GenericErrorMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
