package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/httpjson"
)

// Recover turns a handler panic into a 500 {"detail": ...} response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Ctx(r.Context()).Error().
				Str("panic", fmt.Sprint(rec)).
				Msg("❌ handler panicked")
			httpjson.WriteError(w, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
