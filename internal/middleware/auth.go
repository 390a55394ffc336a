package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

// RequireAdmin gates a route behind the owner's session cookie. The token
// is read from the jwt cookie and validated; anything short of a valid
// owner token gets a 401 envelope and the handler never runs.
func RequireAdmin(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			cookie, err := r.Cookie(service.JWTCookieName)
			if err == nil {
				token = cookie.Value
			}

			err = auth.Authorize(token)
			if err != nil {
				slog.Warn("admin request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err,
				)
				writeEnvelope(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"isSuccess": false,
		"message":   message,
	})
}
