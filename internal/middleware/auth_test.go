package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/foliolab/folio/internal/service"
)

const (
	testOwnerID = "owner-id"
	testSecret  = "test-secret"
)

func signToken(t *testing.T, subject string, expiry time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newGatedHandler() http.Handler {
	auth := service.NewAuthService(nil, testOwnerID, testSecret, time.Hour, false)
	return RequireAdmin(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAdminPassesValidToken(t *testing.T) {
	handler := newGatedHandler()

	request := httptest.NewRequest(http.MethodGet, "/api/admin/thing", nil)
	request.AddCookie(&http.Cookie{Name: service.JWTCookieName, Value: signToken(t, testOwnerID, time.Hour)})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRequireAdminRejects(t *testing.T) {
	handler := newGatedHandler()

	cases := map[string]func(r *http.Request){
		"no cookie": func(r *http.Request) {},
		"malformed token": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: service.JWTCookieName, Value: "garbage"})
		},
		"expired token": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: service.JWTCookieName, Value: signToken(t, testOwnerID, -time.Hour)})
		},
		"wrong subject": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: service.JWTCookieName, Value: signToken(t, "intruder", time.Hour)})
		},
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/admin/thing", nil)
			prepare(request)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			require.Equal(t, http.StatusUnauthorized, recorder.Code)

			var body struct {
				IsSuccess bool   `json:"isSuccess"`
				Message   string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			require.False(t, body.IsSuccess)
			require.NotEmpty(t, body.Message)
		})
	}
}
