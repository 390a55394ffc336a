package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
)

const (
	testOwnerID  = "owner-id"
	testSecret   = "test-secret"
	testPassword = "correct horse battery staple"
)

type stubUserRepository struct {
	user *model.User
}

func (r *stubUserRepository) Create(user *model.User) error { return nil }

func (r *stubUserRepository) ByID(id string) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepository) ByUserName(userName string) (*model.User, error) {
	if r.user != nil && r.user.UserName == userName {
		return r.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepository) Count() (int, error) { return 1, nil }

func (r *stubUserRepository) Update(user *model.User) error { return nil }

func (r *stubUserRepository) UpdateCVURL(id string, cvURL *string) error { return nil }

func newTestAuthService(t *testing.T, userID string, expiry time.Duration) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepository{user: &model.User{
		ID:           userID,
		UserName:     "owner",
		PasswordHash: string(hash),
	}}

	return NewAuthService(repo, testOwnerID, testSecret, expiry, false)
}

func TestSignInAndAuthorize(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	token, expiry, err := auth.SignIn("owner", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	require.NoError(t, auth.Authorize(token))
}

func TestSignInWrongPassword(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	_, _, err := auth.SignIn("owner", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignInUnknownUser(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	_, _, err := auth.SignIn("somebody", testPassword)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignInRejectsNonOwnerAccount(t *testing.T) {
	// Valid credentials, but the account is not the configured owner.
	auth := newTestAuthService(t, "other-id", time.Hour)

	_, _, err := auth.SignIn("owner", testPassword)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeMissingToken(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	require.ErrorIs(t, auth.Authorize(""), ErrUnauthorized)
}

func TestAuthorizeMalformedToken(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	require.ErrorIs(t, auth.Authorize("not-a-jwt"), ErrUnauthorized)
}

func TestAuthorizeExpiredToken(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, -time.Hour)

	token, _, err := auth.SignIn("owner", testPassword)
	require.NoError(t, err)

	require.ErrorIs(t, auth.Authorize(token), ErrUnauthorized)
}

func TestAuthorizeWrongSubject(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	// Correctly signed and unexpired, but issued for someone else.
	claims := jwt.MapClaims{
		"sub": "intruder",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	require.ErrorIs(t, auth.Authorize(token), ErrUnauthorized)
}

func TestAuthorizeWrongSignature(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	claims := jwt.MapClaims{
		"sub": testOwnerID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	require.ErrorIs(t, auth.Authorize(token), ErrUnauthorized)
}

func TestJWTCookieLifecycle(t *testing.T) {
	auth := newTestAuthService(t, testOwnerID, time.Hour)

	recorder := httptest.NewRecorder()
	auth.SetJWTCookie(recorder, "token-value", time.Now().Add(time.Hour))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, JWTCookieName, cookies[0].Name)
	require.Equal(t, "token-value", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	recorder = httptest.NewRecorder()
	auth.ClearJWTCookie(recorder)

	cookies = recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, JWTCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.True(t, cookies[0].Expires.Before(time.Now()))
}
