package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliolab/folio/internal/repository"
)

// JWTCookieName is the cookie carrying the admin session token.
const JWTCookieName = "jwt"

var ErrInvalidCredentials = fmt.Errorf("invalid user name or password: %w", ErrUnauthorized)

type AuthService struct {
	userRepository repository.UserRepository
	ownerID        string
	jwtSecret      string
	jwtExpiry      time.Duration
	isProduction   bool
}

func NewAuthService(
	userRepository repository.UserRepository,
	ownerID string,
	jwtSecret string,
	jwtExpiry time.Duration,
	isProduction bool,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		ownerID:        ownerID,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
		isProduction:   isProduction,
	}
}

// SignIn verifies the credentials and returns a signed session token.
// Only the configured owner can sign in; any other account, wrong
// password, or unknown user name collapses to the same error.
func (s *AuthService) SignIn(userName, password string) (string, time.Time, error) {
	user, err := s.userRepository.ByUserName(userName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != s.ownerID {
		return "", time.Time{}, ErrInvalidCredentials
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiry := time.Now().Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": expiry.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiry, nil
}

// Authorize validates a session token and checks that its subject is the
// owner. Missing, malformed, expired, and wrong-subject tokens all report
// as ErrUnauthorized; the wrapped message carries the distinction for logs.
func (s *AuthService) Authorize(tokenString string) error {
	if tokenString == "" {
		return fmt.Errorf("token missing: %w", ErrUnauthorized)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token expired: %w", ErrUnauthorized)
		}
		return fmt.Errorf("token invalid: %w", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("token invalid: %w", ErrUnauthorized)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject != s.ownerID {
		return fmt.Errorf("token subject is not the owner: %w", ErrUnauthorized)
	}

	return nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
