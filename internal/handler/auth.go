package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName string `json:"userName"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	token, expiry, err := h.authService.SignIn(body.UserName, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.authService.SetJWTCookie(w, token, expiry)
	respondSuccess(w, "signed in successfully", nil)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondSuccess(w, "signed out successfully", nil)
}
