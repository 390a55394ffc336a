package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Extended serves the full visitor-facing profile.
func (h *UserHandler) Extended(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Extended()
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "user fetched successfully", map[string]any{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName string `json:"userName"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Title    string `json:"title"`
		AboutMe  string `json:"aboutMe"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userService.Update(service.UpdateUserParams{
		UserName: body.UserName,
		Password: body.Password,
		Name:     body.Name,
		Title:    body.Title,
		AboutMe:  body.AboutMe,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "user updated successfully", map[string]any{"user": user})
}

func (h *UserHandler) UploadCV(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.userService.UploadCV(file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "cv uploaded successfully", map[string]any{"cvUrl": url})
}

func (h *UserHandler) DeleteCV(w http.ResponseWriter, r *http.Request) {
	err := h.userService.DeleteCV()
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "cv deleted successfully", nil)
}
