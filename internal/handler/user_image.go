package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type UserImageHandler struct {
	userImageService *service.UserImageService
}

func NewUserImageHandler(userImageService *service.UserImageService) *UserImageHandler {
	return &UserImageHandler{userImageService: userImageService}
}

// Upsert fills the slot for the place given in the form.
func (h *UserImageHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	image, err := h.userImageService.Upsert(r.FormValue("place"), file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "user image saved successfully", map[string]any{"userImage": image})
}

func (h *UserImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.userImageService.Delete(r.URL.Query().Get("place"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "user image deleted successfully", nil)
}
