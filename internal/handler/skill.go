package handler

import (
	"encoding/json"
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type SkillHandler struct {
	skillService *service.SkillService
}

func NewSkillHandler(skillService *service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	skill, err := h.skillService.Create(body.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill created successfully", map[string]any{"skill": skill})
}

func (h *SkillHandler) Extended(w http.ResponseWriter, r *http.Request) {
	skill, err := h.skillService.ExtendedByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill fetched successfully", map[string]any{"skill": skill})
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string          `json:"name"`
		Content json.RawMessage `json:"content"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	skill, err := h.skillService.Update(r.PathValue("id"), body.Name, body.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill updated successfully", map[string]any{"skill": skill})
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.skillService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill deleted successfully", nil)
}

func (h *SkillHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.skillService.Reorder(body.IDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skills reordered successfully", nil)
}

func (h *SkillHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.skillService.UploadImage(r.PathValue("id"), file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "image uploaded successfully", map[string]any{"url": url})
}

// CleanupImages drops uploads from an abandoned editing session.
func (h *SkillHandler) CleanupImages(w http.ResponseWriter, r *http.Request) {
	err := h.skillService.Cleanup(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "images cleaned up successfully", nil)
}
