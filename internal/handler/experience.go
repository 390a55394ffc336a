package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type ExperienceHandler struct {
	experienceService *service.ExperienceService
}

func NewExperienceHandler(experienceService *service.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{experienceService: experienceService}
}

type experienceBody struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"isCurrent"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

func (b experienceBody) params() service.ExperienceParams {
	return service.ExperienceParams{
		Title:       b.Title,
		Company:     b.Company,
		Description: b.Description,
		IsCurrent:   b.IsCurrent,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
	}
}

func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body experienceBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	experience, err := h.experienceService.Create(body.params())
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "experience created successfully", map[string]any{"experience": experience})
}

func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body experienceBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	experience, err := h.experienceService.Update(r.PathValue("id"), body.params())
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "experience updated successfully", map[string]any{"experience": experience})
}

func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.experienceService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "experience deleted successfully", nil)
}
