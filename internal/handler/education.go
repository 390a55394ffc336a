package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type EducationHandler struct {
	educationService *service.EducationService
}

func NewEducationHandler(educationService *service.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

type educationBody struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Description  string `json:"description"`
	IsCurrent    bool   `json:"isCurrent"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

func (b educationBody) params() service.EducationParams {
	return service.EducationParams{
		School:       b.School,
		Degree:       b.Degree,
		FieldOfStudy: b.FieldOfStudy,
		Description:  b.Description,
		IsCurrent:    b.IsCurrent,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
	}
}

func (h *EducationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body educationBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	education, err := h.educationService.Create(body.params())
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "education created successfully", map[string]any{"education": education})
}

func (h *EducationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body educationBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	education, err := h.educationService.Update(r.PathValue("id"), body.params())
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "education updated successfully", map[string]any{"education": education})
}

func (h *EducationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.educationService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "education deleted successfully", nil)
}
