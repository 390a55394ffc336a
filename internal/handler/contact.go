package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type contactBody struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body contactBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	contact, err := h.contactService.Create(service.ContactParams{
		Label: body.Label,
		Name:  body.Name,
		Value: body.Value,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "contact created successfully", map[string]any{"contact": contact})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body contactBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	contact, err := h.contactService.Update(r.PathValue("id"), service.ContactParams{
		Label: body.Label,
		Name:  body.Name,
		Value: body.Value,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "contact updated successfully", map[string]any{"contact": contact})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.contactService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "contact deleted successfully", nil)
}

func (h *ContactHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.contactService.Reorder(body.IDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "contacts reordered successfully", nil)
}
