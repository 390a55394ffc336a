package handler

import (
	"encoding/json"
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type PortfolioItemHandler struct {
	portfolioService *service.PortfolioService
}

func NewPortfolioItemHandler(portfolioService *service.PortfolioService) *PortfolioItemHandler {
	return &PortfolioItemHandler{portfolioService: portfolioService}
}

type portfolioItemBody struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Content     json.RawMessage `json:"content"`
}

func (h *PortfolioItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body portfolioItemBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	item, err := h.portfolioService.Create(service.PortfolioItemParams{
		Title:       body.Title,
		Description: body.Description,
		Content:     body.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio item created successfully", map[string]any{"portfolioItem": item})
}

// AllExtended serves the visitor list, each item with its linked skills.
func (h *PortfolioItemHandler) AllExtended(w http.ResponseWriter, r *http.Request) {
	items, err := h.portfolioService.AllExtended()
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio items fetched successfully", map[string]any{"portfolioItems": items})
}

func (h *PortfolioItemHandler) Extended(w http.ResponseWriter, r *http.Request) {
	item, err := h.portfolioService.ExtendedByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio item fetched successfully", map[string]any{"portfolioItem": item})
}

func (h *PortfolioItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body portfolioItemBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	item, err := h.portfolioService.Update(r.PathValue("id"), service.PortfolioItemParams{
		Title:       body.Title,
		Description: body.Description,
		Content:     body.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio item updated successfully", map[string]any{"portfolioItem": item})
}

func (h *PortfolioItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.portfolioService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio item deleted successfully", nil)
}

func (h *PortfolioItemHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.portfolioService.Reorder(body.IDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "portfolio items reordered successfully", nil)
}

func (h *PortfolioItemHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.portfolioService.UploadImage(r.PathValue("id"), file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "image uploaded successfully", map[string]any{"url": url})
}

// CleanupImages drops uploads from an abandoned editing session.
func (h *PortfolioItemHandler) CleanupImages(w http.ResponseWriter, r *http.Request) {
	err := h.portfolioService.Cleanup(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "images cleaned up successfully", nil)
}

func (h *PortfolioItemHandler) UpsertCoverImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.portfolioService.UpsertCoverImage(r.PathValue("id"), file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "cover image saved successfully", map[string]any{"coverImageUrl": url})
}

func (h *PortfolioItemHandler) DeleteCoverImage(w http.ResponseWriter, r *http.Request) {
	err := h.portfolioService.DeleteCoverImage(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "cover image deleted successfully", nil)
}
