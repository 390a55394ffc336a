package handler

import (
	"net/http"

	"github.com/foliolab/folio/internal/service"
)

type RelationHandler struct {
	portfolioService *service.PortfolioService
}

func NewRelationHandler(portfolioService *service.PortfolioService) *RelationHandler {
	return &RelationHandler{portfolioService: portfolioService}
}

type relationBody struct {
	PortfolioItemID string `json:"portfolioItemId"`
	SkillID         string `json:"skillId"`
}

func (h *RelationHandler) Attach(w http.ResponseWriter, r *http.Request) {
	var body relationBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.portfolioService.AttachSkill(body.PortfolioItemID, body.SkillID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill attached successfully", nil)
}

func (h *RelationHandler) Detach(w http.ResponseWriter, r *http.Request) {
	var body relationBody
	err := decodeJSON(r, &body)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.portfolioService.DetachSkill(body.PortfolioItemID, body.SkillID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "skill detached successfully", nil)
}
