package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalrend/warchest/internal/allocation"
	"github.com/kalrend/warchest/internal/logger"
)

// SetAllocationRequest assigns a quantity of the item to a character.
type SetAllocationRequest struct {
	CharacterID string  `json:"character_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Mode        string  `json:"mode" validate:"required,allocmode"`
}

// HandleSetAllocation applies an allocation mutation on one item
func HandleSetAllocation(svc allocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetAllocationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set allocation"); err != nil {
			return
		}

		itemID := chi.URLParam(r, "id")
		view, err := svc.Set(r.Context(), itemID, req.CharacterID,
			req.Amount, allocation.Mode(req.Mode))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Allocation set", "item_id", itemID, "character_id", req.CharacterID, "mode", req.Mode)
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleRemoveAllocation deletes one character's allocation on an item
func HandleRemoveAllocation(svc allocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Remove(r.Context(),
			chi.URLParam(r, "itemID"), chi.URLParam(r, "characterID"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}
