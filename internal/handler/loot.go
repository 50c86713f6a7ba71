package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalrend/warchest/internal/distribute"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/loot"
)

// PublishRequest is the payload of a publish event. Items and allocations
// get their deep validation inside the coordinator; the handler only
// checks the envelope.
type PublishRequest struct {
	Mode         string                                 `json:"mode" validate:"required"`
	Items        []domain.ProposedItem                  `json:"items" validate:"required,min=1"`
	Currency     []domain.CurrencyGain                  `json:"currency,omitempty"`
	Distribution map[string][]domain.ProposedAllocation `json:"distribution,omitempty"`
	Note         string                                 `json:"note" validate:"max=4000"`
	Memo         string                                 `json:"memo" validate:"max=4000"`
}

// AutoAssignRequest asks for a distribution plan without committing it.
type AutoAssignRequest struct {
	Items   []domain.ProposedItem `json:"items" validate:"required,min=1"`
	Rule    string                `json:"rule" validate:"required,rule"`
	Weights map[string]float64    `json:"weights,omitempty"`
}

// UpdateMemoRequest edits the memo of a loot record.
type UpdateMemoRequest struct {
	Memo string `json:"memo" validate:"max=4000"`
}

// HandlePublish commits a loot or expense event
func HandlePublish(svc loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PublishRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Publish"); err != nil {
			return
		}

		result, err := svc.Publish(r.Context(), &domain.PublishEvent{
			Mode:         domain.PublishMode(req.Mode),
			Items:        req.Items,
			Currency:     req.Currency,
			Distribution: req.Distribution,
			Note:         req.Note,
			Memo:         req.Memo,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Publish committed", "mode", req.Mode, "items", len(req.Items), "record_id", result.LootRecordID)
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleAutoAssign plans a distribution over the player roster
func HandleAutoAssign(svc loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AutoAssignRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Auto assign"); err != nil {
			return
		}

		assignments, err := svc.AutoAssign(r.Context(), &loot.AutoAssignRequest{
			Items:   req.Items,
			Rule:    distribute.Rule(req.Rule),
			Weights: req.Weights,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, assignments)
	}
}

// HandleListRecords returns the loot audit trail, newest first
func HandleListRecords(svc loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.Records(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// HandleUpdateMemo edits the one mutable field of a loot record
func HandleUpdateMemo(svc loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateMemoRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update memo"); err != nil {
			return
		}

		if err := svc.UpdateMemo(r.Context(), chi.URLParam(r, "id"), req.Memo); err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Memo updated"})
	}
}
