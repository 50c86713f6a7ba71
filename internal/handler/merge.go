package handler

import (
	"net/http"
	"strconv"

	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/merge"
	"github.com/kalrend/warchest/internal/metrics"
)

// MergeRequest consolidates two or more items into one record.
type MergeRequest struct {
	ItemIDs        []string `json:"item_ids" validate:"required,min=2"`
	TemplateItemID string   `json:"template_item_id,omitempty"`
}

// MergeCurrencyRequest sweeps currency items, optionally only named groups.
type MergeCurrencyRequest struct {
	Names []string `json:"names,omitempty"`
}

// HandleMergeItems consolidates items into one surviving record
func HandleMergeItems(svc merge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MergeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Merge items"); err != nil {
			return
		}

		res, err := svc.Merge(r.Context(), req.ItemIDs, merge.Options{
			TemplateItemID:  req.TemplateItemID,
			RequireTemplate: req.TemplateItemID == "",
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		metrics.MergeTotal.WithLabelValues(strconv.FormatBool(res.Conflict)).Inc()
		log.Info("Merge completed", "merged_item_id", res.MergedItemID, "conflict", res.Conflict)
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleMergeCurrency runs the batch currency consolidation
func HandleMergeCurrency(svc merge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MergeCurrencyRequest
		// An empty body means sweep everything.
		if r.ContentLength > 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Merge currency"); err != nil {
				return
			}
		}

		results, err := svc.MergeCurrency(r.Context(), req.Names...)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, results)
	}
}
