package handler

import (
	"errors"
	"net/http"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/metrics"
)

// User-facing error messages. These intentionally do not expose internal
// error details.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgInvalidRequestSum  = "Invalid request"

	ErrMsgItemNotFound       = "Item not found"
	ErrMsgCharacterNotFound  = "Character not found"
	ErrMsgAllocationNotFound = "Allocation not found"
	ErrMsgRecordNotFound     = "Loot record not found"
	ErrMsgItemOccupied       = "Item is already claimed. Retry with takeover to confirm."
	ErrMsgQuantityExceeded   = "Not enough unallocated quantity"
	ErrMsgDuplicateName      = "That name is already taken"
	ErrMsgNoRecipients       = "No player characters to distribute to"
)

// OccupiedResponse tells the client the mutation needs an explicit
// takeover confirmation.
type OccupiedResponse struct {
	Error           string `json:"error"`
	RequiresConfirm bool   `json:"requires_confirm"`
}

// TemplateRequiredResponse lists the conflicting items a merge needs a
// template choice for.
type TemplateRequiredResponse struct {
	Error      string        `json:"error"`
	Candidates []domain.Item `json:"candidates"`
}

// respondServiceError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var templateErr *domain.TemplateRequiredError
	var overflowErr *domain.AllocationOverflowError

	switch {
	case errors.As(err, &templateErr):
		respondJSON(w, http.StatusConflict, TemplateRequiredResponse{
			Error:      "Merging mismatched items needs a template choice",
			Candidates: templateErr.Candidates,
		})
	case errors.Is(err, domain.ErrItemOccupied):
		metrics.AllocationConflicts.Inc()
		respondJSON(w, http.StatusConflict, OccupiedResponse{
			Error:           ErrMsgItemOccupied,
			RequiresConfirm: true,
		})
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, http.StatusNotFound, ErrMsgItemNotFound)
	case errors.Is(err, domain.ErrCharacterNotFound):
		respondError(w, http.StatusNotFound, ErrMsgCharacterNotFound)
	case errors.Is(err, domain.ErrAllocationNotFound):
		respondError(w, http.StatusNotFound, ErrMsgAllocationNotFound)
	case errors.Is(err, domain.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, ErrMsgRecordNotFound)
	case errors.Is(err, domain.ErrQuantityExceeded):
		respondError(w, http.StatusBadRequest, ErrMsgQuantityExceeded)
	case errors.Is(err, domain.ErrDuplicateName):
		respondError(w, http.StatusConflict, ErrMsgDuplicateName)
	case errors.Is(err, domain.ErrNoRecipients):
		respondError(w, http.StatusBadRequest, ErrMsgNoRecipients)
	case errors.As(err, &overflowErr):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownRule):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
}
