package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kalrend/warchest/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error, the HTTP response has already been written and
// the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSum,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}
