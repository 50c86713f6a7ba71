package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/warehouse"
)

// ItemRequest is the payload for creating or replacing a warehouse item.
type ItemRequest struct {
	Name               string  `json:"name" validate:"required,max=200,excludesall=\x00\n\r"`
	Category           string  `json:"category" validate:"required,category"`
	Slot               *string `json:"slot,omitempty" validate:"omitempty,max=50"`
	Quantity           float64 `json:"quantity" validate:"gte=0"`
	UnitValue          float64 `json:"unit_value" validate:"gte=0"`
	Weight             float64 `json:"weight" validate:"gte=0"`
	Description        string  `json:"description" validate:"max=4000"`
	DisplayDescription string  `json:"display_description" validate:"max=4000"`
}

func (req ItemRequest) toServiceRequest() warehouse.CreateItemRequest {
	return warehouse.CreateItemRequest{
		Name:               req.Name,
		Category:           domain.Category(req.Category),
		Slot:               req.Slot,
		Quantity:           req.Quantity,
		UnitValue:          req.UnitValue,
		Weight:             req.Weight,
		Description:        req.Description,
		DisplayDescription: req.DisplayDescription,
	}
}

// HandleListItems returns every item with its allocation breakdown
func HandleListItems(svc warehouse.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListItems(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetItem returns one item view
func HandleGetItem(svc warehouse.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetItem(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleCreateItem creates a warehouse item
func HandleCreateItem(svc warehouse.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		view, err := svc.CreateItem(r.Context(), req.toServiceRequest())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Item created", "item_id", view.ID, "name", view.Name)
		respondJSON(w, http.StatusCreated, view)
	}
}

// HandleUpdateItem replaces an item's attributes
func HandleUpdateItem(svc warehouse.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
			return
		}

		view, err := svc.UpdateItem(r.Context(), chi.URLParam(r, "id"), req.toServiceRequest())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleDeleteItem removes an item and its allocations
func HandleDeleteItem(svc warehouse.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item deleted"})
	}
}
