package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalrend/warchest/internal/character"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
)

// CharacterRequest is the payload for creating or replacing a character.
type CharacterRequest struct {
	Name  string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Role  string `json:"role" validate:"required,role"`
	Color string `json:"color" validate:"max=20"`
	Notes string `json:"notes" validate:"max=4000"`
}

func (req CharacterRequest) toServiceRequest() character.CreateCharacterRequest {
	return character.CreateCharacterRequest{
		Name:  req.Name,
		Role:  domain.Role(req.Role),
		Color: req.Color,
		Notes: req.Notes,
	}
}

// HandleListCharacters returns the full roster
func HandleListCharacters(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chars, err := svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, chars)
	}
}

// HandleGetCharacter returns one character
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, ch)
	}
}

// HandleCreateCharacter adds a party member
func HandleCreateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		ch, err := svc.Create(r.Context(), req.toServiceRequest())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		log.Info("Character created", "character_id", ch.ID, "name", ch.Name)
		respondJSON(w, http.StatusCreated, ch)
	}
}

// HandleUpdateCharacter replaces a character's attributes
func HandleUpdateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update character"); err != nil {
			return
		}

		ch, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req.toServiceRequest())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, ch)
	}
}

// HandleDeleteCharacter removes a character; their allocations cascade
func HandleDeleteCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Character deleted"})
	}
}
