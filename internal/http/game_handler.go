package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/arena-booking/internal/application"
)

type gameService interface {
	ListGames(ctx context.Context, principal application.Principal, activeOnly bool) ([]application.Game, error)
	CreateGame(ctx context.Context, params application.CreateGameParams) (application.Game, error)
	UpdateGame(ctx context.Context, params application.UpdateGameParams) (application.Game, error)
	DeleteGame(ctx context.Context, principal application.Principal, gameID string) error
}

// GameHandler serves the game catalog endpoints.
type GameHandler struct {
	service   gameService
	responder responder
}

// NewGameHandler creates a game handler.
func NewGameHandler(service gameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{service: service, responder: newResponder(logger)}
}

// List enumerates catalog entries. ?active_only=true filters to selectable
// games.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	activeOnly := strings.EqualFold(r.URL.Query().Get("active_only"), "true")

	games, err := h.service.ListGames(r.Context(), principal, activeOnly)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	responses := make([]gameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, newGameResponse(game))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, responses)
}

// Create adds a catalog entry.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	game, err := h.service.CreateGame(r.Context(), application.CreateGameParams{
		Principal: principal,
		Input:     application.GameInput{Name: req.Name, ModeIcon: req.ModeIcon},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newGameResponse(game))
}

// Update applies a sparse patch to a catalog entry.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	gameID := strings.TrimSpace(chi.URLParam(r, "gameID"))
	if gameID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req gamePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	game, err := h.service.UpdateGame(r.Context(), application.UpdateGameParams{
		Principal: principal,
		GameID:    gameID,
		Patch:     application.GamePatch{Name: req.Name, ModeIcon: req.ModeIcon, IsActive: req.IsActive},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newGameResponse(game))
}

// Delete removes a catalog entry.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	gameID := strings.TrimSpace(chi.URLParam(r, "gameID"))
	if gameID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := h.service.DeleteGame(r.Context(), principal, gameID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
