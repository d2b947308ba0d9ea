package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nhamil/tilewe-go/internal/api/request"
	"github.com/nhamil/tilewe-go/internal/api/response"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger.With(slog.String("component", "game-handler")),
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.Seats)
	if err != nil {
		WriteError(w, err)
		return
	}

	botMoves := h.processBotTurns(r.Context(), g.ID)
	h.writeState(r.Context(), w, g.ID, http.StatusCreated, botMoves)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]response.GameSummary, 0, len(games))}
	for _, g := range games {
		resp.Games = append(resp.Games, response.GameSummaryFromModel(g))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeState(r.Context(), w, gameID(r), http.StatusOK, nil)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// LegalMoves handles GET /api/v1/games/{id}/moves
func (h *GameHandler) LegalMoves(w http.ResponseWriter, r *http.Request) {
	unique := true
	if v := r.URL.Query().Get("unique"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, NewInvalidRequestError("unique must be a boolean"))
			return
		}
		unique = parsed
	}

	id := gameID(r)
	moves, err := h.gameController.LegalMoves(r.Context(), id, unique)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.LegalMoves{
		Unique: unique,
		Count:  len(moves),
		Moves:  model.MoveStrings(moves),
	}
	if _, b, err := h.gameController.GetGame(r.Context(), id); err == nil && !b.Finished() {
		resp.Color = b.CurrentPlayer().String()
	}
	response.JSON(w, http.StatusOK, resp)
}

// PlayMove handles POST /api/v1/games/{id}/moves
func (h *GameHandler) PlayMove(w http.ResponseWriter, r *http.Request) {
	var req request.PlayMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	color, ok := model.ParseColor(req.Color)
	if !ok {
		WriteError(w, NewInvalidRequestError("color must be one of blue, yellow, red, green"))
		return
	}

	id := gameID(r)
	// a bot left on move by an earlier failure plays before the human
	botMoves := h.processBotTurns(r.Context(), id)
	if _, _, err := h.gameController.PlayMove(r.Context(), id, color, req.Move); err != nil {
		WriteError(w, err)
		return
	}

	botMoves = append(botMoves, h.processBotTurns(r.Context(), id)...)
	h.writeState(r.Context(), w, id, http.StatusOK, botMoves)
}

// Undo handles POST /api/v1/games/{id}/undo
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	g, b, err := h.gameController.UndoMove(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, b, nil))
}

// processBotTurns lets bot seats answer a human move. A bot failure is
// logged and the state so far is still returned.
func (h *GameHandler) processBotTurns(ctx context.Context, id model.GameID) []game.BotMove {
	moves, err := h.gameController.ProcessBotTurns(ctx, id)
	if err != nil {
		h.logger.Warn("bot turns stopped",
			slog.String("game_id", string(id)),
			slog.Int("played", len(moves)),
			slog.String("error", err.Error()),
		)
	}
	return moves
}

func (h *GameHandler) writeState(ctx context.Context, w http.ResponseWriter, id model.GameID, status int, botMoves []game.BotMove) {
	g, b, err := h.gameController.GetGame(ctx, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	resp := response.GameStateFromModel(g, b, botMoves)
	if status == http.StatusCreated {
		response.Created(w, "/api/v1/games/"+string(g.ID), resp)
		return
	}
	response.JSON(w, status, resp)
}
