package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/game"
	"github.com/nhamil/tilewe-go/internal/web/middleware"
	"github.com/nhamil/tilewe-go/internal/web/templates"
)

// HomeHandler handles the game list and game creation
type HomeHandler struct {
	gameController game.ControllerInterface
	registry       *bot.Registry
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController game.ControllerInterface, registry *bot.Registry, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		registry:       registry,
		logger:         logger.With(slog.String("component", "web-home")),
	}
}

// Home renders the list of games
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data := templates.HomeData{
		PageData: templates.PageData{
			Title: "Games",
			Flash: middleware.GetFlash(r.Context()),
		},
		SeatOptions: append([]string{model.SeatHuman}, h.registry.Names()...),
		SeatSlots: []templates.SeatSlot{
			{Color: model.Blue.String(), Default: model.SeatHuman},
			{Color: model.Yellow.String(), Default: model.BotStrategyRandom},
			{Color: model.Red.String()},
			{Color: model.Green.String()},
		},
	}
	// newest first
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		data.Games = append(data.Games, templates.GameRow{
			ID:        string(g.ID),
			State:     string(g.State),
			Seats:     g.Seats,
			Plies:     len(g.Moves),
			UpdatedAt: g.UpdatedAt,
		})
	}

	writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return templates.Home(buf, data)
	})
}

// Create handles the new game form. Empty seat selectors are skipped, so
// the filled ones are packed into turn order.
func (h *HomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var seats []string
	for _, seat := range r.PostForm["seat"] {
		if seat != "" {
			seats = append(seats, seat)
		}
	}

	g, err := h.gameController.CreateGame(r.Context(), seats)
	if err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.gameController.ProcessBotTurns(r.Context(), g.ID); err != nil {
		h.logger.Warn("bot turns stopped",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, "/games/"+string(g.ID), http.StatusSeeOther)
}
