package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/game"
	"github.com/nhamil/tilewe-go/internal/web/middleware"
	"github.com/nhamil/tilewe-go/internal/web/templates"
)

// GameHandler handles the game page and move form
type GameHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger.With(slog.String("component", "web-game")),
	}
}

// View renders the board, the score table and, when a human is to move,
// the move form
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])
	g, b, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	data := gameData(g, b)
	data.Flash = middleware.GetFlash(r.Context())
	writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return templates.Game(buf, data)
	})
}

// Move handles the move form and redirects back to the game page. Errors
// come back as a flash message.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])
	back := "/games/" + string(id)

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	color, ok := model.ParseColor(r.PostForm.Get("color"))
	if !ok {
		middleware.SetFlash(w, "error", "Unknown color")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	notation := strings.TrimSpace(r.PostForm.Get("move"))
	if _, _, err := h.gameController.PlayMove(r.Context(), id, color, notation); err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if _, err := h.gameController.ProcessBotTurns(r.Context(), id); err != nil {
		h.logger.Warn("bot turns stopped",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func gameData(g *model.Game, b *board.Board) templates.GameData {
	data := templates.GameData{
		PageData: templates.PageData{Title: "Game " + string(g.ID)},
		ID:       string(g.ID),
		Finished: b.Finished(),
		Moves:    g.Moves,
	}

	for col := range model.BoardSize {
		data.Columns = append(data.Columns, string(rune('a'+col)))
	}
	for row := model.BoardSize - 1; row >= 0; row-- {
		r := templates.Row{Number: row + 1}
		for col := range model.BoardSize {
			t := model.TileAt(col, row)
			owner := b.ColorAt(t)
			class := "empty"
			if owner != model.NoColor {
				class = owner.String()
			}
			r.Cells = append(r.Cells, templates.Cell{
				Tile:  t.String(),
				Class: class,
				Code:  string(owner.Code()),
			})
		}
		data.Rows = append(data.Rows, r)
	}

	winners := b.Winners()
	for i, player := range g.Seats {
		c := model.Color(i)
		data.Seats = append(data.Seats, templates.SeatRow{
			Color:     c.String(),
			Player:    player,
			Score:     b.Score(c),
			Corners:   b.NPlayerCorners(c),
			Remaining: b.NRemainingPieces(c),
			IsCurrent: !b.Finished() && b.CurrentPlayer() == c,
			IsWinner:  slices.Contains(winners, c),
		})
		if slices.Contains(winners, c) {
			data.Winners = append(data.Winners, c.String())
		}
	}

	if !b.Finished() {
		data.CurrentPlayer = b.CurrentPlayer().String()
		data.HumanToMove = !g.IsBotSeat(b.CurrentPlayer())
	}
	return data
}
