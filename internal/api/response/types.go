package response

import (
	"time"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/game"
)

// Seat is one color's view in a game state
type Seat struct {
	Color           string   `json:"color"`
	Player          string   `json:"player"`
	Score           int      `json:"score"`
	Corners         int      `json:"corners"`
	CanPlay         bool     `json:"can_play"`
	RemainingPieces []string `json:"remaining_pieces"`
}

// BotMove is a move a bot seat played while handling the request
type BotMove struct {
	Color    string `json:"color"`
	Strategy string `json:"strategy"`
	Move     string `json:"move"`
}

// GameState is the full state of a live game
type GameState struct {
	ID            string   `json:"id"`
	State         string   `json:"state"`
	Seats         []Seat   `json:"seats"`
	CurrentPlayer string   `json:"current_player,omitempty"`
	Ply           int      `json:"ply"`
	Finished      bool     `json:"finished"`
	Winners       []string `json:"winners,omitempty"`
	Moves         []string `json:"moves"`
	// Board holds one string per row, row 20 first, using the color codes
	// B, Y, R, G and '.' for empty tiles
	Board     []string  `json:"board"`
	BotMoves  []BotMove `json:"bot_moves,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameStateFromModel builds a GameState from a stored game and its position
func GameStateFromModel(g *model.Game, b *board.Board, botMoves []game.BotMove) GameState {
	resp := GameState{
		ID:        string(g.ID),
		State:     string(g.State),
		Ply:       b.Ply(),
		Finished:  b.Finished(),
		Moves:     append([]string{}, g.Moves...),
		Board:     b.Rows(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	for i, player := range g.Seats {
		c := model.Color(i)
		resp.Seats = append(resp.Seats, Seat{
			Color:           c.String(),
			Player:          player,
			Score:           b.Score(c),
			Corners:         b.NPlayerCorners(c),
			CanPlay:         b.CanPlay(c),
			RemainingPieces: pieceNames(b.RemainingPieces(c)),
		})
	}
	if b.Finished() {
		resp.Winners = ColorNames(b.Winners())
	} else {
		resp.CurrentPlayer = b.CurrentPlayer().String()
	}
	for _, bm := range botMoves {
		resp.BotMoves = append(resp.BotMoves, BotMove{
			Color:    bm.Color.String(),
			Strategy: bm.Strategy,
			Move:     bm.Move.String(),
		})
	}
	return resp
}

// ColorNames converts colors to their names
func ColorNames(colors []model.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.String()
	}
	return out
}

func pieceNames(ps []model.Piece) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// GameSummary is a game as it appears in listings
type GameSummary struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Seats     []string  `json:"seats"`
	Plies     int       `json:"plies"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameSummaryFromModel converts a stored game
func GameSummaryFromModel(g *model.Game) GameSummary {
	return GameSummary{
		ID:        string(g.ID),
		State:     string(g.State),
		Seats:     g.Seats,
		Plies:     len(g.Moves),
		UpdatedAt: g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []GameSummary `json:"games"`
}

// LegalMoves lists the moves open to the side to move
type LegalMoves struct {
	Color  string   `json:"color,omitempty"`
	Unique bool     `json:"unique"`
	Count  int      `json:"count"`
	Moves  []string `json:"moves"`
}

// Match is a completed bot match
type Match struct {
	ID         string    `json:"id"`
	Seats      []string  `json:"seats"`
	Scores     []int     `json:"scores"`
	Winners    []string  `json:"winners"`
	Plies      int       `json:"plies"`
	Moves      []string  `json:"moves,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// MatchFromModel converts a match record. Moves are only included when
// withMoves is set.
func MatchFromModel(rec *model.MatchRecord, withMoves bool) Match {
	m := Match{
		ID:         string(rec.ID),
		Seats:      rec.Seats,
		Scores:     rec.Scores,
		Winners:    ColorNames(rec.Winners),
		Plies:      rec.Plies,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
		DurationMS: rec.Duration().Milliseconds(),
	}
	if withMoves {
		m.Moves = rec.Moves
	}
	return m
}

// MatchList is the response for listing matches
type MatchList struct {
	Matches []Match `json:"matches"`
}
