package model

import (
	"slices"
	"time"
)

// GameID uniquely identifies a live game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress"
	GameStateFinished   GameState = "finished"
)

// SeatHuman marks a seat whose moves arrive through the API
const SeatHuman = "human"

// Game is a live game as persisted. The board position is not stored;
// it is rebuilt by replaying Moves.
type Game struct {
	ID    GameID
	State GameState

	// Seats holds one entry per color in turn order: SeatHuman or a bot strategy name
	Seats []string

	// Moves is the move history in notation
	Moves []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NumPlayers returns the number of seats
func (g *Game) NumPlayers() int {
	return len(g.Seats)
}

// IsBotSeat reports whether the given color is played by a bot
func (g *Game) IsBotSeat(c Color) bool {
	if int(c) < 0 || int(c) >= len(g.Seats) {
		return false
	}
	return g.Seats[c] != SeatHuman
}

// HasHumanSeat reports whether any color is played by a human
func (g *Game) HasHumanSeat() bool {
	return slices.Contains(g.Seats, SeatHuman)
}

// IsFinished returns true once no seat can move
func (g *Game) IsFinished() bool {
	return g.State == GameStateFinished
}
