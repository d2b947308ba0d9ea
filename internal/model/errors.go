package model

import "errors"

// Common errors used across the application
var (
	// Engine errors
	ErrInvalidPlayerCount = errors.New("number of players must be between 1 and 4")
	ErrInvalidTile        = errors.New("invalid tile")
	ErrInvalidMove        = errors.New("invalid move notation")
	ErrIllegalMove        = errors.New("illegal move")
	ErrNoLegalMoves       = errors.New("no legal moves")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrNothingToUndo = errors.New("no moves to undo")
	ErrInvalidSeat   = errors.New("invalid seat")

	// Match errors
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
