package model

import (
	"fmt"
	"strings"
)

// Move places a piece in a given orientation so that its contact cell,
// named in the orientation's local box, lands on the To tile.
// Moves are plain values and compare with ==.
type Move struct {
	Piece    Piece
	Rotation Rotation
	Contact  Tile
	To       Tile
}

// String returns the move notation, e.g. "Z5ef-c1t1"
func (m Move) String() string {
	return m.Piece.String() + m.Rotation.String() + "-" + m.Contact.String() + m.To.String()
}

// ParseMove reads the notation produced by Move.String
func ParseMove(s string) (Move, error) {
	bad := func() (Move, error) {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	head, tail, ok := strings.Cut(s, "-")
	if !ok || len(head) < 3 {
		return bad()
	}
	piece, err := ParsePiece(head[:2])
	if err != nil {
		return bad()
	}
	rot, ok := ParseRotation(head[2:])
	if !ok {
		return bad()
	}

	// tail is two tile names back to back; the second starts at the next letter
	split := strings.IndexFunc(tail[min(1, len(tail)):], func(r rune) bool {
		return r >= 'a' && r <= 'z'
	})
	if split < 0 {
		return bad()
	}
	split++
	contact, err := ParseTile(tail[:split])
	if err != nil {
		return bad()
	}
	to, err := ParseTile(tail[split:])
	if err != nil {
		return bad()
	}

	return Move{Piece: piece, Rotation: rot, Contact: contact, To: to}, nil
}

// ParseMoves reads a list of move notations
func ParseMoves(notations []string) ([]Move, error) {
	moves := make([]Move, 0, len(notations))
	for _, n := range notations {
		m, err := ParseMove(n)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// MoveStrings formats a list of moves in notation
func MoveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
