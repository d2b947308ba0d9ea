package model

import "fmt"

// Piece identifies one of the 21 polyomino shapes
type Piece int

// Pieces in catalog order
const (
	O1 Piece = iota
	I2
	I3
	L3
	I4
	L4
	Z4
	O4
	T4
	F5
	I5
	L5
	N5
	P5
	T5
	U5
	V5
	W5
	X5
	Y5
	Z5
)

// NumPieces is the number of distinct pieces each player owns
const NumPieces = 21

var pieceNames = [NumPieces]string{
	"O1", "I2", "I3", "L3", "I4", "L4", "Z4", "O4", "T4",
	"F5", "I5", "L5", "N5", "P5", "T5", "U5", "V5", "W5", "X5", "Y5", "Z5",
}

// Valid reports whether p names a real piece
func (p Piece) Valid() bool {
	return p >= 0 && p < NumPieces
}

// String returns the piece name, e.g. "Z5"
func (p Piece) String() string {
	if !p.Valid() {
		return "??"
	}
	return pieceNames[p]
}

// Size returns the number of tiles in the piece, which is also its score.
// The trailing digit of every piece name is its size.
func (p Piece) Size() int {
	if !p.Valid() {
		return 0
	}
	name := pieceNames[p]
	return int(name[len(name)-1] - '0')
}

// AllPieces returns every piece in catalog order
func AllPieces() []Piece {
	out := make([]Piece, NumPieces)
	for i := range out {
		out[i] = Piece(i)
	}
	return out
}

// ParsePiece converts a name like "Z5" to a Piece
func ParsePiece(name string) (Piece, error) {
	for i, n := range pieceNames {
		if n == name {
			return Piece(i), nil
		}
	}
	return -1, fmt.Errorf("%w: unknown piece %q", ErrInvalidMove, name)
}
