package model

import (
	"fmt"
	"strconv"
)

const (
	// BoardSize is the width and height of the grid
	BoardSize = 20
	// NumTiles is the number of cells on the grid
	NumTiles = BoardSize * BoardSize
)

// Tile identifies one grid cell as row*BoardSize + col
type Tile int

// NoTile marks an absent tile
const NoTile Tile = -1

// Named tiles for the four board corners
const (
	A1  Tile = 0
	T1  Tile = BoardSize - 1
	A20 Tile = NumTiles - BoardSize
	T20 Tile = NumTiles - 1
)

// BootstrapCorners are the only tiles a player may anchor their first piece
// on. The order here is the order new players list them as anchors.
var BootstrapCorners = [4]Tile{A1, A20, T1, T20}

// TileAt returns the tile at the given column and row.
// The result is not range checked; use InBounds first for untrusted input.
func TileAt(col, row int) Tile {
	return Tile(row*BoardSize + col)
}

// InBounds reports whether a column/row pair lies on the grid
func InBounds(col, row int) bool {
	return col >= 0 && col < BoardSize && row >= 0 && row < BoardSize
}

// Coords returns the column and row of the tile
func (t Tile) Coords() (col, row int) {
	return int(t) % BoardSize, int(t) / BoardSize
}

// Valid reports whether the tile lies on the grid
func (t Tile) Valid() bool {
	return t >= 0 && t < NumTiles
}

// String returns the tile name, a column letter followed by the 1-based row
func (t Tile) String() string {
	if !t.Valid() {
		return "-"
	}
	col, row := t.Coords()
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// ParseTile converts a name like "a1" or "t20" to a Tile
func ParseTile(name string) (Tile, error) {
	if len(name) < 2 || len(name) > 3 {
		return NoTile, fmt.Errorf("%w: %q", ErrInvalidTile, name)
	}
	col := int(name[0] - 'a')
	row, err := strconv.Atoi(name[1:])
	if err != nil || name[1] == '0' || name[1] == '+' || name[1] == '-' {
		return NoTile, fmt.Errorf("%w: %q", ErrInvalidTile, name)
	}
	if !InBounds(col, row-1) {
		return NoTile, fmt.Errorf("%w: %q", ErrInvalidTile, name)
	}
	return TileAt(col, row-1), nil
}
