// Package pieces holds the immutable piece catalog and the placement point
// index derived from it. Both are built once per process and shared by
// every board.
package pieces

import (
	"fmt"

	"github.com/nhamil/tilewe-go/internal/model"
)

// Offset is a (column, row) displacement, either inside an orientation's
// bounding box or relative to a contact cell
type Offset struct {
	DCol int
	DRow int
}

// Tile returns the tile named by a local box offset
func (o Offset) Tile() model.Tile {
	return model.TileAt(o.DCol, o.DRow)
}

func offsetOf(t model.Tile) Offset {
	col, row := t.Coords()
	return Offset{DCol: col, DRow: row}
}

// less orders offsets row first, then column
func (o Offset) less(p Offset) bool {
	if o.DRow != p.DRow {
		return o.DRow < p.DRow
	}
	return o.DCol < p.DCol
}

// baseShapes lists every piece as rows of cells. Row 0 here is the top row
// as written; the north orientation stores the rows bottom-up.
var baseShapes = [model.NumPieces][]string{
	model.O1: {"#"},
	model.I2: {"#", "#"},
	model.I3: {"#", "#", "#"},
	model.L3: {"#.", "##"},
	model.I4: {"#", "#", "#", "#"},
	model.L4: {"#.", "#.", "##"},
	model.Z4: {"##.", ".##"},
	model.O4: {"##", "##"},
	model.T4: {"###", ".#."},
	model.F5: {".##", "##.", ".#."},
	model.I5: {"#", "#", "#", "#", "#"},
	model.L5: {"#.", "#.", "#.", "##"},
	model.N5: {".#", "##", "#.", "#."},
	model.P5: {"##", "##", "#."},
	model.T5: {"###", ".#.", ".#."},
	model.U5: {"#.#", "###"},
	model.V5: {"..#", "..#", "###"},
	model.W5: {"..#", ".##", "##."},
	model.X5: {".#.", "###", ".#."},
	model.Y5: {".#", "##", ".#", ".#"},
	model.Z5: {"##.", ".#.", ".##"},
}

// grid is a rectangular cell mask indexed [row][col]
type grid [][]bool

func (g grid) height() int { return len(g) }

func (g grid) width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g grid) equal(o grid) bool {
	if g.height() != o.height() || g.width() != o.width() {
		return false
	}
	for r := range g {
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

func newGrid(h, w int) grid {
	g := make(grid, h)
	for r := range g {
		g[r] = make([]bool, w)
	}
	return g
}

// rotateCCW turns the grid a quarter turn counter-clockwise
func (g grid) rotateCCW() grid {
	h, w := g.height(), g.width()
	out := newGrid(w, h)
	for r := 0; r < w; r++ {
		for c := 0; c < h; c++ {
			out[r][c] = g[c][w-1-r]
		}
	}
	return out
}

// mirror flips the grid left to right
func (g grid) mirror() grid {
	h, w := g.height(), g.width()
	out := newGrid(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out[r][c] = g[r][w-1-c]
		}
	}
	return out
}

// Orientation is one of the eight slots of a piece. Duplicate slots share
// the canonical slot's shape, tiles and contacts.
type Orientation struct {
	Piece    model.Piece
	Rotation model.Rotation

	// Canonical is the first slot with an identical shape; equal to Rotation when unique
	Canonical model.Rotation
	// Equivalent lists every slot whose canonical is this one, itself included.
	// It is only populated on canonical slots.
	Equivalent []model.Rotation

	Width  int
	Height int
	Tiles  []Offset
	// Contacts are the cells that may sit on an anchor tile, in row-major order
	Contacts []Offset

	// points[i] is the placement point ordinal for Contacts[i]
	points []int
	cells  grid
}

// Unique reports whether this slot is its own canonical orientation
func (o *Orientation) Unique() bool {
	return o.Canonical == o.Rotation
}

// pieceInfo holds per-piece derived facts
type pieceInfo struct {
	orientations [model.NumRotations]Orientation
	nUnique      int
}

// Catalog is the table of all pieces and their orientations
type Catalog struct {
	pieces [model.NumPieces]pieceInfo
}

func newCatalog() *Catalog {
	c := &Catalog{}
	for p := range model.AllPieces() {
		c.buildPiece(model.Piece(p))
	}
	return c
}

func parseShape(rows []string) grid {
	g := newGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		for col, ch := range line {
			g[r][col] = ch == '#'
		}
	}
	return g
}

func (c *Catalog) buildPiece(p model.Piece) {
	info := &c.pieces[p]

	written := parseShape(baseShapes[p])
	north := make(grid, 0, written.height())
	for r := written.height() - 1; r >= 0; r-- {
		north = append(north, written[r])
	}

	var shapes [model.NumRotations]grid
	shapes[model.North] = north
	for r := model.East; r <= model.West; r++ {
		shapes[r] = shapes[r-1].rotateCCW()
	}
	for r := model.North; r <= model.West; r++ {
		shapes[r+model.NorthFlipped] = shapes[r].mirror()
	}

	for slot := model.Rotation(0); slot < model.NumRotations; slot++ {
		o := &info.orientations[slot]
		o.Piece = p
		o.Rotation = slot
		o.Canonical = slot

		for prev := model.Rotation(0); prev < slot; prev++ {
			if info.orientations[prev].Unique() && shapes[prev].equal(shapes[slot]) {
				o.Canonical = prev
				break
			}
		}

		if !o.Unique() {
			canon := &info.orientations[o.Canonical]
			canon.Equivalent = append(canon.Equivalent, slot)
			continue
		}

		info.nUnique++
		o.Equivalent = []model.Rotation{slot}
		o.cells = shapes[slot]
		o.Width = o.cells.width()
		o.Height = o.cells.height()
		o.Tiles, o.Contacts = scanCells(o.cells)
	}
}

// scanCells lists the occupied cells and the contact cells of a shape.
// A cell is a contact when it has at most one neighbour, or exactly one
// vertical and one horizontal neighbour.
func scanCells(g grid) (tiles, contacts []Offset) {
	h, w := g.height(), g.width()
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if !g[r][c] {
				continue
			}
			tiles = append(tiles, Offset{DCol: c, DRow: r})

			vertical, horizontal := 0, 0
			if r > 0 && g[r-1][c] {
				vertical++
			}
			if r < h-1 && g[r+1][c] {
				vertical++
			}
			if c > 0 && g[r][c-1] {
				horizontal++
			}
			if c < w-1 && g[r][c+1] {
				horizontal++
			}

			if vertical+horizontal <= 1 || (vertical == 1 && horizontal == 1) {
				contacts = append(contacts, Offset{DCol: c, DRow: r})
			}
		}
	}
	return tiles, contacts
}

// Orientation returns the slot for a piece, which may be a duplicate
func (c *Catalog) Orientation(p model.Piece, r model.Rotation) *Orientation {
	return &c.pieces[p].orientations[r]
}

// Canonical returns the canonical orientation for a slot
func (c *Catalog) Canonical(p model.Piece, r model.Rotation) *Orientation {
	info := &c.pieces[p]
	return &info.orientations[info.orientations[r].Canonical]
}

// NumUnique returns the number of distinct orientations of a piece
func (c *Catalog) NumUnique(p model.Piece) int {
	return c.pieces[p].nUnique
}

// NumContacts returns the number of contact cells of a piece
func (c *Catalog) NumContacts(p model.Piece) int {
	return len(c.pieces[p].orientations[model.North].Contacts)
}

// NumTiles returns the number of cells of a piece
func (c *Catalog) NumTiles(p model.Piece) int {
	return len(c.pieces[p].orientations[model.North].Tiles)
}

// Shape renders an orientation as rows of '#' and '.', top row first
func (c *Catalog) Shape(p model.Piece, r model.Rotation) []string {
	o := c.Canonical(p, r)
	out := make([]string, o.Height)
	for row := 0; row < o.Height; row++ {
		line := make([]byte, o.Width)
		for col := 0; col < o.Width; col++ {
			line[col] = '.'
			if o.cells[o.Height-1-row][col] {
				line[col] = '#'
			}
		}
		out[row] = string(line)
	}
	return out
}

// validate checks internal consistency and panics on violation
func (c *Catalog) validate() {
	for p := range c.pieces {
		info := &c.pieces[p]
		mapped := 0
		for r := range info.orientations {
			o := &info.orientations[r]
			canon := &info.orientations[o.Canonical]
			if !canon.Unique() || o.Canonical > o.Rotation {
				panic(fmt.Sprintf("pieces: %s%s maps to non-canonical slot", o.Piece, o.Rotation))
			}
			if o.Unique() {
				mapped += len(o.Equivalent)
				if len(o.Contacts) == 0 {
					panic(fmt.Sprintf("pieces: %s%s has no contacts", o.Piece, o.Rotation))
				}
				if len(o.Tiles) != model.Piece(p).Size() {
					panic(fmt.Sprintf("pieces: %s%s has %d tiles", o.Piece, o.Rotation, len(o.Tiles)))
				}
			}
		}
		if mapped != model.NumRotations {
			panic(fmt.Sprintf("pieces: %s maps %d slots", model.Piece(p), mapped))
		}
	}
}
