package pieces

import (
	"fmt"
	"slices"
	"sync"

	"github.com/nhamil/tilewe-go/internal/model"
)

// OffsetRadius bounds every offset stored in a placement point. Pieces are
// at most five cells long, so tiles sit within 4 of the contact and their
// neighbours within 5.
const OffsetRadius = 5

const offsetSpan = 2*OffsetRadius + 1

// offsetSlot maps an offset to its position in the dense tables, or -1
func offsetSlot(dCol, dRow int) int {
	if dCol < -OffsetRadius || dCol > OffsetRadius || dRow < -OffsetRadius || dRow > OffsetRadius {
		return -1
	}
	return (dRow+OffsetRadius)*offsetSpan + (dCol + OffsetRadius)
}

// PlacementPoint is one (piece, orientation, contact) triple with all of its
// offsets re-based so the contact cell is the origin
type PlacementPoint struct {
	ID       int
	Piece    model.Piece
	Rotation model.Rotation
	// Contact is the contact cell in the orientation's local box
	Contact model.Tile

	Tiles []Offset
	// Adjacent cells touch a tile edge-on without being part of the piece
	Adjacent []Offset
	// Corners touch a tile diagonally and are neither tiles nor adjacent
	Corners []Offset
}

// RelOffset is an offset together with its dense table slot
type RelOffset struct {
	Offset
	Slot int
}

// Index is the full placement point universe plus the lookup tables derived
// from it
type Index struct {
	*Catalog

	points []PlacementPoint

	withTile [offsetSpan * offsetSpan]PPSet
	withAdj  [offsetSpan * offsetSpan]PPSet
	byPiece  [model.NumPieces]PPSet
	all      PPSet

	// relOffsets lists every offset used as a tile or adjacency by any point
	relOffsets []RelOffset
}

// Default returns the process-wide index, building it on first use
var Default = sync.OnceValue(NewIndex)

// NewIndex builds the catalog and placement point index from scratch.
// Callers normally want Default.
func NewIndex() *Index {
	c := newCatalog()
	c.validate()

	idx := &Index{Catalog: c}
	for p := range c.pieces {
		info := &c.pieces[p]
		for r := range info.orientations {
			o := &info.orientations[r]
			if !o.Unique() {
				continue
			}
			o.points = make([]int, len(o.Contacts))
			for i, contact := range o.Contacts {
				o.points[i] = idx.addPoint(o, contact)
			}
		}
	}

	if len(idx.points) > PPSetBits {
		panic(fmt.Sprintf("pieces: %d placement points exceed PPSet capacity %d", len(idx.points), PPSetBits))
	}

	idx.buildTables()
	return idx
}

func (idx *Index) addPoint(o *Orientation, contact Offset) int {
	pp := PlacementPoint{
		ID:       len(idx.points),
		Piece:    o.Piece,
		Rotation: o.Rotation,
		Contact:  contact.Tile(),
	}

	isTile := make(map[Offset]bool, len(o.Tiles))
	for _, t := range o.Tiles {
		rel := Offset{DCol: t.DCol - contact.DCol, DRow: t.DRow - contact.DRow}
		pp.Tiles = append(pp.Tiles, rel)
		isTile[rel] = true
	}

	isAdj := make(map[Offset]bool)
	for _, t := range pp.Tiles {
		for _, d := range [4]Offset{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			n := Offset{DCol: t.DCol + d.DCol, DRow: t.DRow + d.DRow}
			if !isTile[n] && !isAdj[n] {
				isAdj[n] = true
				pp.Adjacent = append(pp.Adjacent, n)
			}
		}
	}

	isCorner := make(map[Offset]bool)
	for _, t := range pp.Tiles {
		for _, d := range [4]Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
			n := Offset{DCol: t.DCol + d.DCol, DRow: t.DRow + d.DRow}
			if !isTile[n] && !isAdj[n] && !isCorner[n] {
				isCorner[n] = true
				pp.Corners = append(pp.Corners, n)
			}
		}
	}

	slices.SortFunc(pp.Adjacent, compareOffsets)
	slices.SortFunc(pp.Corners, compareOffsets)

	idx.points = append(idx.points, pp)
	return pp.ID
}

func compareOffsets(a, b Offset) int {
	switch {
	case a.less(b):
		return -1
	case b.less(a):
		return 1
	default:
		return 0
	}
}

func (idx *Index) buildTables() {
	used := make(map[Offset]bool)

	mark := func(table *[offsetSpan * offsetSpan]PPSet, id int, o Offset) {
		slot := offsetSlot(o.DCol, o.DRow)
		if slot < 0 {
			panic(fmt.Sprintf("pieces: offset %+v outside radius %d", o, OffsetRadius))
		}
		table[slot].Add(id)
		used[o] = true
	}

	for i := range idx.points {
		pp := &idx.points[i]
		for _, t := range pp.Tiles {
			mark(&idx.withTile, pp.ID, t)
		}
		for _, a := range pp.Adjacent {
			mark(&idx.withAdj, pp.ID, a)
		}
		for _, c := range pp.Corners {
			if offsetSlot(c.DCol, c.DRow) < 0 {
				panic(fmt.Sprintf("pieces: corner %+v outside radius %d", c, OffsetRadius))
			}
		}
		idx.byPiece[pp.Piece].Add(pp.ID)
		idx.all.Add(pp.ID)
	}

	for o := range used {
		idx.relOffsets = append(idx.relOffsets, RelOffset{Offset: o, Slot: offsetSlot(o.DCol, o.DRow)})
	}
	slices.SortFunc(idx.relOffsets, func(a, b RelOffset) int {
		return compareOffsets(a.Offset, b.Offset)
	})
}

// NumPoints returns the size of the placement point universe
func (idx *Index) NumPoints() int {
	return len(idx.points)
}

// Point returns the placement point with the given ordinal
func (idx *Index) Point(id int) *PlacementPoint {
	return &idx.points[id]
}

// All returns the set of every placement point
func (idx *Index) All() PPSet {
	return idx.all
}

// ForPiece returns every placement point of a piece
func (idx *Index) ForPiece(p model.Piece) PPSet {
	return idx.byPiece[p]
}

// WithTile returns the points that cover the given offset from their contact
func (idx *Index) WithTile(dCol, dRow int) PPSet {
	slot := offsetSlot(dCol, dRow)
	if slot < 0 {
		return PPSet{}
	}
	return idx.withTile[slot]
}

// WithAdjacent returns the points that have the given offset in their
// adjacency zone
func (idx *Index) WithAdjacent(dCol, dRow int) PPSet {
	slot := offsetSlot(dCol, dRow)
	if slot < 0 {
		return PPSet{}
	}
	return idx.withAdj[slot]
}

// WithTileSlot is WithTile for a slot taken from RelOffsets
func (idx *Index) WithTileSlot(slot int) PPSet {
	return idx.withTile[slot]
}

// WithAdjacentSlot is WithAdjacent for a slot taken from RelOffsets
func (idx *Index) WithAdjacentSlot(slot int) PPSet {
	return idx.withAdj[slot]
}

// RelOffsets returns every offset that any point uses as a tile or adjacency
func (idx *Index) RelOffsets() []RelOffset {
	return idx.relOffsets
}

// Lookup resolves a (piece, rotation, contact) triple to a placement point.
// Duplicate rotations resolve through their canonical orientation. It never
// panics on out-of-range input.
func (idx *Index) Lookup(p model.Piece, r model.Rotation, contact model.Tile) (*PlacementPoint, bool) {
	if !p.Valid() || !r.Valid() || !contact.Valid() {
		return nil, false
	}
	o := idx.Canonical(p, r)
	want := offsetOf(contact)
	for i, c := range o.Contacts {
		if c == want {
			return &idx.points[o.points[i]], true
		}
	}
	return nil, false
}

// Resolve is Lookup for a move
func (idx *Index) Resolve(m model.Move) (*PlacementPoint, bool) {
	return idx.Lookup(m.Piece, m.Rotation, m.Contact)
}

// NumCorners returns the number of corner candidates a piece opens, taken
// from its first placement point
func (idx *Index) NumCorners(p model.Piece) int {
	o := idx.Orientation(p, model.North)
	return len(idx.points[o.points[0]].Corners)
}

// Footprint returns the board tiles a move would cover, or false when the
// move does not resolve or would leave the board
func (idx *Index) Footprint(m model.Move) ([]model.Tile, bool) {
	pp, ok := idx.Resolve(m)
	if !ok || !m.To.Valid() {
		return nil, false
	}
	toCol, toRow := m.To.Coords()
	out := make([]model.Tile, 0, len(pp.Tiles))
	for _, o := range pp.Tiles {
		col, row := toCol+o.DCol, toRow+o.DRow
		if !model.InBounds(col, row) {
			return nil, false
		}
		out = append(out, model.TileAt(col, row))
	}
	return out, true
}
