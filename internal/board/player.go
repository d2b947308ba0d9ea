package board

import (
	"slices"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/pieces"
)

// grid records the owner of every cell
type grid [model.NumTiles]model.Color

func newGrid() grid {
	var g grid
	for i := range g {
		g[i] = model.NoColor
	}
	return g
}

// anchor is an open corner tile and the placement points still legal there
type anchor struct {
	tile model.Tile
	pps  pieces.PPSet
}

// playerState is everything about a seat that a placement can change
type playerState struct {
	// possible holds every point whose piece is still in hand
	possible pieces.PPSet
	// anchors keeps insertion order so move generation is deterministic
	anchors   []anchor
	hasPlayed bool
	score     int
}

func (s playerState) clone() playerState {
	s.anchors = slices.Clone(s.anchors)
	return s
}

type player struct {
	color model.Color
	playerState
	saved []playerState
}

func newPlayer(idx *pieces.Index, g *grid, color model.Color) *player {
	p := &player{color: color}
	p.possible = idx.All()
	for _, t := range model.BootstrapCorners {
		col, row := t.Coords()
		p.addCorner(idx, g, col, row)
	}
	return p
}

func (p *player) canPlay() bool {
	return len(p.anchors) > 0
}

func (p *player) anchorAt(t model.Tile) (pieces.PPSet, bool) {
	for _, a := range p.anchors {
		if a.tile == t {
			return a.pps, true
		}
	}
	return pieces.PPSet{}, false
}

func (p *player) pushState() {
	p.saved = append(p.saved, p.playerState.clone())
}

func (p *player) popState() {
	n := len(p.saved)
	if n == 0 {
		panic("board: player state pop without push")
	}
	p.playerState = p.saved[n-1]
	p.saved = p.saved[:n-1]
}

// removePiece drops every point of a piece that has now been placed
func (p *player) removePiece(idx *pieces.Index, piece model.Piece) {
	used := idx.ForPiece(piece)
	p.possible = p.possible.AndNot(used)
	for i := range p.anchors {
		p.anchors[i].pps = p.anchors[i].pps.AndNot(used)
	}
	p.anchors = slices.DeleteFunc(p.anchors, func(a anchor) bool {
		return a.pps.Empty()
	})
}

// onTilesFilled removes anchors sitting on the given tiles and clears every
// point at the remaining anchors that would cover one of them
func (p *player) onTilesFilled(idx *pieces.Index, tiles []model.Tile) {
	for i := range p.anchors {
		a := &p.anchors[i]
		if slices.Contains(tiles, a.tile) {
			a.pps = pieces.PPSet{}
			continue
		}
		aCol, aRow := a.tile.Coords()
		for _, t := range tiles {
			col, row := t.Coords()
			a.pps = a.pps.AndNot(idx.WithTile(col-aCol, row-aRow))
		}
	}
	p.anchors = slices.DeleteFunc(p.anchors, func(a anchor) bool {
		return a.pps.Empty()
	})
}

// addCorner opens a new anchor at (col, row) if any point still fits there
func (p *player) addCorner(idx *pieces.Index, g *grid, col, row int) {
	if !model.InBounds(col, row) {
		return
	}
	tile := model.TileAt(col, row)
	if _, ok := p.anchorAt(tile); ok {
		return
	}

	var blocked pieces.PPSet
	for _, rel := range idx.RelOffsets() {
		c, r := col+rel.DCol, row+rel.DRow
		if !model.InBounds(c, r) {
			blocked = blocked.Or(idx.WithTileSlot(rel.Slot))
			continue
		}
		owner := g[model.TileAt(c, r)]
		if owner == model.NoColor {
			continue
		}
		blocked = blocked.Or(idx.WithTileSlot(rel.Slot))
		if owner == p.color {
			blocked = blocked.Or(idx.WithAdjacentSlot(rel.Slot))
		}
	}

	if pps := p.possible.AndNot(blocked); !pps.Empty() {
		p.anchors = append(p.anchors, anchor{tile: tile, pps: pps})
	}
}

// dropBootstrapCorners removes the board corners once a first piece is down
func (p *player) dropBootstrapCorners() {
	p.anchors = slices.DeleteFunc(p.anchors, func(a anchor) bool {
		return slices.Contains(model.BootstrapCorners[:], a.tile)
	})
}
