// Package board is the rules engine: a single game position with legality
// checks, move generation and exact undo. A Board is not safe for
// concurrent use; give every goroutine its own Clone.
package board

import (
	"fmt"
	"slices"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/pieces"
)

// undoRecord is what Pop and PopNull need beyond the per-player snapshots
type undoRecord struct {
	null        bool
	turn        model.Color
	wasFinished bool
	placedTiles []model.Tile
}

// Board is a game position for one to four seats
type Board struct {
	idx *pieces.Index

	grid     grid
	players  []*player
	current  model.Color
	ply      int
	finished bool
	moves    []model.Move
	undo     []undoRecord
}

// New creates an empty board for nPlayers seats
func New(nPlayers int) (*Board, error) {
	if nPlayers < 1 || nPlayers > model.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidPlayerCount, nPlayers)
	}

	b := &Board{
		idx:     pieces.Default(),
		grid:    newGrid(),
		current: model.Blue,
	}
	b.players = make([]*player, nPlayers)
	for i := range b.players {
		b.players[i] = newPlayer(b.idx, &b.grid, model.Color(i))
	}
	return b, nil
}

// Clone returns an independent copy of the current position. The copy has
// an empty move list and undo history.
func (b *Board) Clone() *Board {
	out := &Board{
		idx:      b.idx,
		grid:     b.grid,
		current:  b.current,
		ply:      b.ply,
		finished: b.finished,
	}
	out.players = make([]*player, len(b.players))
	for i, p := range b.players {
		out.players[i] = &player{color: p.color, playerState: p.playerState.clone()}
	}
	return out
}

// NPlayers returns the number of seats
func (b *Board) NPlayers() int { return len(b.players) }

// CurrentPlayer returns the seat to move
func (b *Board) CurrentPlayer() model.Color { return b.current }

// Ply returns the number of pieces placed so far
func (b *Board) Ply() int { return b.ply }

// Finished reports whether no seat can place another piece
func (b *Board) Finished() bool { return b.finished }

// Moves returns the placements made on this board, oldest first
func (b *Board) Moves() []model.Move { return slices.Clone(b.moves) }

func (b *Board) seat(c model.Color) (*player, bool) {
	if c < 0 || int(c) >= len(b.players) {
		return nil, false
	}
	return b.players[c], true
}

func (b *Board) mustSeat(c model.Color) *player {
	p, ok := b.seat(c)
	if !ok {
		panic(fmt.Sprintf("board: no seat %d in a %d player game", c, len(b.players)))
	}
	return p
}

// Score returns the number of tiles a seat has placed
func (b *Board) Score(c model.Color) int { return b.mustSeat(c).score }

// Scores returns every seat's score in seat order
func (b *Board) Scores() []int {
	out := make([]int, len(b.players))
	for i, p := range b.players {
		out[i] = p.score
	}
	return out
}

// Winners returns the seats sharing the top score, or nil while the game is
// still running
func (b *Board) Winners() []model.Color {
	if !b.finished {
		return nil
	}
	best := -1
	var out []model.Color
	for i, p := range b.players {
		switch {
		case p.score > best:
			best = p.score
			out = []model.Color{model.Color(i)}
		case p.score == best:
			out = append(out, model.Color(i))
		}
	}
	return out
}

// RemainingPieces lists the pieces a seat still holds, in catalog order
func (b *Board) RemainingPieces(c model.Color) []model.Piece {
	p := b.mustSeat(c)
	var out []model.Piece
	for _, piece := range model.AllPieces() {
		if !p.possible.And(b.idx.ForPiece(piece)).Empty() {
			out = append(out, piece)
		}
	}
	return out
}

// NRemainingPieces returns len(RemainingPieces(c))
func (b *Board) NRemainingPieces(c model.Color) int {
	return len(b.RemainingPieces(c))
}

// PlayerCorners lists a seat's open anchor tiles
func (b *Board) PlayerCorners(c model.Color) []model.Tile {
	p := b.mustSeat(c)
	out := make([]model.Tile, len(p.anchors))
	for i, a := range p.anchors {
		out[i] = a.tile
	}
	return out
}

// NPlayerCorners returns the number of open anchors of a seat
func (b *Board) NPlayerCorners(c model.Color) int {
	return len(b.mustSeat(c).anchors)
}

// CanPlay reports whether a seat has any legal placement
func (b *Board) CanPlay(c model.Color) bool {
	return b.mustSeat(c).canPlay()
}

// ColorAt returns the owner of a tile, or NoColor for empty and off-board tiles
func (b *Board) ColorAt(t model.Tile) model.Color {
	if !t.Valid() {
		return model.NoColor
	}
	return b.grid[t]
}

// IsLegal reports whether the side to move may play m
func (b *Board) IsLegal(m model.Move) bool {
	return b.IsLegalFor(m, b.current)
}

// IsLegalFor reports whether seat c may play m. It accepts any input and
// never panics.
func (b *Board) IsLegalFor(m model.Move, c model.Color) bool {
	p, ok := b.seat(c)
	if !ok || !m.To.Valid() || b.grid[m.To] != model.NoColor {
		return false
	}
	pp, ok := b.idx.Resolve(m)
	if !ok {
		return false
	}
	pps, ok := p.anchorAt(m.To)
	return ok && pps.Has(pp.ID)
}

// GenerateLegalMoves lists the moves of the side to move. With unique set,
// orientations that share a shape appear once under their canonical slot.
func (b *Board) GenerateLegalMoves(unique bool) []model.Move {
	return b.GenerateLegalMovesFor(b.current, unique)
}

// GenerateLegalMovesFor lists the moves of seat c
func (b *Board) GenerateLegalMovesFor(c model.Color, unique bool) []model.Move {
	p := b.mustSeat(c)
	var moves []model.Move
	for _, a := range p.anchors {
		for id := range a.pps.All() {
			pp := b.idx.Point(id)
			m := model.Move{Piece: pp.Piece, Rotation: pp.Rotation, Contact: pp.Contact, To: a.tile}
			if unique {
				moves = append(moves, m)
				continue
			}
			for _, r := range b.idx.Orientation(pp.Piece, pp.Rotation).Equivalent {
				m.Rotation = r
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// NLegalMoves counts the moves GenerateLegalMoves would return
func (b *Board) NLegalMoves(unique bool) int {
	return b.NLegalMovesFor(b.current, unique)
}

// NLegalMovesFor counts the moves GenerateLegalMovesFor would return
func (b *Board) NLegalMovesFor(c model.Color, unique bool) int {
	p := b.mustSeat(c)
	n := 0
	for _, a := range p.anchors {
		if unique {
			n += a.pps.Count()
			continue
		}
		for id := range a.pps.All() {
			pp := b.idx.Point(id)
			n += len(b.idx.Orientation(pp.Piece, pp.Rotation).Equivalent)
		}
	}
	return n
}

// Push plays m for the side to move. The move must be legal; Push only
// panics when m names no placement at all.
func (b *Board) Push(m model.Move) {
	pp, ok := b.idx.Resolve(m)
	if !ok || !m.To.Valid() {
		panic(fmt.Sprintf("board: cannot push unresolvable move %s", m))
	}

	mover := b.players[b.current]
	for _, p := range b.players {
		p.pushState()
	}

	toCol, toRow := m.To.Coords()
	placed := make([]model.Tile, 0, len(pp.Tiles))
	for _, o := range pp.Tiles {
		t := model.TileAt(toCol+o.DCol, toRow+o.DRow)
		b.grid[t] = b.current
		placed = append(placed, t)
	}
	var edges []model.Tile
	for _, o := range pp.Adjacent {
		if model.InBounds(toCol+o.DCol, toRow+o.DRow) {
			edges = append(edges, model.TileAt(toCol+o.DCol, toRow+o.DRow))
		}
	}

	for _, p := range b.players {
		p.onTilesFilled(b.idx, placed)
	}
	mover.onTilesFilled(b.idx, edges)
	for _, o := range pp.Corners {
		mover.addCorner(b.idx, &b.grid, toCol+o.DCol, toRow+o.DRow)
	}
	mover.removePiece(b.idx, pp.Piece)
	if !mover.hasPlayed {
		mover.dropBootstrapCorners()
	}
	mover.hasPlayed = true
	mover.score += len(pp.Tiles)

	rec := undoRecord{turn: b.current, wasFinished: b.finished, placedTiles: placed}
	b.moves = append(b.moves, m)
	b.ply++
	b.advanceTurn()
	b.undo = append(b.undo, rec)
}

// Pop takes back the last Push
func (b *Board) Pop() {
	n := len(b.undo)
	if n == 0 || b.undo[n-1].null {
		panic("board: pop without a matching push")
	}
	rec := b.undo[n-1]
	b.undo = b.undo[:n-1]

	for _, t := range rec.placedTiles {
		b.grid[t] = model.NoColor
	}
	for _, p := range b.players {
		p.popState()
	}
	b.current = rec.turn
	b.finished = false
	b.ply--
	b.moves = b.moves[:len(b.moves)-1]
}

// PushNull passes the turn without placing anything. Ply and the move list
// are unchanged.
func (b *Board) PushNull() {
	rec := undoRecord{null: true, turn: b.current, wasFinished: b.finished}
	b.advanceTurn()
	b.undo = append(b.undo, rec)
}

// PopNull takes back the last PushNull
func (b *Board) PopNull() {
	n := len(b.undo)
	if n == 0 || !b.undo[n-1].null {
		panic("board: null pop without a matching null push")
	}
	rec := b.undo[n-1]
	b.undo = b.undo[:n-1]
	b.current = rec.turn
	b.finished = rec.wasFinished
}

// advanceTurn moves to the next seat that can play. Coming back around to
// the mover without finding one ends the game.
func (b *Board) advanceTurn() {
	start := b.current
	for {
		b.current = (b.current + 1) % model.Color(len(b.players))
		if b.players[b.current].canPlay() {
			return
		}
		if b.current == start {
			b.finished = true
			return
		}
	}
}
