package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

func (s *ModelSuite) TestTileCoordsRoundTrip() {
	for t := Tile(0); t < NumTiles; t++ {
		col, row := t.Coords()
		s.True(InBounds(col, row))
		s.Equal(t, TileAt(col, row))
	}
}

func (s *ModelSuite) TestTileNames() {
	s.Equal("a1", A1.String())
	s.Equal("t1", T1.String())
	s.Equal("a20", A20.String())
	s.Equal("t20", T20.String())
	s.Equal("c2", TileAt(2, 1).String())
	s.Equal("-", NoTile.String())
}

func (s *ModelSuite) TestParseTileRoundTrip() {
	for t := Tile(0); t < NumTiles; t++ {
		parsed, err := ParseTile(t.String())
		s.Require().NoError(err)
		s.Equal(t, parsed)
	}
}

func (s *ModelSuite) TestParseTileRejectsBadNames() {
	for _, name := range []string{"", "a", "a0", "a21", "u1", "A1", "a01", "a+1", "1a", "abc"} {
		_, err := ParseTile(name)
		s.ErrorIs(err, ErrInvalidTile, name)
	}
}

func (s *ModelSuite) TestTileValid() {
	s.True(A1.Valid())
	s.True(T20.Valid())
	s.False(NoTile.Valid())
	s.False(Tile(NumTiles).Valid())
}

func (s *ModelSuite) TestPieceSizes() {
	s.Equal(1, O1.Size())
	s.Equal(2, I2.Size())
	s.Equal(3, L3.Size())
	s.Equal(4, T4.Size())
	s.Equal(5, Z5.Size())
	s.Equal(0, Piece(NumPieces).Size())

	total := 0
	for _, p := range AllPieces() {
		total += p.Size()
	}
	s.Equal(89, total)
}

func (s *ModelSuite) TestParsePiece() {
	p, err := ParsePiece("W5")
	s.Require().NoError(err)
	s.Equal(W5, p)

	_, err = ParsePiece("Q9")
	s.ErrorIs(err, ErrInvalidMove)
}

func (s *ModelSuite) TestRotationNames() {
	s.Equal("n", North.String())
	s.Equal("wf", WestFlipped.String())

	r, ok := ParseRotation("sf")
	s.True(ok)
	s.Equal(SouthFlipped, r)

	_, ok = ParseRotation("x")
	s.False(ok)
}

func (s *ModelSuite) TestColors() {
	s.Equal("blue", Blue.String())
	s.Equal(byte('G'), Green.Code())
	s.Equal(byte('.'), NoColor.Code())
	s.Equal("none", NoColor.String())

	c, ok := ParseColor("red")
	s.True(ok)
	s.Equal(Red, c)
}

func (s *ModelSuite) TestMoveString() {
	m := Move{Piece: Z5, Rotation: EastFlipped, Contact: TileAt(2, 0), To: T1}
	s.Equal("Z5ef-c1t1", m.String())
}

func (s *ModelSuite) TestParseMoveRoundTrip() {
	moves := []Move{
		{Piece: Z5, Rotation: EastFlipped, Contact: TileAt(2, 0), To: T1},
		{Piece: O1, Rotation: North, Contact: A1, To: T20},
		{Piece: T4, Rotation: WestFlipped, Contact: TileAt(1, 2), To: TileAt(9, 14)},
		{Piece: I5, Rotation: East, Contact: TileAt(0, 4), To: A20},
	}
	for _, m := range moves {
		parsed, err := ParseMove(m.String())
		s.Require().NoError(err, m.String())
		s.Equal(m, parsed)
	}
}

func (s *ModelSuite) TestParseMoveRejectsGarbage() {
	for _, n := range []string{"", "Z5", "Z5ef", "Z5ef-", "Z5ef-c1", "Z5xx-c1t1", "Q5n-a1a1", "Z5n-a1z1", "Z5n-a0a1"} {
		_, err := ParseMove(n)
		s.ErrorIs(err, ErrInvalidMove, n)
	}
}

func (s *ModelSuite) TestMoveEquality() {
	a := Move{Piece: L4, Rotation: South, Contact: A1, To: T1}
	b := Move{Piece: L4, Rotation: South, Contact: A1, To: T1}
	c := Move{Piece: L4, Rotation: South, Contact: A1, To: T20}
	s.True(a == b)
	s.False(a == c)

	set := map[Move]bool{a: true}
	s.True(set[b])
}

func (s *ModelSuite) TestGameSeats() {
	g := &Game{Seats: []string{SeatHuman, BotStrategyRandom}}
	s.Equal(2, g.NumPlayers())
	s.False(g.IsBotSeat(Blue))
	s.True(g.IsBotSeat(Yellow))
	s.False(g.IsBotSeat(Red))
	s.True(g.HasHumanSeat())

	bots := &Game{Seats: []string{BotStrategyRandom, BotStrategyTurtle}}
	s.False(bots.HasHumanSeat())
}

func (s *ModelSuite) TestBotStrategyNames() {
	s.True(IsValidBotStrategy(BotStrategyTurtle))
	s.False(IsValidBotStrategy("human"))
	s.Equal("WallCrawler", BotStrategyDisplayName(BotStrategyWallCrawl))
}
