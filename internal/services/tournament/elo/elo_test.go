package elo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EloSuite struct {
	suite.Suite
}

func TestEloSuite(t *testing.T) {
	suite.Run(t, new(EloSuite))
}

func (s *EloSuite) TestWinProbability() {
	s.InDelta(0.5, WinProbability(1500, 1500, Scale), 1e-12)
	s.InDelta(0.6401, WinProbability(1500, 1400, Scale), 1e-4)
	s.InDelta(1, WinProbability(1400, 1500, Scale)+WinProbability(1500, 1400, Scale), 1e-12)

	s.InDelta(1, WinProbability(1e6, 0, Scale), 1e-12)
	s.InDelta(0, WinProbability(0, 1e6, Scale), 1e-12)
}

func (s *EloSuite) TestAdjust2() {
	s.InDelta(-11.5179, Adjust2(1500, 1600, 0, 32), 1e-4)
	s.InDelta(4.4821, Adjust2(1500, 1600, 0.5, 32), 1e-4)
	s.InDelta(20.4821, Adjust2(1500, 1600, 1, 32), 1e-4)
	s.InDelta(0, Adjust2(1500, 1500, 0.5, 32), 1e-12)
}

func (s *EloSuite) TestAdjustN() {
	third := 8.0 / 3
	got := AdjustN([]float64{0, 0, 0, 0}, []int{10, 20, 20, 5}, 8)
	s.InDeltaSlice([]float64{-third, third, third, -third}, got, 1e-12)

	got = AdjustN([]float64{1500, 1600, 1400}, []int{30, 30, 10}, 8)
	s.InDeltaSlice([]float64{2.0, 0.4007522941967636, -2.4007522941967636}, got, 1e-9)

	// zero sum
	sum := 0.0
	for _, d := range got {
		sum += d
	}
	s.InDelta(0, sum, 1e-9)
}

func (s *EloSuite) TestAdjustNTooFewPlayers() {
	s.Equal([]float64{0}, AdjustN([]float64{1200}, []int{50}, 8))
	s.Empty(AdjustN(nil, nil, 8))
}

func (s *EloSuite) TestAdjustNAllTied() {
	got := AdjustN([]float64{0, 0, 0}, []int{7, 7, 7}, 8)
	s.InDeltaSlice([]float64{0, 0, 0}, got, 1e-12)
}

func (s *EloSuite) TestErrorMargin() {
	cases := []struct {
		wins, draws, losses int
		want                float64
	}{
		{60, 10, 30, 57.16912409474426},
		{5, 0, 5, 200.31161002227503},
		{3, 1, 2, 258.1597608801482},
		{50, 50, 0, 38.370233788018865},
	}
	for _, tc := range cases {
		got, err := ErrorMargin(tc.wins, tc.draws, tc.losses, 0.95, Scale)
		s.Require().NoError(err)
		s.InDelta(tc.want, got, 1e-6, "%d/%d/%d", tc.wins, tc.draws, tc.losses)
	}
}

func (s *EloSuite) TestErrorMarginUnbounded() {
	for _, rec := range [][3]int{{0, 0, 0}, {10, 0, 0}, {0, 0, 10}, {1, 0, 0}} {
		got, err := ErrorMargin(rec[0], rec[1], rec[2], 0.95, Scale)
		s.Require().NoError(err)
		s.True(math.IsInf(got, 1), "%v", rec)
	}
	s.True(math.IsInf(Margin95(0, 0, 0), 1))
}

func (s *EloSuite) TestErrorMarginInvalidArgs() {
	_, err := ErrorMargin(1, 1, 1, 0, Scale)
	s.ErrorIs(err, ErrInvalidConfidence)
	_, err = ErrorMargin(1, 1, 1, 1, Scale)
	s.ErrorIs(err, ErrInvalidConfidence)
	_, err = ErrorMargin(1, 1, 1, 0.95, 0.5)
	s.ErrorIs(err, ErrInvalidScale)
}

func (s *EloSuite) TestMargin95() {
	s.InDelta(57.16912409474426, Margin95(60, 10, 30), 1e-6)
}

func (s *EloSuite) TestEstimate() {
	players := [][]int{{0, 1}, {0, 1}, {1, 2}}
	results := [][]float64{{1, 0}, {1, 0}, {0.5, 0.5}}

	got := Estimate(4, players, results, 0)
	s.True(math.IsInf(got[0], 1))
	s.InDelta(-69.89700043360188, got[1], 1e-9)
	s.InDelta(69.89700043360188, got[2], 1e-9)
	s.True(math.IsNaN(got[3]))

	shifted := Estimate(4, players, results, 1000)
	s.InDelta(1000-69.89700043360188, shifted[1], 1e-9)
}
