// Package elo holds the rating arithmetic used to rank strategies.
package elo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Scale is the usual rating relativity constant
const Scale = 400

var (
	ErrInvalidConfidence = errors.New("confidence must be strictly between 0 and 1")
	ErrInvalidScale      = errors.New("scale must be at least 1")
)

// WinProbability is the expected score of a player rated e1 against one
// rated e2
func WinProbability(e1, e2, c float64) float64 {
	p := 1 / (1 + math.Pow(10, -(e1-e2)/c))
	return min(max(p, 0), 1)
}

// Adjust2 returns the rating change of the first player after a game with
// the given outcome: 1 win, 0.5 draw, 0 loss
func Adjust2(e1, e2, outcome, k float64) float64 {
	return k * (outcome - WinProbability(e1, e2, Scale))
}

// AdjustN returns every player's rating change after a game between n
// players. The game is scored as pairwise results: players on the top score
// beat everyone else and draw with each other, and the rest draw among
// themselves. k is split over the n-1 pairings.
func AdjustN(elos []float64, scores []int, k float64) []float64 {
	n := len(elos)
	deltas := make([]float64, n)
	if n < 2 {
		return deltas
	}

	top := scores[0]
	for _, s := range scores[1:] {
		top = max(top, s)
	}
	pairK := k / float64(n-1)

	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			iTop, jTop := scores[i] == top, scores[j] == top
			outcome := 0.5
			switch {
			case iTop && !jTop:
				outcome = 1
			case jTop && !iTop:
				outcome = 0
			}
			deltas[i] += Adjust2(elos[i], elos[j], outcome, pairK)
		}
	}
	return deltas
}

// ErrorMargin estimates half the width of the rating confidence interval
// implied by a win/draw/loss record. It is +Inf when the record cannot
// bound the rating, e.g. no games or no losses.
func ErrorMargin(wins, draws, losses int, confidence, c float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, ErrInvalidConfidence
	}
	if c < 1 {
		return 0, ErrInvalidScale
	}

	total := float64(wins + draws + losses)
	if total == 0 {
		return math.Inf(1), nil
	}

	winRate := float64(wins) / total
	drawRate := float64(draws) / total
	lossRate := float64(losses) / total
	mean := winRate + drawRate/2

	variance := winRate*math.Pow(1-mean, 2) +
		drawRate*math.Pow(0.5-mean, 2) +
		lossRate*math.Pow(0-mean, 2)
	dev := math.Sqrt(variance) / math.Sqrt(total)

	lo := mean + distuv.UnitNormal.Quantile(1-confidence)*dev
	hi := mean + distuv.UnitNormal.Quantile(confidence)*dev
	if lo == 0 || hi == 0 {
		return math.Inf(1), nil
	}
	loRecip, hiRecip := 1/lo, 1/hi
	if loRecip <= 1 || hiRecip <= 1 {
		return math.Inf(1), nil
	}

	loElo := -c * math.Log10(loRecip-1)
	hiElo := -c * math.Log10(hiRecip-1)
	return math.Abs((hiElo - loElo) / 2), nil
}

// Margin95 is ErrorMargin at 95% confidence on the usual scale
func Margin95(wins, draws, losses int) float64 {
	m, _ := ErrorMargin(wins, draws, losses, 0.95, Scale)
	return m
}

// Estimate derives ratings for n players directly from their results
// instead of replaying updates in order. players[g] lists who took part in
// game g and results[g] their results (1 win, 0.5 draw, 0 loss) in the same
// order. A player with no games gets NaN and one who won or lost every game
// gets ±Inf. Finite ratings are shifted to average mean.
func Estimate(n int, players [][]int, results [][]float64, mean float64) []float64 {
	sums := make([]float64, n)
	counts := make([]int, n)
	for g, ps := range players {
		for i, p := range ps {
			sums[p] += results[g][i]
			counts[p]++
		}
	}

	elos := make([]float64, n)
	for p := range n {
		switch rate := sums[p] / float64(counts[p]); {
		case counts[p] == 0:
			elos[p] = math.NaN()
		case rate >= 1:
			elos[p] = math.Inf(1)
		case rate <= 0:
			elos[p] = math.Inf(-1)
		default:
			// only half: the virtual opponent moves by the other half
			elos[p] = -Scale * math.Log10(1/rate-1) / 2
		}
	}

	total, finite := 0.0, 0
	for _, e := range elos {
		if !math.IsNaN(e) && !math.IsInf(e, 0) {
			total += e
			finite++
		}
	}
	if finite > 0 {
		shift := mean - total/float64(finite)
		for p := range elos {
			elos[p] += shift
		}
	}
	return elos
}
