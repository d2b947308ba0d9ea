package tournament

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/tournament/elo"
)

// MatchData is one finished game and the rating change it caused. Engines
// maps seat to engine index. The Elo slices are per seat and empty for
// single seat games.
type MatchData struct {
	Record   *model.MatchRecord
	Engines  []int
	EloStart []float64
	EloDelta []float64
	EloEnd   []float64
}

// Results aggregates a tournament per engine, indexed like Config.Engines
type Results struct {
	Names   []string
	Matches []MatchData

	Games       []int
	Wins        []int
	Draws       []int
	TotalScores []int
	EloStart    []float64
	EloEnd      []float64

	// RealTime is wall time for the whole tournament, TotalTime the sum of
	// game durations
	RealTime  time.Duration
	TotalTime time.Duration
}

func newResults(names []string) *Results {
	n := len(names)
	return &Results{
		Names:       slices.Clone(names),
		Games:       make([]int, n),
		Wins:        make([]int, n),
		Draws:       make([]int, n),
		TotalScores: make([]int, n),
		EloStart:    make([]float64, n),
		EloEnd:      make([]float64, n),
	}
}

func perGame[T int | float64](r *Results, values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v) / float64(max(1, r.Games[i]))
	}
	return out
}

// WinRates returns outright wins per game played
func (r *Results) WinRates() []float64 { return perGame(r, r.Wins) }

// DrawRates returns shared wins per game played
func (r *Results) DrawRates() []float64 { return perGame(r, r.Draws) }

// LossCounts returns games neither won nor drawn
func (r *Results) LossCounts() []int {
	out := make([]int, len(r.Names))
	for i := range out {
		out[i] = r.Games[i] - r.Wins[i] - r.Draws[i]
	}
	return out
}

// LossRates returns losses per game played
func (r *Results) LossRates() []float64 { return perGame(r, r.LossCounts()) }

// AvgScores returns tiles placed per game played
func (r *Results) AvgScores() []float64 { return perGame(r, r.TotalScores) }

// EloDelta returns each engine's rating change over the tournament
func (r *Results) EloDelta() []float64 {
	out := make([]float64, len(r.Names))
	for i := range out {
		out[i] = r.EloEnd[i] - r.EloStart[i]
	}
	return out
}

// EloErrorMargins returns each engine's 95% rating margin
func (r *Results) EloErrorMargins() []float64 {
	losses := r.LossCounts()
	out := make([]float64, len(r.Names))
	for i := range out {
		out[i] = elo.Margin95(r.Wins[i], r.Draws[i], losses[i])
	}
	return out
}

// PerformanceElos rates each engine from its overall results alone, centred
// on mean. Games with a single seat are ignored.
func (r *Results) PerformanceElos(mean float64) []float64 {
	var players [][]int
	var results [][]float64
	for _, md := range r.Matches {
		if len(md.Engines) < 2 {
			continue
		}
		res := make([]float64, len(md.Engines))
		for _, w := range md.Record.Winners {
			res[w] = 1
			if len(md.Record.Winners) > 1 {
				res[w] = 0.5
			}
		}
		players = append(players, md.Engines)
		results = append(results, res)
	}
	return elo.Estimate(len(r.Names), players, results, mean)
}

// AverageMatchDuration returns TotalTime per game
func (r *Results) AverageMatchDuration() time.Duration {
	return r.TotalTime / time.Duration(max(1, len(r.Matches)))
}

// MatchesByEngine returns the games an engine took part in
func (r *Results) MatchesByEngine(engine int) []MatchData {
	var out []MatchData
	for _, md := range r.Matches {
		if slices.Contains(md.Engines, engine) {
			out = append(out, md)
		}
	}
	return out
}

// Records returns the match records in completion order
func (r *Results) Records() []*model.MatchRecord {
	out := make([]*model.MatchRecord, len(r.Matches))
	for i, md := range r.Matches {
		out[i] = md.Record
	}
	return out
}

// Ranking is one row of the rankings table
type Ranking struct {
	Rank     int
	Engine   int
	Name     string
	Elo      float64
	Margin   float64
	Score    int
	AvgScore float64
	Games    int
	Wins     int
	Draws    int
	Losses   int
	WinRate  float64
}

// Rankings orders the engines by final rating, best first. Rank starts at 1.
func (r *Results) Rankings() []Ranking {
	losses := r.LossCounts()
	margins := r.EloErrorMargins()
	avg := r.AvgScores()
	rates := r.WinRates()

	out := make([]Ranking, len(r.Names))
	for i, name := range r.Names {
		out[i] = Ranking{
			Engine:   i,
			Name:     name,
			Elo:      r.EloEnd[i],
			Margin:   margins[i],
			Score:    r.TotalScores[i],
			AvgScore: avg[i],
			Games:    r.Games[i],
			Wins:     r.Wins[i],
			Draws:    r.Draws[i],
			Losses:   losses[i],
			WinRate:  rates[i],
		}
	}
	slices.SortStableFunc(out, func(a, b Ranking) int {
		return cmp.Compare(b.Elo, a.Elo)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func digits(n int) int {
	return int(math.Floor(math.Log10(float64(max(1, n))))) + 1
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

func formatMargin(m float64) string {
	if math.IsInf(m, 1) {
		return "inf "
	}
	return fmt.Sprintf("%-4.0f", m)
}

// RankingsTable renders Rankings as fixed-width text
func (r *Results) RankingsTable() string {
	rows := r.Rankings()

	nameW, scoreW, gamesW, eloW := 5, 6, 7, 4
	longest := 0
	for _, row := range rows {
		longest = max(longest, len(row.Name))
		scoreW = max(scoreW, digits(row.Score)+1)
		gamesW = max(gamesW, digits(row.Games)+1)
		eloW = max(eloW, digits(int(math.Abs(row.Elo)))+1)
	}
	nameW = max(nameW, min(24, longest+1))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s %-*s %s %*s %10s %*s %*s %*s %*s %9s\n",
		"Rank", nameW, "Name", center("Elo", eloW+9), scoreW, "Score", "Avg Score",
		gamesW, "Games", gamesW, "Wins", gamesW, "Draws", gamesW, "Losses", "Win Rate")

	for _, row := range rows {
		name := row.Name
		if len(name) > nameW {
			name = name[:nameW]
		}
		avg, rate := fmt.Sprintf("%10s", "-"), fmt.Sprintf("%9s", "-")
		if row.Games > 0 {
			avg = fmt.Sprintf("%10.2f", row.AvgScore)
			rate = fmt.Sprintf("%8.2f%%", row.WinRate*100)
		}
		fmt.Fprintf(&sb, "%4d %-*s %*.0f +/- %s %*d %s %*d %*d %*d %*d %s\n",
			row.Rank, nameW, name, eloW, row.Elo, formatMargin(row.Margin),
			scoreW, row.Score, avg,
			gamesW, row.Games, gamesW, row.Wins, gamesW, row.Draws, gamesW, row.Losses, rate)
	}
	return sb.String()
}
