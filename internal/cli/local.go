package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
)

// newRandom returns a seeded source when --seed was given, otherwise a
// crypto source
func newRandom(cmd *cobra.Command, seed uint64) random.Random {
	if cmd.Flags().Changed("seed") {
		return random.NewSeeded(seed)
	}
	return random.New()
}

// splitMoves splits a comma or space separated move list, dropping empties
func splitMoves(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}

func colorNameList(colors []model.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.String()
	}
	return out
}

func matchResult(rec *model.MatchRecord, withMoves bool) MatchResult {
	m := MatchResult{
		ID:         string(rec.ID),
		Seats:      rec.Seats,
		Scores:     rec.Scores,
		Winners:    colorNameList(rec.Winners),
		Plies:      rec.Plies,
		DurationMS: rec.Duration().Milliseconds(),
	}
	if withMoves {
		m.Moves = rec.Moves
	}
	return m
}

// boardResult summarises a rebuilt position
func boardResult(id string, seats []string, b *board.Board) MatchResult {
	return MatchResult{
		ID:      id,
		Seats:   seats,
		Scores:  b.Scores(),
		Winners: colorNameList(b.Winners()),
		Plies:   b.Ply(),
	}
}
