package bot

import (
	"context"
	"math"
	"slices"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
)

// Evaluator rates a position from the point of view of one seat
type Evaluator func(b *board.Board, c model.Color) float64

// DefaultEval rewards the seat's own score and corners, winning and the
// opponents being stuck, and penalises the opponents' score and corners
func DefaultEval(b *board.Board, c model.Color) float64 {
	score := 0.0
	finished := b.Finished()
	winners := b.Winners()

	for other := model.Color(0); int(other) < b.NPlayers(); other++ {
		stuck := !finished && !b.CanPlay(other)
		if other == c {
			score += float64(b.Score(other)) * 0.5
			score += float64(b.NPlayerCorners(other)) * 0.2
			if finished && slices.Contains(winners, other) {
				score += 1000
			}
			if stuck {
				score -= 1000
			}
			continue
		}
		score -= float64(b.Score(other)) * 0.1
		score -= float64(b.NPlayerCorners(other)) * 0.04
		if stuck {
			score += 3
		}
	}
	return score
}

// SearchStrategy looks one ply ahead and plays the move whose resulting
// position evaluates best for the mover
type SearchStrategy struct {
	random random.Random
	eval   Evaluator
}

// NewSearchStrategy creates a SearchStrategy; a nil eval uses DefaultEval
func NewSearchStrategy(rnd random.Random, eval Evaluator) *SearchStrategy {
	if eval == nil {
		eval = DefaultEval
	}
	return &SearchStrategy{random: rnd, eval: eval}
}

// Name returns the registry name
func (s *SearchStrategy) Name() string { return model.BotStrategySimpleSearch }

// Choose evaluates each candidate in generation order until the context
// ends. A random candidate stands in if nothing was evaluated.
func (s *SearchStrategy) Choose(ctx context.Context, b *board.Board) (model.Move, error) {
	moves, err := candidates(ctx, b)
	if err != nil {
		return model.Move{}, err
	}
	mover := b.CurrentPlayer()

	best, bestScore := moves[s.random.Intn(len(moves))], math.Inf(-1)
	for i, m := range moves {
		if (i+1)%checkEvery == 0 && ctx.Err() != nil {
			break
		}
		b.Push(m)
		score := s.eval(b, mover)
		b.Pop()
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, nil
}
