package bot

import (
	"context"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
)

// RandomStrategy plays a uniformly random legal move
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// Name returns the registry name
func (s *RandomStrategy) Name() string { return model.BotStrategyRandom }

// Choose picks one of the unique legal moves at random
func (s *RandomStrategy) Choose(ctx context.Context, b *board.Board) (model.Move, error) {
	moves, err := candidates(ctx, b)
	if err != nil {
		return model.Move{}, err
	}
	return moves[s.random.Intn(len(moves))], nil
}
