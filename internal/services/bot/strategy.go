package bot

import (
	"context"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/model"
)

// checkEvery is how many candidate moves a strategy evaluates between
// context checks
const checkEvery = 100

// Strategy chooses a move for the side to move.
//
// Choose receives a board the caller does not share, so it may Push and Pop
// on it freely. It returns model.ErrNoLegalMoves when the side to move has
// nothing to play and ctx.Err() when the context is already done. A context
// that ends mid-search stops the search and the best move found so far is
// returned.
type Strategy interface {
	Name() string
	Choose(ctx context.Context, b *board.Board) (model.Move, error)
}

// candidates returns the unique legal moves for the side to move
func candidates(ctx context.Context, b *board.Board) ([]model.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves := b.GenerateLegalMoves(true)
	if len(moves) == 0 {
		return nil, model.ErrNoLegalMoves
	}
	return moves, nil
}
