package bot

import (
	"context"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/pieces"
)

// Scorer rates a candidate move on the board it would be played on
type Scorer func(b *board.Board, m model.Move) float64

// GreedyStrategy plays the candidate with the best score. Candidates are
// shuffled first so ties go to a random one of the tied moves.
type GreedyStrategy struct {
	name     string
	random   random.Random
	score    Scorer
	minimise bool
	// prune optionally narrows the shuffled candidate list
	prune func(b *board.Board, moves []model.Move) []model.Move
}

// NewGreedyStrategy creates a strategy that maximises score, or minimises
// it when minimise is set
func NewGreedyStrategy(name string, rnd random.Random, score Scorer, minimise bool) *GreedyStrategy {
	return &GreedyStrategy{name: name, random: rnd, score: score, minimise: minimise}
}

// Name returns the registry name
func (s *GreedyStrategy) Name() string { return s.name }

// Choose scores every candidate and returns the best one
func (s *GreedyStrategy) Choose(ctx context.Context, b *board.Board) (model.Move, error) {
	moves, err := candidates(ctx, b)
	if err != nil {
		return model.Move{}, err
	}
	s.random.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	if s.prune != nil {
		if pruned := s.prune(b, moves); len(pruned) > 0 {
			moves = pruned
		}
	}

	best, bestScore := moves[0], s.score(b, moves[0])
	for i, m := range moves[1:] {
		if (i+2)%checkEvery == 0 && ctx.Err() != nil {
			break
		}
		score := s.score(b, m)
		if s.minimise && score < bestScore || !s.minimise && score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, nil
}

// CornersAfter scores a move by the mover's open corners once it is played
func CornersAfter(b *board.Board, m model.Move) float64 {
	mover := b.CurrentPlayer()
	b.Push(m)
	defer b.Pop()
	return float64(b.NPlayerCorners(mover))
}

// PieceSize scores a move by its piece alone: tiles first, then the corners
// it opens, then its contact count
func PieceSize(_ *board.Board, m model.Move) float64 {
	idx := pieces.Default()
	return float64(idx.NumTiles(m.Piece)*100 + idx.NumCorners(m.Piece)*10 + idx.NumContacts(m.Piece))
}

// MoveDifference scores a move by the mover's legal move count minus every
// opponent's once it is played
func MoveDifference(b *board.Board, m model.Move) float64 {
	mover := b.CurrentPlayer()
	b.Push(m)
	defer b.Pop()

	total := 0
	for c := model.Color(0); int(c) < b.NPlayers(); c++ {
		n := b.NLegalMovesFor(c, true)
		if c == mover {
			total += n
		} else {
			total -= n
		}
	}
	return float64(total)
}

// TileWeights returns a Scorer summing a weight map over the tiles a move
// covers
func TileWeights(weights *[model.NumTiles]float64) Scorer {
	return func(_ *board.Board, m model.Move) float64 {
		tiles, ok := pieces.Default().Footprint(m)
		if !ok {
			return 0
		}
		total := 0.0
		for _, t := range tiles {
			total += weights[t]
		}
		return total
	}
}

// firstCornerOnOpening keeps only the moves on the mover's first open
// corner while seats are still placing their first piece
func firstCornerOnOpening(b *board.Board, moves []model.Move) []model.Move {
	if b.Ply() >= b.NPlayers() {
		return moves
	}
	corners := b.PlayerCorners(b.CurrentPlayer())
	if len(corners) == 0 {
		return moves
	}
	var out []model.Move
	for _, m := range moves {
		if m.To == corners[0] {
			out = append(out, m)
		}
	}
	return out
}

// NewMostCornersStrategy maximises the mover's open corners
func NewMostCornersStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategyMostCorners, rnd, CornersAfter, false)
}

// NewLeastCornersStrategy minimises the mover's open corners
func NewLeastCornersStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategyLeastCorners, rnd, CornersAfter, true)
}

// NewLargestPieceStrategy plays the biggest piece available
func NewLargestPieceStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategyLargestPiece, rnd, PieceSize, false)
}

// NewSmallestPieceStrategy plays the smallest piece available
func NewSmallestPieceStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategySmallestPiece, rnd, PieceSize, true)
}

// NewMaxMoveDiffStrategy maximises the mover's move count lead
func NewMaxMoveDiffStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategyMaxMoveDiff, rnd, MoveDifference, false)
}

// NewMinMoveDiffStrategy minimises the mover's move count lead
func NewMinMoveDiffStrategy(rnd random.Random) *GreedyStrategy {
	return NewGreedyStrategy(model.BotStrategyMinMoveDiff, rnd, MoveDifference, true)
}

// NewWallCrawlStrategy favours tiles along the edges of the board
func NewWallCrawlStrategy(rnd random.Random) *GreedyStrategy {
	s := NewGreedyStrategy(model.BotStrategyWallCrawl, rnd, TileWeights(&wallCrawlWeights), false)
	s.prune = firstCornerOnOpening
	return s
}

// NewTurtleStrategy favours tiles near the board corners
func NewTurtleStrategy(rnd random.Random) *GreedyStrategy {
	s := NewGreedyStrategy(model.BotStrategyTurtle, rnd, TileWeights(&turtleWeights), false)
	s.prune = firstCornerOnOpening
	return s
}
