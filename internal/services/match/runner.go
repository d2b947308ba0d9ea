// Package match plays bot-versus-bot games and replays recorded ones.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/bot"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Runner plays matches between strategies
type Runner struct {
	clock       clock.Clock
	random      random.Random
	moveTimeout time.Duration
	logger      *slog.Logger
}

// NewRunner creates a Runner. A zero moveTimeout gives strategies as long
// as the caller's context allows.
func NewRunner(clock clock.Clock, random random.Random, moveTimeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		clock:       clock,
		random:      random,
		moveTimeout: moveTimeout,
		logger:      logger,
	}
}

// Move asks a strategy for the side to move's next move and checks it is
// legal. The board is not modified.
func (r *Runner) Move(ctx context.Context, s bot.Strategy, b *board.Board) (model.Move, error) {
	moveCtx := ctx
	if r.moveTimeout > 0 {
		var cancel context.CancelFunc
		moveCtx, cancel = context.WithTimeout(ctx, r.moveTimeout)
		defer cancel()
	}

	m, err := s.Choose(moveCtx, b.Clone())
	if err != nil {
		return model.Move{}, fmt.Errorf("%s as %s: %w", s.Name(), b.CurrentPlayer(), err)
	}
	if !b.IsLegal(m) {
		return model.Move{}, fmt.Errorf("%w: %s as %s chose %s", model.ErrIllegalMove, s.Name(), b.CurrentPlayer(), m)
	}
	return m, nil
}

// Play runs one game with seats[i] playing color i until no seat can move
func (r *Runner) Play(ctx context.Context, seats []bot.Strategy) (*model.MatchRecord, error) {
	b, err := board.New(len(seats))
	if err != nil {
		return nil, err
	}

	rec := &model.MatchRecord{
		ID:        model.MatchID(r.random.String(12, idAlphabet)),
		Seats:     make([]string, len(seats)),
		StartedAt: r.clock.Now(),
	}
	for i, s := range seats {
		rec.Seats[i] = s.Name()
	}

	for !b.Finished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := r.Move(ctx, seats[b.CurrentPlayer()], b)
		if err != nil {
			r.logger.Warn("match aborted",
				slog.String("match_id", string(rec.ID)),
				slog.Int("ply", b.Ply()),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		b.Push(m)
	}

	rec.FinishedAt = r.clock.Now()
	rec.Moves = model.MoveStrings(b.Moves())
	rec.Scores = b.Scores()
	rec.Winners = b.Winners()
	rec.Plies = b.Ply()

	r.logger.Debug("match finished",
		slog.String("match_id", string(rec.ID)),
		slog.Any("seats", rec.Seats),
		slog.Any("scores", rec.Scores),
		slog.Int("plies", rec.Plies),
		slog.Duration("duration", rec.Duration()),
	)
	return rec, nil
}

// Rebuild replays a move list on a fresh board, rejecting any move that was
// not legal when it was played
func Rebuild(nPlayers int, notations []string) (*board.Board, error) {
	b, err := board.New(nPlayers)
	if err != nil {
		return nil, err
	}
	for i, n := range notations {
		m, err := model.ParseMove(n)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if !b.IsLegal(m) {
			return nil, fmt.Errorf("%w: move %d %s", model.ErrIllegalMove, i+1, n)
		}
		b.Push(m)
	}
	return b, nil
}

// Replay rebuilds the final position of a recorded match
func Replay(rec *model.MatchRecord) (*board.Board, error) {
	return Rebuild(len(rec.Seats), rec.Moves)
}
