package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/match"
	"github.com/nhamil/tilewe-go/internal/storage"
)

// MaxBotIterations is a safety limit for the ProcessBotTurns loop
const MaxBotIterations = 100

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BotMove is one move played by a bot seat during ProcessBotTurns
type BotMove struct {
	Color    model.Color
	Strategy string
	Move     model.Move
}

// Controller manages live games. Positions are never stored; every
// operation rebuilds the board from the game's move list.
type Controller struct {
	storage  storage.Storage
	registry *bot.Registry
	runner   *match.Runner
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	registry *bot.Registry,
	runner *match.Runner,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		registry: registry,
		runner:   runner,
		clock:    clock,
		random:   random,
		logger:   logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGame starts a game. Each seat is model.SeatHuman or a strategy name.
func (c *Controller) CreateGame(ctx context.Context, seats []string) (*model.Game, error) {
	if len(seats) < 1 || len(seats) > model.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidPlayerCount, len(seats))
	}
	for _, seat := range seats {
		if seat != model.SeatHuman && !c.registry.Has(seat) {
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, seat)
		}
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, idAlphabet)),
		State:     model.GameStateInProgress,
		Seats:     append([]string(nil), seats...),
		Moves:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Any("seats", seats),
	)
	return game, nil
}

// rebuild replays a stored game's moves
func (c *Controller) rebuild(game *model.Game) (*board.Board, error) {
	b, err := match.Rebuild(game.NumPlayers(), game.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s has corrupt history: %w", game.ID, err)
	}
	return b, nil
}

// GetGame retrieves a game and its current position
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, *board.Board, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	b, err := c.rebuild(game)
	if err != nil {
		return nil, nil, err
	}
	return game, b, nil
}

// ListGames returns every stored game, oldest first
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// PlayMove plays a move in notation for the given seat
func (c *Controller) PlayMove(ctx context.Context, gameID model.GameID, color model.Color, notation string) (*model.Game, *board.Board, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game.IsFinished() {
		return nil, nil, model.ErrGameFinished
	}
	if int(color) < 0 || int(color) >= game.NumPlayers() {
		return nil, nil, fmt.Errorf("%w: %d", model.ErrInvalidSeat, color)
	}

	b, err := c.rebuild(game)
	if err != nil {
		return nil, nil, err
	}
	if b.CurrentPlayer() != color {
		return nil, nil, model.ErrNotPlayerTurn
	}

	m, err := model.ParseMove(notation)
	if err != nil {
		return nil, nil, err
	}
	if !b.IsLegal(m) {
		return nil, nil, fmt.Errorf("%w: %s", model.ErrIllegalMove, m)
	}

	if err := c.apply(ctx, game, b, m); err != nil {
		return nil, nil, err
	}

	c.logger.Info("move played",
		slog.String("game_id", string(gameID)),
		slog.String("color", color.String()),
		slog.String("move", m.String()),
	)
	return game, b, nil
}

// apply pushes a validated move and saves the game
func (c *Controller) apply(ctx context.Context, game *model.Game, b *board.Board, m model.Move) error {
	b.Push(m)
	game.Moves = append(game.Moves, m.String())
	if b.Finished() {
		game.State = model.GameStateFinished
		c.logger.Info("game completed",
			slog.String("game_id", string(game.ID)),
			slog.Any("scores", b.Scores()),
			slog.Int("plies", b.Ply()),
		)
	}
	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// LegalMoves lists the moves available to the side to move
func (c *Controller) LegalMoves(ctx context.Context, gameID model.GameID, unique bool) ([]model.Move, error) {
	_, b, err := c.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if b.Finished() {
		return []model.Move{}, nil
	}
	return b.GenerateLegalMoves(unique), nil
}

// UndoMove takes back the last move. When the game has a human seat, bot
// replies are taken back too so that a human is left to move.
func (c *Controller) UndoMove(ctx context.Context, gameID model.GameID) (*model.Game, *board.Board, error) {
	game, b, err := c.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if len(game.Moves) == 0 {
		return nil, nil, model.ErrNothingToUndo
	}

	hasHuman := game.HasHumanSeat()
	for {
		b.Pop()
		game.Moves = game.Moves[:len(game.Moves)-1]
		if !hasHuman || len(game.Moves) == 0 || !game.IsBotSeat(b.CurrentPlayer()) {
			break
		}
	}

	game.State = model.GameStateInProgress
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, nil, err
	}
	return game, b, nil
}

// ProcessBotTurns plays bot seats until a human is to move or the game ends
func (c *Controller) ProcessBotTurns(ctx context.Context, gameID model.GameID) ([]BotMove, error) {
	game, b, err := c.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var moves []BotMove
	for range MaxBotIterations {
		if b.Finished() || !game.IsBotSeat(b.CurrentPlayer()) {
			break
		}
		color := b.CurrentPlayer()
		name := game.Seats[color]

		strategy, err := c.registry.New(name, c.random)
		if err != nil {
			return moves, err
		}
		m, err := c.runner.Move(ctx, strategy, b)
		if err != nil {
			return moves, err
		}
		if err := c.apply(ctx, game, b, m); err != nil {
			return moves, err
		}
		moves = append(moves, BotMove{Color: color, Strategy: name, Move: m})
	}
	return moves, nil
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return c.storage.DeleteGame(ctx, gameID)
}

// ControllerInterface is the surface handlers depend on
type ControllerInterface interface {
	CreateGame(ctx context.Context, seats []string) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, *board.Board, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	PlayMove(ctx context.Context, gameID model.GameID, color model.Color, notation string) (*model.Game, *board.Board, error)
	LegalMoves(ctx context.Context, gameID model.GameID, unique bool) ([]model.Move, error)
	UndoMove(ctx context.Context, gameID model.GameID) (*model.Game, *board.Board, error)
	ProcessBotTurns(ctx context.Context, gameID model.GameID) ([]BotMove, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
}

var _ ControllerInterface = (*Controller)(nil)
