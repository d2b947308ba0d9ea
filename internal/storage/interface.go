package storage

import (
	"context"

	"github.com/nhamil/tilewe-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns every stored game, oldest first
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Match operations
	// SaveMatch stores a new record. Match records are written once, so an
	// ID that is already taken gives ErrMatchExists.
	SaveMatch(ctx context.Context, rec *model.MatchRecord) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	// ListMatches returns every stored match, oldest first
	ListMatches(ctx context.Context) ([]*model.MatchRecord, error)
}
