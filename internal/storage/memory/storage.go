package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It keeps copies, so callers may keep mutating what they saved.
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	matches map[model.MatchID]*model.MatchRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:   make(map[model.GameID]*model.Game),
		matches: make(map[model.MatchID]*model.MatchRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func copyGame(g *model.Game) *model.Game {
	out := *g
	out.Seats = slices.Clone(g.Seats)
	out.Moves = slices.Clone(g.Moves)
	return &out
}

func copyMatch(m *model.MatchRecord) *model.MatchRecord {
	out := *m
	out.Seats = slices.Clone(m.Seats)
	out.Moves = slices.Clone(m.Moves)
	out.Scores = slices.Clone(m.Scores)
	out.Winners = slices.Clone(m.Winners)
	return &out
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = copyGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, copyGame(g))
	}
	slices.SortFunc(games, func(a, b *model.Game) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return games, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, rec *model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[rec.ID]; ok {
		return model.ErrMatchExists
	}
	s.matches[rec.ID] = copyMatch(rec)
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return copyMatch(rec), nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MatchRecord, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, copyMatch(m))
	}
	slices.SortFunc(out, func(a, b *model.MatchRecord) int {
		return cmp.Or(a.StartedAt.Compare(b.StartedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}
