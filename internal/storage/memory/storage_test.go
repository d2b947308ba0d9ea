package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nhamil/tilewe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:        "game-1",
		State:     model.GameStateInProgress,
		Seats:     []string{model.SeatHuman, model.BotStrategyRandom},
		Moves:     []string{"O1n-a1a1"},
		CreatedAt: s.now,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game, retrieved)
}

func (s *StorageSuite) TestSavedGameIsACopy() {
	game := &model.Game{ID: "game-1", Moves: []string{"O1n-a1a1"}}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	game.Moves = append(game.Moves, "O1n-a1a20")
	game.State = model.GameStateFinished

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal([]string{"O1n-a1a1"}, retrieved.Moves)
	s.Empty(retrieved.State)

	retrieved.Moves[0] = "changed"
	again, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal("O1n-a1a1", again.Moves[0])
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1"}))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	// deleting twice is fine
	s.NoError(s.storage.DeleteGame(s.ctx, "game-1"))
}

func (s *StorageSuite) TestListGamesOldestFirst() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "b", CreatedAt: s.now.Add(time.Minute)}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "a", CreatedAt: s.now.Add(2 * time.Minute)}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "c", CreatedAt: s.now}))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("c"), games[0].ID)
	s.Equal(model.GameID("b"), games[1].ID)
	s.Equal(model.GameID("a"), games[2].ID)
}

func (s *StorageSuite) TestListGamesEmpty() {
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	rec := &model.MatchRecord{
		ID:        "match-1",
		Seats:     []string{"random", "turtle"},
		Moves:     []string{"O1n-a1a1"},
		Scores:    []int{1, 0},
		Winners:   []model.Color{model.Blue},
		Plies:     1,
		StartedAt: s.now,
	}
	s.Require().NoError(s.storage.SaveMatch(s.ctx, rec))

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(rec, retrieved)

	_, err = s.storage.GetMatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestSaveMatchRejectsDuplicateID() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.MatchRecord{ID: "match-1", Plies: 3, StartedAt: s.now}))

	err := s.storage.SaveMatch(s.ctx, &model.MatchRecord{ID: "match-1", Plies: 9, StartedAt: s.now.Add(time.Minute)})
	s.ErrorIs(err, model.ErrMatchExists)

	kept, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(3, kept.Plies)

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *StorageSuite) TestListMatches() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.MatchRecord{ID: "late", StartedAt: s.now.Add(time.Hour)}))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.MatchRecord{ID: "early", StartedAt: s.now}))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(model.MatchID("early"), matches[0].ID)
	s.Equal(model.MatchID("late"), matches[1].ID)
}
