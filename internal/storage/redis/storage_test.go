package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/nhamil/tilewe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	cfg.MatchTTL = 2 * time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:        "game-1",
		State:     model.GameStateInProgress,
		Seats:     []string{model.SeatHuman, model.BotStrategyTurtle},
		Moves:     []string{"O1n-a1a1", "O1n-a1a20"},
		CreatedAt: s.now,
		UpdatedAt: s.now.Add(time.Second),
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Seats, retrieved.Seats)
	s.Equal(game.Moves, retrieved.Moves)
	s.Equal(game.State, retrieved.State)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGameKeyAndTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", CreatedAt: s.now}))

	s.True(s.mini.Exists("tilewe:game:game-1"))
	s.Equal(time.Hour, s.mini.TTL("tilewe:game:game-1"))

	members, err := s.mini.ZMembers("tilewe:idx:games")
	s.Require().NoError(err)
	s.Equal([]string{"game-1"}, members)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", CreatedAt: s.now}))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
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

func (s *StorageSuite) TestListGamesPrunesExpired() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "old", CreatedAt: s.now}))
	s.mini.FastForward(2 * time.Hour)
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "new", CreatedAt: s.now.Add(2 * time.Hour)}))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("new"), games[0].ID)

	members, err := s.mini.ZMembers("tilewe:idx:games")
	s.Require().NoError(err)
	s.Equal([]string{"new"}, members)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	rec := &model.MatchRecord{
		ID:         "match-1",
		Seats:      []string{"random", "turtle"},
		Moves:      []string{"O1n-a1a1"},
		Scores:     []int{1, 0},
		Winners:    []model.Color{model.Blue},
		Plies:      1,
		StartedAt:  s.now,
		FinishedAt: s.now.Add(time.Second),
	}
	s.Require().NoError(s.storage.SaveMatch(s.ctx, rec))
	s.Equal(2*time.Hour, s.mini.TTL("tilewe:match:match-1"))

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(rec.Scores, retrieved.Scores)
	s.Equal(rec.Winners, retrieved.Winners)
	s.Equal(rec.Plies, retrieved.Plies)
	s.Equal(time.Second, retrieved.Duration())

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

func (s *StorageSuite) TestNoTTL() {
	cfg := DefaultConfig()
	cfg.GameTTL = 0
	st := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer st.Close()

	s.Require().NoError(st.SaveGame(s.ctx, &model.Game{ID: "forever", CreatedAt: s.now}))
	s.Equal(time.Duration(0), s.mini.TTL("tilewe:game:forever"))
}
