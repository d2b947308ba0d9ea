// Package tournament plays many bot matches concurrently and rates the
// strategies that took part.
package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/export"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/match"
	"github.com/nhamil/tilewe-go/internal/services/tournament/elo"
)

// EloK is the rating update factor applied after each game
const EloK = 8

// MatchStore receives every finished match record
type MatchStore interface {
	SaveMatch(ctx context.Context, rec *model.MatchRecord) error
}

// Config describes one tournament
type Config struct {
	// Engines are strategy names; an engine may appear more than once
	Engines []string
	Games   int
	// Seats is the number of engines drawn into each game
	Seats       int
	Parallelism int
	MoveTimeout time.Duration
	// StartingElos seeds ratings with each strategy's estimated Elo instead of 0
	StartingElos bool
	// ExportPath, when set, receives every game as a parquet move archive
	ExportPath string
	// Progress is called after each game is folded into the results, in
	// completion order
	Progress func(done int, md MatchData)
}

// Service runs tournaments
type Service struct {
	registry *bot.Registry
	store    MatchStore
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewService creates a tournament Service. store may be nil.
func NewService(registry *bot.Registry, store MatchStore, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		store:    store,
		clock:    clock,
		random:   random,
		logger:   logger,
	}
}

func (s *Service) validate(cfg *Config) error {
	if len(cfg.Engines) == 0 {
		return fmt.Errorf("%w: no engines", model.ErrUnknownStrategy)
	}
	for _, name := range cfg.Engines {
		if !s.registry.Has(name) {
			return fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
		}
	}
	if cfg.Seats < 1 || cfg.Seats > model.MaxPlayers || cfg.Seats > len(cfg.Engines) {
		return fmt.Errorf("%w: %d seats for %d engines", model.ErrInvalidPlayerCount, cfg.Seats, len(cfg.Engines))
	}
	if cfg.Games < 0 {
		return fmt.Errorf("game count must not be negative, got %d", cfg.Games)
	}
	cfg.Parallelism = max(cfg.Parallelism, 1)
	return nil
}

// game is the draw made for one game before any is played
type game struct {
	engines []int
	seed    uint64
}

func (s *Service) draw(cfg Config) []game {
	games := make([]game, cfg.Games)
	for i := range games {
		order := make([]int, len(cfg.Engines))
		for j := range order {
			order[j] = j
		}
		s.random.Shuffle(len(order), func(a, b int) {
			order[a], order[b] = order[b], order[a]
		})
		// offset by the game index so no two games share a seed
		games[i] = game{
			engines: order[:cfg.Seats],
			seed:    uint64(s.random.Intn(math.MaxInt)) + uint64(i),
		}
	}
	return games
}

// Run plays every game of the tournament and returns the aggregate results.
// The first failing game cancels the rest.
func (s *Service) Run(ctx context.Context, cfg Config) (*Results, error) {
	if err := s.validate(&cfg); err != nil {
		return nil, err
	}

	results := newResults(cfg.Engines)
	if cfg.StartingElos {
		for i, name := range cfg.Engines {
			info, _ := s.registry.Info(name)
			results.EloStart[i] = info.EstimatedElo
			results.EloEnd[i] = info.EstimatedElo
		}
	}

	s.logger.Info("tournament starting",
		slog.Any("engines", cfg.Engines),
		slog.Int("games", cfg.Games),
		slog.Int("seats", cfg.Seats),
		slog.Int("parallelism", cfg.Parallelism),
	)

	start := s.clock.Now()
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)

	for _, gm := range s.draw(cfg) {
		g.Go(func() error {
			rnd := random.NewSeeded(gm.seed)
			seats := make([]bot.Strategy, len(gm.engines))
			for i, e := range gm.engines {
				strategy, err := s.registry.New(cfg.Engines[e], rnd.Fork())
				if err != nil {
					return err
				}
				seats[i] = strategy
			}

			runner := match.NewRunner(s.clock, rnd, cfg.MoveTimeout, s.logger)
			rec, err := runner.Play(gctx, seats)
			if err != nil {
				return err
			}
			if s.store != nil {
				if err := s.store.SaveMatch(gctx, rec); err != nil {
					return fmt.Errorf("saving match %s: %w", rec.ID, err)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			md := results.fold(gm.engines, rec)
			if cfg.Progress != nil {
				cfg.Progress(len(results.Matches), md)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("tournament failed", slog.String("error", err.Error()))
		return nil, err
	}
	results.RealTime = s.clock.Since(start)

	if cfg.ExportPath != "" {
		if err := export.WriteMatches(cfg.ExportPath, results.Records()); err != nil {
			return nil, fmt.Errorf("exporting matches: %w", err)
		}
	}

	s.logger.Info("tournament finished",
		slog.Int("games", len(results.Matches)),
		slog.Duration("real_time", results.RealTime),
	)
	return results, nil
}

// fold adds one finished game to the totals and ratings
func (r *Results) fold(engines []int, rec *model.MatchRecord) MatchData {
	for _, e := range engines {
		r.Games[e]++
	}
	if len(rec.Winners) == 1 {
		r.Wins[engines[rec.Winners[0]]]++
	} else {
		for _, w := range rec.Winners {
			r.Draws[engines[w]]++
		}
	}
	for seat, score := range rec.Scores {
		r.TotalScores[engines[seat]] += score
	}
	r.TotalTime += rec.Duration()

	md := MatchData{Record: rec, Engines: engines}
	if len(engines) > 1 {
		md.EloStart = make([]float64, len(engines))
		md.EloEnd = make([]float64, len(engines))
		for seat, e := range engines {
			md.EloStart[seat] = r.EloEnd[e]
		}
		md.EloDelta = elo.AdjustN(md.EloStart, rec.Scores, EloK)
		for seat, e := range engines {
			r.EloEnd[e] += md.EloDelta[seat]
			md.EloEnd[seat] = r.EloEnd[e]
		}
	}
	r.Matches = append(r.Matches, md)
	return md
}
