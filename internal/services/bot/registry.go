package bot

import (
	"fmt"
	"slices"

	"github.com/nhamil/tilewe-go/internal/dependencies/random"
	"github.com/nhamil/tilewe-go/internal/model"
)

// Constructor builds a fresh strategy instance
type Constructor func(rnd random.Random) Strategy

// Info describes a registered strategy
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	// EstimatedElo is relative to an average opponent at 0
	EstimatedElo float64 `json:"estimated_elo"`
}

type entry struct {
	info Info
	ctor Constructor
}

// Registry maps strategy names to constructors
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns a registry holding every built-in strategy
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	r.Register(model.BotStrategyRandom, -100, func(rnd random.Random) Strategy { return NewRandomStrategy(rnd) })
	r.Register(model.BotStrategyMostCorners, 15, func(rnd random.Random) Strategy { return NewMostCornersStrategy(rnd) })
	r.Register(model.BotStrategyLeastCorners, -250, func(rnd random.Random) Strategy { return NewLeastCornersStrategy(rnd) })
	r.Register(model.BotStrategyLargestPiece, 30, func(rnd random.Random) Strategy { return NewLargestPieceStrategy(rnd) })
	r.Register(model.BotStrategySmallestPiece, -150, func(rnd random.Random) Strategy { return NewSmallestPieceStrategy(rnd) })
	r.Register(model.BotStrategyMaxMoveDiff, 50, func(rnd random.Random) Strategy { return NewMaxMoveDiffStrategy(rnd) })
	r.Register(model.BotStrategyMinMoveDiff, -200, func(rnd random.Random) Strategy { return NewMinMoveDiffStrategy(rnd) })
	r.Register(model.BotStrategyWallCrawl, -10, func(rnd random.Random) Strategy { return NewWallCrawlStrategy(rnd) })
	r.Register(model.BotStrategyTurtle, -40, func(rnd random.Random) Strategy { return NewTurtleStrategy(rnd) })
	r.Register(model.BotStrategySimpleSearch, 75, func(rnd random.Random) Strategy { return NewSearchStrategy(rnd, nil) })
	return r
}

// Register adds or replaces a strategy
func (r *Registry) Register(name string, estimatedElo float64, ctor Constructor) {
	r.entries[name] = entry{
		info: Info{Name: name, DisplayName: model.BotStrategyDisplayName(name), EstimatedElo: estimatedElo},
		ctor: ctor,
	}
}

// New builds the named strategy
func (r *Registry) New(name string, rnd random.Random) (Strategy, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	return e.ctor(rnd), nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Info returns the description of a registered strategy
func (r *Registry) Info(name string) (Info, bool) {
	e, ok := r.entries[name]
	return e.info, ok
}

// Names returns every registered name in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every registered strategy, sorted by name
func (r *Registry) All() []Info {
	out := make([]Info, 0, len(r.entries))
	for _, name := range r.Names() {
		out = append(out, r.entries[name].info)
	}
	return out
}
