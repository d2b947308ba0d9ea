package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nhamil/tilewe-go/internal/api/handler"
	"github.com/nhamil/tilewe-go/internal/api/middleware"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	Registry       *bot.Registry
	Matches        handler.MatchReader
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the /api/v1 routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)
	matchHandler := handler.NewMatchHandler(cfg.Matches)
	strategyHandler := handler.NewStrategyHandler(cfg.Registry)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/strategies", strategyHandler.List).Methods(http.MethodGet)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/moves", gameHandler.LegalMoves).Methods(http.MethodGet)
	games.HandleFunc("/{id}/moves", gameHandler.PlayMove).Methods(http.MethodPost)
	games.HandleFunc("/{id}/undo", gameHandler.Undo).Methods(http.MethodPost)

	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.List).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
