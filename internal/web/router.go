package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/game"
	"github.com/nhamil/tilewe-go/internal/web/handler"
	"github.com/nhamil/tilewe-go/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	Registry       *bot.Registry
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the HTML routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Registry, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", homeHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/move", gameHandler.Move).Methods(http.MethodPost)
}
