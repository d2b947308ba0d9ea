package handler

import (
	"net/http"

	"github.com/nhamil/tilewe-go/internal/api/response"
	"github.com/nhamil/tilewe-go/internal/services/bot"
)

// StrategyHandler lists the bot strategies a seat can be given
type StrategyHandler struct {
	registry *bot.Registry
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(registry *bot.Registry) *StrategyHandler {
	return &StrategyHandler{registry: registry}
}

// StrategyList is the response for listing strategies
type StrategyList struct {
	Strategies []bot.Info `json:"strategies"`
}

// List handles GET /api/v1/strategies
func (h *StrategyHandler) List(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, StrategyList{Strategies: h.registry.All()})
}
