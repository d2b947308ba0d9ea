package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nhamil/tilewe-go/internal/api/response"
	"github.com/nhamil/tilewe-go/internal/model"
)

// MatchReader is the part of storage the match endpoints read from
type MatchReader interface {
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	ListMatches(ctx context.Context) ([]*model.MatchRecord, error)
}

// MatchHandler serves archived bot matches
type MatchHandler struct {
	matches MatchReader
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matches MatchReader) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.matches.ListMatches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MatchList{Matches: make([]response.Match, 0, len(recs))}
	for _, rec := range recs {
		resp.Matches = append(resp.Matches, response.MatchFromModel(rec, false))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.matches.GetMatch(r.Context(), model.MatchID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(rec, true))
}
