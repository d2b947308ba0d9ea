package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhamil/tilewe-go/internal/api"
	"github.com/nhamil/tilewe-go/internal/api/apierr"
	"github.com/nhamil/tilewe-go/internal/api/handler"
	"github.com/nhamil/tilewe-go/internal/api/middleware"
	"github.com/nhamil/tilewe-go/internal/api/response"
	"github.com/nhamil/tilewe-go/internal/factory"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/testutil"
)

// testServer wires the router over a TestApp so ids and bot moves are
// deterministic
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Registry:       app.Registry,
		Matches:        app.Storage,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

func (ts *testServer) createGame(t *testing.T, id string, seats ...string) response.GameState {
	t.Helper()
	ts.app.MockRandom.QueueString(id)
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"seats": seats})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.GameState](t, rr)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestListStrategies(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[handler.StrategyList](t, rr)
	require.Len(t, resp.Strategies, len(model.ValidBotStrategies()))
	byName := map[string]float64{}
	for _, s := range resp.Strategies {
		byName[s.Name] = s.EstimatedElo
	}
	assert.Equal(t, -100.0, byName[model.BotStrategyRandom])
	assert.Equal(t, "LargestPiece", resp.Strategies[0].DisplayName)
}

func TestCreateHumanGame(t *testing.T) {
	ts := newTestServer(t)

	ts.app.MockRandom.QueueString("GAME01")
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"seats": []string{"human", "human"}})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/games/GAME01", rr.Header().Get("Location"))

	state := decode[response.GameState](t, rr)
	assert.Equal(t, "GAME01", state.ID)
	assert.Equal(t, "in_progress", state.State)
	assert.Equal(t, "blue", state.CurrentPlayer)
	assert.Equal(t, 0, state.Ply)
	assert.False(t, state.Finished)
	assert.Empty(t, state.Moves)
	assert.Empty(t, state.BotMoves)
	require.Len(t, state.Board, model.BoardSize)
	assert.Equal(t, "....................", state.Board[0])
	require.Len(t, state.Seats, 2)
	assert.Equal(t, "yellow", state.Seats[1].Color)
	assert.Equal(t, "human", state.Seats[1].Player)
	assert.Len(t, state.Seats[0].RemainingPieces, 21)
	assert.Equal(t, 4, state.Seats[0].Corners)
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"seats": []string{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPlayerCount, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"seats": []string{"human", "deep-blue"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownStrategy, errorCode(t, rr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rec))
}

func TestPlayMoveAndBotReply(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human", model.BotStrategyRandom)

	rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{
		"color": "blue",
		"move":  "O1n-a1a1",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	state := decode[response.GameState](t, rr)
	assert.Equal(t, 2, state.Ply)
	assert.Equal(t, "blue", state.CurrentPlayer)
	require.Len(t, state.BotMoves, 1)
	assert.Equal(t, "yellow", state.BotMoves[0].Color)
	assert.Equal(t, model.BotStrategyRandom, state.BotMoves[0].Strategy)
	assert.Equal(t, []string{"O1n-a1a1", state.BotMoves[0].Move}, state.Moves)
	assert.Equal(t, 1, state.Seats[0].Score)
	// row 1 is the last board row
	assert.Equal(t, byte('B'), state.Board[model.BoardSize-1][0])
}

func TestBotOpensWhenSeatedFirst(t *testing.T) {
	ts := newTestServer(t)

	state := ts.createGame(t, "GAME01", model.BotStrategyRandom, "human")
	require.Len(t, state.BotMoves, 1)
	assert.Equal(t, "blue", state.BotMoves[0].Color)
	assert.Equal(t, "yellow", state.CurrentPlayer)
	assert.Equal(t, []string{"O1n-a1a1"}, state.Moves)
}

func TestAllBotGameFinishesOnCreate(t *testing.T) {
	ts := newTestServer(t)

	state := ts.createGame(t, "GAME01",
		model.BotStrategyRandom, model.BotStrategyRandom, model.BotStrategyRandom, model.BotStrategyRandom)
	assert.True(t, state.Finished)
	assert.Equal(t, "finished", state.State)
	assert.Empty(t, state.CurrentPlayer)
	assert.Equal(t, []string{"yellow"}, state.Winners)
	assert.Len(t, state.Moves, 55)
	assert.Len(t, state.BotMoves, 55)

	rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{"color": "blue", "move": "O1n-a1a1"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameFinished, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/games/GAME01/moves", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	moves := decode[response.LegalMoves](t, rr)
	assert.Zero(t, moves.Count)
	assert.Empty(t, moves.Color)
}

func TestPlayMoveErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human", "human")

	tests := []struct {
		name   string
		body   map[string]string
		status int
		code   string
	}{
		{"wrong turn", map[string]string{"color": "yellow", "move": "O1n-a1a1"}, http.StatusConflict, apierr.CodeNotYourTurn},
		{"bad notation", map[string]string{"color": "blue", "move": "Q9n-a1a1"}, http.StatusBadRequest, apierr.CodeInvalidMove},
		{"off corner", map[string]string{"color": "blue", "move": "O1n-a1b2"}, http.StatusConflict, apierr.CodeIllegalMove},
		{"seat not in game", map[string]string{"color": "red", "move": "O1n-a1a1"}, http.StatusBadRequest, apierr.CodeInvalidSeat},
		{"unknown color", map[string]string{"color": "purple", "move": "O1n-a1a1"}, http.StatusBadRequest, apierr.CodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestLegalMoves(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human", "human", "human", "human")

	rr := ts.request(http.MethodGet, "/api/v1/games/GAME01/moves", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	unique := decode[response.LegalMoves](t, rr)
	assert.Equal(t, "blue", unique.Color)
	assert.True(t, unique.Unique)
	assert.Equal(t, 232, unique.Count)
	assert.Len(t, unique.Moves, 232)
	assert.Equal(t, "O1n-a1a1", unique.Moves[0])

	rr = ts.request(http.MethodGet, "/api/v1/games/GAME01/moves?unique=false", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 464, decode[response.LegalMoves](t, rr).Count)

	rr = ts.request(http.MethodGet, "/api/v1/games/GAME01/moves?unique=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUndo(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human", "human")

	rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/undo", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNothingToUndo, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{"color": "blue", "move": "O1n-a1a1"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/GAME01/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[response.GameState](t, rr)
	assert.Equal(t, 0, state.Ply)
	assert.Equal(t, "blue", state.CurrentPlayer)
	assert.Empty(t, state.Moves)
}

func TestUndoAgainstBot(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human", "random")

	rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{"color": "blue", "move": "O1n-a1a1"})
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[response.GameState](t, rr)
	require.Len(t, state.Moves, 2)
	assert.Equal(t, "blue", state.CurrentPlayer)

	rr = ts.request(http.MethodPost, "/api/v1/games/GAME01/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	state = decode[response.GameState](t, rr)
	assert.Equal(t, 0, state.Ply)
	assert.Equal(t, "blue", state.CurrentPlayer)
	assert.Empty(t, state.Moves)

	rr = ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{"color": "blue", "move": "I2n-a1a1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	state = decode[response.GameState](t, rr)
	assert.Equal(t, "I2n-a1a1", state.Moves[0])
	assert.Equal(t, "blue", state.CurrentPlayer)
}

func TestStalledBotPlaysBeforeHuman(t *testing.T) {
	ts := newTestServer(t)
	now := ts.app.MockClock.Now()
	require.NoError(t, ts.app.Storage.SaveGame(t.Context(), &model.Game{
		ID:        "GAME01",
		State:     model.GameStateInProgress,
		Seats:     []string{model.BotStrategyRandom, model.SeatHuman},
		Moves:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	rr := ts.request(http.MethodPost, "/api/v1/games/GAME01/moves", map[string]string{"color": "yellow", "move": "O1n-a1a20"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	state := decode[response.GameState](t, rr)
	require.GreaterOrEqual(t, len(state.BotMoves), 2)
	assert.Equal(t, "blue", state.BotMoves[0].Color)
	assert.Equal(t, "O1n-a1a20", state.Moves[1])
	assert.Equal(t, "yellow", state.CurrentPlayer)
}

func TestGetListDeleteGames(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", "human")
	ts.app.MockClock.Advance(time.Minute)
	ts.createGame(t, "GAME02", "human", "human")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.GameList](t, rr)
	require.Len(t, list.Games, 2)
	assert.Equal(t, "GAME01", list.Games[0].ID)
	assert.Equal(t, []string{"human", "human"}, list.Games[1].Seats)

	rr = ts.request(http.MethodGet, "/api/v1/games/GAME02", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GAME02", decode[response.GameState](t, rr).ID)

	rr = ts.request(http.MethodDelete, "/api/v1/games/GAME01", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/games/GAME01", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMatches(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.MatchList](t, rr).Matches)

	start := ts.app.MockClock.Now()
	rec := &model.MatchRecord{
		ID:         "MATCH1",
		Seats:      []string{model.BotStrategyRandom, model.BotStrategyTurtle},
		Moves:      []string{"O1n-a1a1"},
		Scores:     []int{1, 0},
		Winners:    []model.Color{model.Blue},
		Plies:      1,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
	require.NoError(t, ts.app.Storage.SaveMatch(t.Context(), rec))

	rr = ts.request(http.MethodGet, "/api/v1/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.MatchList](t, rr)
	require.Len(t, list.Matches, 1)
	assert.Empty(t, list.Matches[0].Moves)
	assert.Equal(t, []string{"blue"}, list.Matches[0].Winners)

	rr = ts.request(http.MethodGet, "/api/v1/matches/MATCH1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decode[response.Match](t, rr)
	assert.Equal(t, []string{"O1n-a1a1"}, m.Moves)
	assert.Equal(t, int64(1500), m.DurationMS)

	rr = ts.request(http.MethodGet, "/api/v1/matches/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, errorCode(t, rr))
}

func TestRecoveryWritesJSON(t *testing.T) {
	h := middleware.Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("board: cannot push unresolvable move")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apierr.CodeInternalError, errorCode(t, rr))
}
