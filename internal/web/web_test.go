package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhamil/tilewe-go/internal/factory"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/testutil"
	"github.com/nhamil/tilewe-go/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	router := web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Registry:       app.Registry,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)
	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// createGame posts the new game form and returns the game id
func (ts *webTestServer) createGame(id string, seats ...string) string {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(id)
	rr := ts.post("/games", url.Values{"seat": seats})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	require.Equal(ts.t, "/games/"+id, rr.Header().Get("Location"))
	return id
}

func parseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

func cell(doc *goquery.Document, tile string) *goquery.Selection {
	return doc.Find(`table.board td[data-tile="` + tile + `"]`)
}

func TestHomeWithoutGames(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 1, doc.Find("p.no-games").Length())
	assert.Equal(t, 4, doc.Find("form.new-game select[name=seat]").Length())
	assert.Equal(t, model.SeatHuman, doc.Find("form.new-game select").First().Find("option[selected]").AttrOr("value", ""))
	// empty choice, human, then every strategy
	assert.Equal(t, 2+len(model.ValidBotStrategies()), doc.Find("form.new-game select").First().Find("option").Length())
}

func TestHomeListsGames(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("GAME01", model.SeatHuman, model.SeatHuman)
	ts.createGame("GAME02", model.SeatHuman, model.BotStrategyTurtle)

	doc := parseHTML(t, ts.get("/").Body)
	rows := doc.Find("table.games tbody tr")
	require.Equal(t, 2, rows.Length())
	// newest first
	assert.Equal(t, "GAME02", rows.First().AttrOr("data-game", ""))
	assert.Contains(t, rows.First().Text(), "human, turtle")
	assert.Equal(t, "/games/GAME01", rows.Last().Find("a").AttrOr("href", ""))
}

func TestGamePageRendersBoard(t *testing.T) {
	ts := newWebTestServer(t)
	id := ts.createGame("GAME01", model.SeatHuman, model.SeatHuman)

	rr := ts.get("/games/" + id)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(t, rr.Body)

	assert.Equal(t, model.NumTiles, doc.Find("table.board td[data-tile]").Length())
	assert.Equal(t, model.NumTiles, doc.Find("table.board td.empty").Length())
	// row 20 is drawn first
	assert.Equal(t, "a20", doc.Find("table.board td[data-tile]").First().AttrOr("data-tile", ""))
	assert.Equal(t, "blue", doc.Find("span.to-move").Text())

	scores := doc.Find("table.scores tbody tr")
	require.Equal(t, 2, scores.Length())
	assert.True(t, scores.First().HasClass("current"))
	assert.Equal(t, "0", scores.First().Find("td.score").Text())

	form := doc.Find("form.move")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, "/games/"+id+"/move", form.AttrOr("action", ""))
	assert.Equal(t, "blue", form.Find("input[name=color]").AttrOr("value", ""))
}

func TestPlayMoveThroughForm(t *testing.T) {
	ts := newWebTestServer(t)
	id := ts.createGame("GAME01", model.SeatHuman, model.BotStrategyRandom)

	rr := ts.post("/games/"+id+"/move", url.Values{"color": {"blue"}, "move": {" O1n-a1a1 "}})
	doc := parseHTML(t, ts.followRedirect(rr).Body)

	assert.True(t, cell(doc, "a1").HasClass("blue"))
	assert.Equal(t, "B", cell(doc, "a1").Text())
	// the random bot answers with yellow's first move
	assert.Equal(t, 1, doc.Find("table.board td.yellow").Length())
	assert.Equal(t, 2, doc.Find("ol.moves li").Length())
	assert.Equal(t, "1", doc.Find(`tr[data-color="blue"] td.score`).Text())
	assert.Equal(t, 0, doc.Find("p.flash").Length())
}

func TestIllegalMoveFlashesError(t *testing.T) {
	ts := newWebTestServer(t)
	id := ts.createGame("GAME01", model.SeatHuman, model.SeatHuman)

	rr := ts.post("/games/"+id+"/move", url.Values{"color": {"blue"}, "move": {"O1n-a1b2"}})
	doc := parseHTML(t, ts.followRedirect(rr).Body)

	flash := doc.Find("p.flash-error")
	require.Equal(t, 1, flash.Length())
	assert.Contains(t, flash.Text(), "illegal move")
	assert.Equal(t, model.NumTiles, doc.Find("table.board td.empty").Length())

	// the flash is shown once
	doc = parseHTML(t, ts.get("/games/"+id).Body)
	assert.Equal(t, 0, doc.Find("p.flash").Length())
}

func TestFinishedGameHidesForm(t *testing.T) {
	ts := newWebTestServer(t)
	id := ts.createGame("GAME01",
		model.BotStrategyRandom, model.BotStrategyRandom, model.BotStrategyRandom, model.BotStrategyRandom)

	doc := parseHTML(t, ts.get("/games/"+id).Body)
	assert.Equal(t, 0, doc.Find("form.move").Length())
	assert.Contains(t, doc.Find("p.status").Text(), "Winner: yellow")
	assert.Contains(t, doc.Find(`tr[data-color="yellow"]`).Text(), "(winner)")
	assert.Equal(t, "59", doc.Find(`tr[data-color="yellow"] td.score`).Text())
	assert.Equal(t, 55, doc.Find("ol.moves li").Length())
}

func TestCreateGameErrors(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/games", url.Values{"seat": {"", ""}})
	doc := parseHTML(t, ts.followRedirect(rr).Body)
	assert.Contains(t, doc.Find("p.flash-error").Text(), "number of players")
}

func TestGameNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/NOPE")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "Game not found", doc.Find("p.error-message").Text())
}
