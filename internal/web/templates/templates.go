// Package templates holds the HTML pages of the web interface
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed *.html
var files embed.FS

// FlashMessage is a one-shot notice shown on the next page
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is shared by every page
type PageData struct {
	Title string
	Flash *FlashMessage
}

// GameRow is one game in the home page listing
type GameRow struct {
	ID        string
	State     string
	Seats     []string
	Plies     int
	UpdatedAt time.Time
}

// SeatSlot is one seat selector of the new game form
type SeatSlot struct {
	Color   string
	Default string
}

// HomeData is the data for the home page
type HomeData struct {
	PageData
	Games     []GameRow
	SeatSlots []SeatSlot
	// SeatOptions are "human" followed by every strategy name
	SeatOptions []string
}

// Cell is one board tile. Class is the owner's color name or "empty".
type Cell struct {
	Tile  string
	Class string
	Code  string
}

// Row is one board row, numbered 1 to 20
type Row struct {
	Number int
	Cells  []Cell
}

// SeatRow is one line of the score table
type SeatRow struct {
	Color     string
	Player    string
	Score     int
	Corners   int
	Remaining int
	IsCurrent bool
	IsWinner  bool
}

// GameData is the data for the game page
type GameData struct {
	PageData
	ID            string
	Finished      bool
	Columns       []string
	Rows          []Row
	Seats         []SeatRow
	CurrentPlayer string
	// HumanToMove shows the move form
	HumanToMove bool
	Moves       []string
	Winners     []string
}

// ErrorData is the data for the error page
type ErrorData struct {
	PageData
	Status  int
	Message string
}

var pages = map[string]*template.Template{}

func init() {
	for _, page := range []string{"home.html", "game.html", "error.html"} {
		pages[page] = template.Must(template.New(page).ParseFS(files, "layout.html", page))
	}
}

func render(w io.Writer, page string, data any) error {
	t, ok := pages[page]
	if !ok {
		return fmt.Errorf("no page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Home renders the game list
func Home(w io.Writer, data HomeData) error { return render(w, "home.html", data) }

// Game renders one game
func Game(w io.Writer, data GameData) error { return render(w, "game.html", data) }

// Error renders an error page
func Error(w io.Writer, data ErrorData) error { return render(w, "error.html", data) }
