package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhamil/tilewe-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	styles styles
}

type styles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	empty  lipgloss.Style
	label  lipgloss.Style
	colors map[byte]lipgloss.Style
}

// NewOutput creates a new Output formatter writing to w. Colour is only
// emitted when w is a terminal.
func NewOutput(w io.Writer, format string) *Output {
	r := lipgloss.NewRenderer(w)
	return &Output{
		format: format,
		w:      w,
		styles: styles{
			header: r.NewStyle().Bold(true).Padding(0, 1),
			cell:   r.NewStyle().Padding(0, 1),
			empty:  r.NewStyle().Faint(true),
			label:  r.NewStyle().Faint(true),
			colors: map[byte]lipgloss.Style{
				'B': r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
				'Y': r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
				'R': r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
				'G': r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			},
		},
	}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case GameList:
		o.printGameList(v)
	case LegalMoves:
		o.printLegalMoves(v)
	case MatchResult:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case TournamentResult:
		o.printTournament(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Seat response type (matches API)
type Seat struct {
	Color           string   `json:"color"`
	Player          string   `json:"player"`
	Score           int      `json:"score"`
	Corners         int      `json:"corners"`
	CanPlay         bool     `json:"can_play"`
	RemainingPieces []string `json:"remaining_pieces"`
}

// BotMove response type
type BotMove struct {
	Color    string `json:"color"`
	Strategy string `json:"strategy"`
	Move     string `json:"move"`
}

// GameState response type
type GameState struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	Seats         []Seat    `json:"seats"`
	CurrentPlayer string    `json:"current_player,omitempty"`
	Ply           int       `json:"ply"`
	Finished      bool      `json:"finished"`
	Winners       []string  `json:"winners,omitempty"`
	Moves         []string  `json:"moves"`
	Board         []string  `json:"board"`
	BotMoves      []BotMove `json:"bot_moves,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameSummary response type
type GameSummary struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Seats     []string  `json:"seats"`
	Plies     int       `json:"plies"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameList response type
type GameList struct {
	Games []GameSummary `json:"games"`
}

// LegalMoves response type, also used by the local moves command
type LegalMoves struct {
	Color  string   `json:"color,omitempty"`
	Unique bool     `json:"unique"`
	Count  int      `json:"count"`
	Moves  []string `json:"moves"`
}

// MatchResult is a finished match, played locally or rebuilt from an archive
type MatchResult struct {
	ID         string   `json:"id"`
	Seats      []string `json:"seats"`
	Scores     []int    `json:"scores"`
	Winners    []string `json:"winners"`
	Plies      int      `json:"plies"`
	Moves      []string `json:"moves,omitempty"`
	DurationMS int64    `json:"duration_ms"`
	Board      []string `json:"board,omitempty"`
}

// MatchList holds several matches
type MatchList struct {
	Matches []MatchResult `json:"matches"`
}

// Ranking is one engine's line in a tournament result. Margin is omitted
// while it is unbounded.
type Ranking struct {
	Rank     int      `json:"rank"`
	Name     string   `json:"name"`
	Elo      float64  `json:"elo"`
	Margin   *float64 `json:"margin,omitempty"`
	Score    int      `json:"score"`
	AvgScore float64  `json:"avg_score"`
	Games    int      `json:"games"`
	Wins     int      `json:"wins"`
	Draws    int      `json:"draws"`
	Losses   int      `json:"losses"`
	WinRate  float64  `json:"win_rate"`
}

// TournamentResult is the outcome of a local tournament
type TournamentResult struct {
	Games      int       `json:"games"`
	RealTimeMS int64     `json:"real_time_ms"`
	Rankings   []Ranking `json:"rankings"`
	// Table is the fixed-width rankings table used for text output
	Table string `json:"-"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return o.styles.header
			}
			return o.styles.cell
		}).
		String()
}

func (o *Output) colorName(name string) string {
	if name == "" {
		return ""
	}
	if st, ok := o.styles.colors[strings.ToUpper(name)[0]]; ok {
		return st.Render(name)
	}
	return name
}

// printBoard draws rows of color codes, row 20 first, with coordinates
func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)
	for i, row := range rows {
		cells := make([]string, len(row))
		for j := range len(row) {
			code := row[j]
			if st, ok := o.styles.colors[code]; ok {
				cells[j] = st.Render(string(code))
			} else {
				cells[j] = o.styles.empty.Render(string(code))
			}
		}
		fmt.Fprintf(o.w, "%s %s\n", o.styles.label.Render(fmt.Sprintf("%2d", size-i)), strings.Join(cells, " "))
	}

	cols := make([]string, len(rows[0]))
	for j := range cols {
		cols[j] = string(rune('a' + j))
	}
	fmt.Fprintf(o.w, "   %s\n", o.styles.label.Render(strings.Join(cols, " ")))
}

func (o *Output) printGameState(g GameState) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	fmt.Fprintf(o.w, "Ply: %d\n\n", g.Ply)

	o.printBoard(g.Board)

	rows := make([][]string, 0, len(g.Seats))
	for _, s := range g.Seats {
		marker := ""
		if s.Color == g.CurrentPlayer {
			marker = "*"
		}
		rows = append(rows, []string{
			marker + o.colorName(s.Color),
			s.Player,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Corners),
			strconv.Itoa(len(s.RemainingPieces)),
		})
	}
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, o.table([]string{"Color", "Player", "Score", "Corners", "Pieces"}, rows))

	for _, bm := range g.BotMoves {
		fmt.Fprintf(o.w, "%s (%s) played %s\n", o.colorName(bm.Color), bm.Strategy, bm.Move)
	}

	if g.Finished {
		names := make([]string, len(g.Winners))
		for i, w := range g.Winners {
			names[i] = o.colorName(w)
		}
		fmt.Fprintf(o.w, "Winners: %s\n", strings.Join(names, ", "))
	} else {
		fmt.Fprintf(o.w, "To move: %s\n", o.colorName(g.CurrentPlayer))
	}
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	rows := make([][]string, 0, len(l.Games))
	for _, g := range l.Games {
		rows = append(rows, []string{g.ID, g.State, strings.Join(g.Seats, ", "), strconv.Itoa(g.Plies)})
	}
	fmt.Fprintln(o.w, o.table([]string{"ID", "State", "Seats", "Plies"}, rows))
}

func (o *Output) printLegalMoves(m LegalMoves) {
	kind := "unique"
	if !m.Unique {
		kind = "all"
	}
	if m.Color == "" {
		fmt.Fprintf(o.w, "%d legal moves (%s)\n", m.Count, kind)
	} else {
		fmt.Fprintf(o.w, "%d legal moves for %s (%s)\n", m.Count, o.colorName(m.Color), kind)
	}

	const perLine = 8
	for i := 0; i < len(m.Moves); i += perLine {
		fmt.Fprintf(o.w, "  %s\n", strings.Join(m.Moves[i:min(i+perLine, len(m.Moves))], " "))
	}
}

func (o *Output) printMatch(m MatchResult) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Plies: %d\n", m.Plies)
	if m.DurationMS > 0 {
		fmt.Fprintf(o.w, "Duration: %s\n", time.Duration(m.DurationMS)*time.Millisecond)
	}

	if len(m.Board) > 0 {
		fmt.Fprintln(o.w)
		o.printBoard(m.Board)
	}

	winners := make(map[string]bool, len(m.Winners))
	for _, w := range m.Winners {
		winners[w] = true
	}
	rows := make([][]string, 0, len(m.Seats))
	for i, seat := range m.Seats {
		color := model.Color(i).String()
		result := ""
		if winners[color] {
			result = "winner"
		}
		rows = append(rows, []string{o.colorName(color), seat, strconv.Itoa(m.Scores[i]), result})
	}
	fmt.Fprintln(o.w, o.table([]string{"Color", "Engine", "Score", ""}, rows))
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	rows := make([][]string, 0, len(l.Matches))
	for _, m := range l.Matches {
		scores := make([]string, len(m.Scores))
		for i, s := range m.Scores {
			scores[i] = strconv.Itoa(s)
		}
		rows = append(rows, []string{
			m.ID,
			strings.Join(m.Seats, ", "),
			strings.Join(scores, " "),
			strings.Join(m.Winners, ", "),
			strconv.Itoa(m.Plies),
		})
	}
	fmt.Fprintln(o.w, o.table([]string{"ID", "Seats", "Scores", "Winners", "Plies"}, rows))
}

func (o *Output) printTournament(t TournamentResult) {
	fmt.Fprintf(o.w, "Games: %d in %s\n\n", t.Games, time.Duration(t.RealTimeMS)*time.Millisecond)
	fmt.Fprint(o.w, t.Table)
}
