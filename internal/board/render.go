package board

import (
	"strconv"
	"strings"

	"github.com/nhamil/tilewe-go/internal/model"
)

// Rows returns one string of color codes per grid row, row 20 first
func (b *Board) Rows() []string {
	rows := make([]string, 0, model.BoardSize)
	buf := make([]byte, model.BoardSize)
	for row := model.BoardSize - 1; row >= 0; row-- {
		for col := range buf {
			buf[col] = b.grid[model.TileAt(col, row)].Code()
		}
		rows = append(rows, string(buf))
	}
	return rows
}

// String draws the grid with row 20 at the top, then one line per seat with
// its score and remaining pieces, then the game status
func (b *Board) String() string {
	var sb strings.Builder

	for row := model.BoardSize - 1; row >= 0; row-- {
		for col := 0; col < model.BoardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.grid[model.TileAt(col, row)].Code())
		}
		sb.WriteByte('\n')
	}

	for i, p := range b.players {
		c := model.Color(i)
		sb.WriteByte(c.Code())
		sb.WriteString(": ")
		sb.WriteString(strconv.Itoa(p.score))
		if left := b.RemainingPieces(c); len(left) > 0 {
			sb.WriteString(" (")
			for _, piece := range left {
				sb.WriteByte(' ')
				sb.WriteString(piece.String())
			}
			sb.WriteString(" )")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("Finished: ")
	sb.WriteString(strconv.FormatBool(b.finished))
	if b.finished {
		sb.WriteString("\nWinner:")
		for _, w := range b.Winners() {
			sb.WriteByte(' ')
			sb.WriteByte(w.Code())
		}
	} else {
		sb.WriteString("\nTurn: ")
		sb.WriteByte(b.current.Code())
	}
	return sb.String()
}
