// Package export archives finished matches as parquet move tables.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/nhamil/tilewe-go/internal/board"
	"github.com/nhamil/tilewe-go/internal/model"
)

// Schema tags every archive written by this package
const Schema = "tilewe_moves_v1"

// ErrUnknownSchema is returned when reading a parquet file not written by
// WriteMatches
var ErrUnknownSchema = errors.New("unknown parquet schema")

// MoveRow is one placement of one archived match
type MoveRow struct {
	MatchID    string   `parquet:"match_id,dict"`
	Seats      []string `parquet:"seats"`
	Ply        int32    `parquet:"ply"`
	Color      string   `parquet:"color,dict"`
	Piece      string   `parquet:"piece,dict"`
	Rotation   string   `parquet:"rotation,dict"`
	Contact    string   `parquet:"contact"`
	To         string   `parquet:"to"`
	Notation   string   `parquet:"notation"`
	ScoreAfter int32    `parquet:"score_after"`
}

// Rows expands a match record into one row per move. The moves are replayed
// to recover who made each one.
func Rows(rec *model.MatchRecord) ([]MoveRow, error) {
	b, err := board.New(len(rec.Seats))
	if err != nil {
		return nil, err
	}
	rows := make([]MoveRow, 0, len(rec.Moves))
	for i, n := range rec.Moves {
		m, err := model.ParseMove(n)
		if err != nil {
			return nil, fmt.Errorf("match %s move %d: %w", rec.ID, i+1, err)
		}
		if !b.IsLegal(m) {
			return nil, fmt.Errorf("%w: match %s move %d %s", model.ErrIllegalMove, rec.ID, i+1, n)
		}
		mover := b.CurrentPlayer()
		b.Push(m)
		rows = append(rows, MoveRow{
			MatchID:    string(rec.ID),
			Seats:      rec.Seats,
			Ply:        int32(i),
			Color:      mover.String(),
			Piece:      m.Piece.String(),
			Rotation:   m.Rotation.String(),
			Contact:    m.Contact.String(),
			To:         m.To.String(),
			Notation:   n,
			ScoreAfter: int32(b.Score(mover)),
		})
	}
	return rows, nil
}

// WriteMatches writes every record's moves to outPath. The file is written
// next to outPath first and renamed into place.
func WriteMatches(outPath string, records []*model.MatchRecord) error {
	var rows []MoveRow
	for _, rec := range records {
		r, err := Rows(rec)
		if err != nil {
			return err
		}
		rows = append(rows, r...)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadMoves reads every row of an archive written by WriteMatches
func ReadMoves(path string) ([]MoveRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}
	if schema, _ := pf.Lookup("schema"); schema != Schema {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}

	reader := parquet.NewGenericReader[MoveRow](pf)
	defer reader.Close()

	rows := make([]MoveRow, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return rows[:read], nil
}

// Archived is a match rebuilt from archive rows
type Archived struct {
	ID    model.MatchID
	Seats []string
	Moves []string
}

// Rebuild groups rows by match, in order of first appearance, with each
// match's moves in ply order
func Rebuild(rows []MoveRow) []Archived {
	var out []Archived
	byID := make(map[string]int)
	plies := make(map[string][]MoveRow)
	for _, row := range rows {
		if _, ok := byID[row.MatchID]; !ok {
			byID[row.MatchID] = len(out)
			out = append(out, Archived{ID: model.MatchID(row.MatchID), Seats: row.Seats})
		}
		plies[row.MatchID] = append(plies[row.MatchID], row)
	}

	for i := range out {
		moves := plies[string(out[i].ID)]
		ordered := make([]string, len(moves))
		for _, row := range moves {
			if int(row.Ply) < len(ordered) {
				ordered[row.Ply] = row.Notation
			}
		}
		out[i].Moves = ordered
	}
	return out
}

// ReadMatches reads an archive and rebuilds its matches
func ReadMatches(path string) ([]Archived, error) {
	rows, err := ReadMoves(path)
	if err != nil {
		return nil, err
	}
	return Rebuild(rows), nil
}
