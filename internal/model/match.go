package model

import "time"

// MatchID uniquely identifies a completed bot match
type MatchID string

// MatchRecord is the durable result of one bot-versus-bot game
type MatchRecord struct {
	ID MatchID

	// Seats holds the strategy name playing each color, in turn order
	Seats []string

	// Moves is the full move history in notation
	Moves []string

	Scores  []int
	Winners []Color
	Plies   int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the match took
func (m *MatchRecord) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// IsDraw returns true when more than one seat shares the top score
func (m *MatchRecord) IsDraw() bool {
	return len(m.Winners) > 1
}
