package redis

import (
	"fmt"

	"github.com/nhamil/tilewe-go/internal/model"
)

// Key prefix for all tilewe data
const keyPrefix = "tilewe"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// matchKey returns the Redis key for a MatchRecord
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// gamesIndexKey returns the sorted set of game ids scored by creation time
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// matchesIndexKey returns the sorted set of match ids scored by start time
func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}
