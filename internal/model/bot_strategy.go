package model

// Bot strategy constants
const (
	BotStrategyRandom        = "random"
	BotStrategyMostCorners   = "most-corners"
	BotStrategyLeastCorners  = "least-corners"
	BotStrategyLargestPiece  = "largest-piece"
	BotStrategySmallestPiece = "smallest-piece"
	BotStrategyMaxMoveDiff   = "max-move-diff"
	BotStrategyMinMoveDiff   = "min-move-diff"
	BotStrategyWallCrawl     = "wall-crawl"
	BotStrategyTurtle        = "turtle"
	BotStrategySimpleSearch  = "simple-search"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyMostCorners:
		return "MostOpenCorners"
	case BotStrategyLeastCorners:
		return "LeastOpenCorners"
	case BotStrategyLargestPiece:
		return "LargestPiece"
	case BotStrategySmallestPiece:
		return "SmallestPiece"
	case BotStrategyMaxMoveDiff:
		return "MaxMoveDiff"
	case BotStrategyMinMoveDiff:
		return "MinMoveDiff"
	case BotStrategyWallCrawl:
		return "WallCrawler"
	case BotStrategyTurtle:
		return "Turtle"
	case BotStrategySimpleSearch:
		return "SimpleSearch"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{
		BotStrategyRandom,
		BotStrategyMostCorners,
		BotStrategyLeastCorners,
		BotStrategyLargestPiece,
		BotStrategySmallestPiece,
		BotStrategyMaxMoveDiff,
		BotStrategyMinMoveDiff,
		BotStrategyWallCrawl,
		BotStrategyTurtle,
		BotStrategySimpleSearch,
	}
}

// IsValidBotStrategy reports whether name is a known strategy
func IsValidBotStrategy(name string) bool {
	for _, s := range ValidBotStrategies() {
		if s == name {
			return true
		}
	}
	return false
}
