package model

// Color identifies a seat and the tiles it owns
type Color int

const (
	NoColor Color = iota - 1
	Blue
	Yellow
	Red
	Green
)

// MaxPlayers is the largest number of seats in a game
const MaxPlayers = 4

var (
	colorNames = [MaxPlayers]string{"blue", "yellow", "red", "green"}
	colorCodes = [MaxPlayers]byte{'B', 'Y', 'R', 'G'}
)

// Valid reports whether c is one of the four seat colors
func (c Color) Valid() bool {
	return c >= Blue && c <= Green
}

// String returns the lowercase color name, or "none"
func (c Color) String() string {
	if !c.Valid() {
		return "none"
	}
	return colorNames[c]
}

// Code returns the single-letter code used in board diagrams
func (c Color) Code() byte {
	if !c.Valid() {
		return '.'
	}
	return colorCodes[c]
}

// ParseColor converts a color name to a Color
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return NoColor, false
}
