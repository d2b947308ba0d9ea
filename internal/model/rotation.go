package model

// Rotation is one of the eight orientation slots of a piece: four quarter
// turns of the base shape followed by the same four of its mirror image
type Rotation int

const (
	North Rotation = iota
	East
	South
	West
	NorthFlipped
	EastFlipped
	SouthFlipped
	WestFlipped
)

// NumRotations is the number of orientation slots per piece
const NumRotations = 8

var rotationNames = [NumRotations]string{"n", "e", "s", "w", "nf", "ef", "sf", "wf"}

// Valid reports whether r is a real rotation slot
func (r Rotation) Valid() bool {
	return r >= 0 && r < NumRotations
}

// String returns the rotation suffix used in move notation
func (r Rotation) String() string {
	if !r.Valid() {
		return "?"
	}
	return rotationNames[r]
}

// ParseRotation converts a suffix like "ef" to a Rotation
func ParseRotation(name string) (Rotation, bool) {
	for i, n := range rotationNames {
		if n == name {
			return Rotation(i), true
		}
	}
	return -1, false
}
