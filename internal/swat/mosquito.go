package swat

import "math"

// State is where a mosquito is in its fly/land/bite cycle.
type State int

const (
	Flying State = iota
	Landed
	Bitten
	Smashed
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	case Bitten:
		return "bitten"
	case Smashed:
		return "smashed"
	}
	return "unknown"
}

// Mosquito is one entity on the playfield. X, Y is the top-left corner of a
// Size x Size box.
type Mosquito struct {
	ID       int
	X, Y     float64
	Size     float64
	State    State
	Hittable bool

	fly       TimerID
	bite      TimerID
	bitePause TimerID
	killPause TimerID
}

// Center returns the middle of the mosquito's box.
func (m Mosquito) Center() (float64, float64) {
	return m.X + m.Size/2, m.Y + m.Size/2
}

// Contains reports whether (x, y) lands strictly inside the hit circle.
func (m Mosquito) Contains(x, y float64) bool {
	cx, cy := m.Center()
	return math.Hypot(x-cx, y-cy) < m.Size/2
}
