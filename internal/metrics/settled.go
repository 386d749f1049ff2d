package metrics

import "github.com/san-kum/verlet/internal/world"

// Settled reports how many dynamic bodies were at rest (per-step speed below
// the threshold) at the last observed step.
type Settled struct {
	name      string
	threshold float64
	count     int
}

func NewSettled(threshold float64) *Settled {
	return &Settled{name: "settled_bodies", threshold: threshold}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(w *world.World, t float64) {
	count := 0
	for _, b := range w.Bodies() {
		if b.Static || !b.Enabled {
			continue
		}
		if b.Velocity().Length() < s.threshold {
			count++
		}
	}
	s.count = count
}

func (s *Settled) Value() float64 { return float64(s.count) }

func (s *Settled) Reset() { s.count = 0 }
