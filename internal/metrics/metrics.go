package metrics

import "github.com/san-kum/verlet/internal/world"

// Metric observes the world once per step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

// Collect runs every metric's final value into a map for persistence.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
