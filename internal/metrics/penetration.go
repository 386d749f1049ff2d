package metrics

import "github.com/san-kum/verlet/internal/world"

// MaxPenetration tracks the worst residual circle overlap seen after any
// observed step. A solver keeping its contract leaves this near zero.
type MaxPenetration struct {
	name string
	max  float64
}

func NewMaxPenetration() *MaxPenetration {
	return &MaxPenetration{name: "max_penetration"}
}

func (m *MaxPenetration) Name() string { return m.name }

func (m *MaxPenetration) Observe(w *world.World, t float64) {
	bodies := w.Bodies()
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if (a.Static && b.Static) || !a.Enabled || !b.Enabled {
				continue
			}
			overlap := a.Radius + b.Radius - a.Pos.Distance(b.Pos)
			if overlap > m.max {
				m.max = overlap
			}
		}
	}
}

func (m *MaxPenetration) Value() float64 { return m.max }

func (m *MaxPenetration) Reset() { m.max = 0 }
