package metrics

import "github.com/san-kum/verlet/internal/world"

// KineticEnergy averages the total kinetic energy of the dynamic bodies over
// the observed steps. Velocities are converted from per-step units to
// units/s using the world timestep.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *world.World, t float64) {
	dt := w.TimeStep()
	sum := 0.0
	for _, b := range w.Bodies() {
		if b.Static || !b.Enabled {
			continue
		}
		v := b.Velocity().Scale(1.0 / dt)
		sum += 0.5 * b.Mass * v.LengthSq()
	}
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
