package world

import (
	"math"

	"github.com/san-kum/verlet/internal/geom"
)

const minCollisionDist = 1e-6

// Tuning groups the collision and settling heuristics. These are shaping
// constants chosen for visually stable stacking, not physical law; tune them
// per scene rather than treating the defaults as authoritative.
type Tuning struct {
	// FastMoverSpeed is the per-step relative speed above which the
	// detection radius is expanded, so fast movers are not missed between
	// discrete steps. FastMoverExpand is the fraction of the relative
	// speed added to the radius. The expansion only triggers resolution;
	// positional correction always uses the true radii sum.
	FastMoverSpeed  float64
	FastMoverExpand float64

	// MinBounceSpeed is the closing speed below which only the positional
	// overlap is fixed, without an impulse, preventing micro-jitter from
	// accumulating energy.
	MinBounceSpeed float64

	// StackNormalY classifies a contact as vertical stacking when the
	// normal's |Y| exceeds it; StackNormalX likewise for lateral contacts.
	// Corrections on such contacts are damped by the matching factor to
	// keep stacks from floating apart or sliding.
	StackNormalY   float64
	StackNormalX   float64
	VerticalDamp   float64
	HorizontalDamp float64

	// StickySpeed and StickyFactor control the velocity-matching applied
	// to slow near-vertical contacts so stacks settle instead of
	// oscillating indefinitely.
	StickySpeed  float64
	StickyFactor float64

	// RestSpeed snaps a body to rest; speeds inside the band up to
	// RestBand are partially damped by RestBandDamp so bodies do not
	// oscillate between moving and resting classifications.
	RestSpeed    float64
	RestBand     float64
	RestBandDamp float64

	// BoundsJitterSpeed suppresses wall-reflection bounces below it: the
	// body is hard-stopped at the wall instead.
	BoundsJitterSpeed float64
}

func DefaultTuning() Tuning {
	return Tuning{
		FastMoverSpeed:    8.0,
		FastMoverExpand:   0.5,
		MinBounceSpeed:    0.05,
		StackNormalY:      0.85,
		StackNormalX:      0.85,
		VerticalDamp:      0.7,
		HorizontalDamp:    0.8,
		StickySpeed:       0.6,
		StickyFactor:      0.9,
		RestSpeed:         0.02,
		RestBand:          0.08,
		RestBandDamp:      0.5,
		BoundsJitterSpeed: 0.5,
	}
}

// rebuildComponents recomputes connected components of the constraint graph
// with union-find. It runs only when the constraint set has mutated;
// connectivity queries during collision culling are then O(1) map lookups.
func (w *World) rebuildComponents() {
	parent := make(map[*Body]*Body, len(w.bodies))

	var find func(b *Body) *Body
	find = func(b *Body) *Body {
		root, ok := parent[b]
		if !ok {
			parent[b] = b
			return b
		}
		if root == b {
			return b
		}
		top := find(root)
		parent[b] = top
		return top
	}

	for _, c := range w.constraints {
		if c.a == nil {
			continue
		}
		ra, rb := find(c.a), find(c.b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	w.components = make(map[*Body]*Body, len(parent))
	for b := range parent {
		w.components[b] = find(b)
	}
	w.componentsDirty = false
}

// connected reports whether a and b are linked, directly or transitively,
// through the constraint graph. Connected pairs skip collision resolution:
// their constraints already govern relative motion, and a competing
// correction would add energy.
func (w *World) connected(a, b *Body) bool {
	if w.componentsDirty {
		w.rebuildComponents()
	}
	ra, ok := w.components[a]
	if !ok {
		return false
	}
	rb, ok := w.components[b]
	return ok && ra == rb
}

// resolvePair runs the narrow phase and response for one candidate pair.
// Returns true when a contact was resolved.
func (w *World) resolvePair(a, b *Body) bool {
	if !a.Enabled || !b.Enabled || a.Dragging || b.Dragging {
		return false
	}
	total := a.invMass + b.invMass
	if total == 0 {
		return false
	}
	if w.connected(a, b) {
		return false
	}

	minDist := a.Radius + b.Radius

	relVel := b.Velocity().Sub(a.Velocity())
	relSpeed := relVel.Length()

	// Continuous-collision heuristic: widen detection (never correction)
	// for fast movers.
	detectDist := minDist
	if relSpeed > w.tuning.FastMoverSpeed {
		detectDist += relSpeed * w.tuning.FastMoverExpand
	}
	if a.Pos.DistanceSq(b.Pos) >= detectDist*detectDist {
		return false
	}

	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()

	// Coincident centers have no usable normal; separate along +X.
	var n geom.Vec2
	if dist < minCollisionDist {
		n = geom.V(1, 0)
		dist = 0
	} else {
		n = delta.Normalize()
	}

	overlap := minDist - dist
	if overlap > 0 {
		w.separate(a, b, n, overlap, total, relSpeed)
	}

	w.respond(a, b, n, total)

	clampedOverlap := math.Max(overlap, 0)
	if w.onCollision != nil {
		w.onCollision(a, b, n, clampedOverlap)
	}
	if w.tracer != nil {
		w.tracer.Collision(a, b, n, clampedOverlap)
	}
	return true
}

// separate distributes the positional correction by inverse-mass ratio. The
// correction magnitude always uses the true overlap; what the heuristics damp
// is the velocity the correction would otherwise inject (a Verlet position
// change implies a velocity change). On slow near-vertical contacts that
// injected velocity makes stacks float apart, on near-horizontal ones it
// makes them slide, so a fraction of the correction is mirrored into the
// previous position as well.
func (w *World) separate(a, b *Body, n geom.Vec2, overlap, total, relSpeed float64) {
	damp := 0.0
	if relSpeed < w.tuning.StickySpeed {
		if math.Abs(n.Y) > w.tuning.StackNormalY {
			damp = w.tuning.VerticalDamp
		} else if math.Abs(n.X) > w.tuning.StackNormalX {
			damp = w.tuning.HorizontalDamp
		}
	}

	correction := n.Scale(overlap / total)
	if a.movable() {
		move := correction.Scale(a.invMass)
		a.Pos = a.Pos.Sub(move)
		if damp > 0 {
			a.Prev = a.Prev.Sub(move.Scale(damp))
		}
	}
	if b.movable() {
		move := correction.Scale(b.invMass)
		b.Pos = b.Pos.Add(move)
		if damp > 0 {
			b.Prev = b.Prev.Add(move.Scale(damp))
		}
	}
}

// respond recomputes the relative velocity from the corrected Verlet state
// and applies the velocity response: nothing for separating or barely
// closing pairs, sticky velocity matching for settling stacks, otherwise a
// restitution impulse rewritten into the previous positions.
func (w *World) respond(a, b *Body, n geom.Vec2, total float64) {
	velA := a.Velocity()
	velB := b.Velocity()
	vn := velB.Sub(velA).Dot(n)

	if vn >= -w.tuning.MinBounceSpeed {
		return
	}

	if math.Abs(n.Y) > w.tuning.StackNormalY && -vn < w.tuning.StickySpeed {
		// Settling stack: match velocities along the normal instead of
		// bouncing.
		match := vn * w.tuning.StickyFactor
		if a.movable() {
			a.Prev = a.Prev.Sub(n.Scale(match * (a.invMass / total)))
		}
		if b.movable() {
			b.Prev = b.Prev.Add(n.Scale(match * (b.invMass / total)))
		}
		return
	}

	e := math.Min(a.EffectiveRestitution(), b.EffectiveRestitution())
	j := -(1 + e) * vn / total

	impulse := n.Scale(j)
	if a.movable() {
		newVel := velA.Sub(impulse.Scale(a.invMass))
		a.Prev = a.Pos.Sub(newVel)
	}
	if b.movable() {
		newVel := velB.Add(impulse.Scale(b.invMass))
		b.Prev = b.Pos.Sub(newVel)
	}
}

// resolveCollisions runs broad and narrow phase. Small populations use a
// direct O(n²) scan; above gridThreshold the spatial grid culls candidates.
func (w *World) resolveCollisions() int {
	resolved := 0
	if len(w.bodies) > gridThreshold {
		w.grid.clear()
		for _, b := range w.bodies {
			if b.Enabled {
				w.grid.insert(b)
			}
		}
		w.grid.pairs(func(a, b *Body) {
			if w.resolvePair(a, b) {
				resolved++
			}
		})
		return resolved
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.Static && b.Static {
				continue
			}
			if w.resolvePair(a, b) {
				resolved++
			}
		}
	}
	return resolved
}
