package world

import (
	"fmt"
	"math"

	"github.com/san-kum/verlet/internal/geom"
)

const (
	// Minimum constraint distance: shorter separations are treated as this
	// length to avoid division by zero.
	minConstraintDist = 1e-6

	// Single-iteration corrections are clamped to half the current length;
	// larger violations converge over subsequent iterations instead of
	// injecting energy in one shot.
	maxDifference = 0.5
)

// ConstraintConfig describes a distance constraint. B is required; A nil
// anchors the constraint at the fixed world point Anchor. A target Length of
// zero pins the attachment points together: the solver captures the distance
// that existed at creation time and treats the constraint as rigid, since a
// true zero length is numerically degenerate.
type ConstraintConfig struct {
	A, B    *Body
	Anchor  geom.Vec2
	OffsetA geom.Vec2
	OffsetB geom.Vec2

	Length    float64
	Stiffness float64 // [0,1]; >=1 or Length==0 means rigid
	Damping   float64 // [0,1]
}

// Constraint maintains a target distance between two attachment points.
// Constraints never own their bodies; both sides must be registered with the
// same World, and removing a body does not remove constraints referencing it
// (solving such a constraint is a caller contract violation, see
// ErrDanglingBody).
type Constraint struct {
	a, b    *Body
	anchor  geom.Vec2
	offsetA geom.Vec2
	offsetB geom.Vec2

	length    float64
	stiffness float64
	damping   float64
	rigid     bool
}

// NewConstraint validates cfg and captures the effective rest length.
func NewConstraint(cfg ConstraintConfig) (*Constraint, error) {
	if cfg.B == nil {
		return nil, ErrNilBody
	}
	if cfg.Stiffness < 0 {
		return nil, fmt.Errorf("%w: stiffness must be >= 0, got %g", ErrInvalidConfig, cfg.Stiffness)
	}
	if cfg.Damping < 0 || cfg.Damping > 1 {
		return nil, fmt.Errorf("%w: damping must be in [0,1], got %g", ErrInvalidConfig, cfg.Damping)
	}

	c := &Constraint{
		a:         cfg.A,
		b:         cfg.B,
		anchor:    cfg.Anchor,
		offsetA:   cfg.OffsetA,
		offsetB:   cfg.OffsetB,
		length:    cfg.Length,
		stiffness: cfg.Stiffness,
		damping:   cfg.Damping,
		rigid:     cfg.Stiffness >= 1 || cfg.Length == 0,
	}
	if c.length == 0 {
		// Pin joint: hold whatever distance exists now.
		c.length = c.pointB().Distance(c.pointA())
	}
	return c, nil
}

func (c *Constraint) BodyA() *Body { return c.a }
func (c *Constraint) BodyB() *Body { return c.b }

// Anchor returns the fixed world attachment, meaningful when BodyA is nil.
func (c *Constraint) Anchor() geom.Vec2 { return c.anchor }

// Length returns the effective rest length (creation-time distance for pins).
func (c *Constraint) Length() float64 { return c.length }

// pointA returns the world-space attachment on the A side (fixed anchor when
// A is nil).
func (c *Constraint) pointA() geom.Vec2 {
	if c.a == nil {
		return c.anchor
	}
	return c.a.Pos.Add(c.offsetA)
}

func (c *Constraint) pointB() geom.Vec2 {
	return c.b.Pos.Add(c.offsetB)
}

// anchored reports whether at least one side is fixed: such constraints are
// solved in the first pass so rigid anchors pull free chains into shape
// before free-free corrections run.
func (c *Constraint) anchored() bool {
	if c.a == nil || c.a.Static {
		return true
	}
	return c.b.Static
}

func (c *Constraint) invMassA() float64 {
	if c.a == nil {
		return 0
	}
	return c.a.invMass
}

// solve applies one position correction. timeScale is the step size
// normalized to the nominal 60 Hz step: rigid constraints scale linearly
// with it, soft constraints quadratically.
func (c *Constraint) solve(timeScale float64, tr Tracer) {
	invA := c.invMassA()
	invB := c.b.invMass
	total := invA + invB
	if total == 0 {
		return
	}

	pa := c.pointA()
	pb := c.pointB()
	delta := pb.Sub(pa)
	dist := delta.Length()
	if dist < minConstraintDist {
		dist = minConstraintDist
	}

	difference := (dist - c.length) / dist
	if difference > maxDifference {
		difference = maxDifference
	} else if difference < -maxDifference {
		difference = -maxDifference
	}

	k := c.stiffness * timeScale
	if !c.rigid {
		k = c.stiffness * timeScale * timeScale
	}
	correction := delta.Scale(difference * k)

	shareA := invA / total
	shareB := invB / total

	if c.a != nil && c.a.movable() && shareA > 0 {
		c.a.Pos = c.a.Pos.Add(correction.Scale(shareA))
	}
	if c.b.movable() && shareB > 0 {
		c.b.Pos = c.b.Pos.Sub(correction.Scale(shareB))
	}

	if c.damping > 0 {
		c.dampVelocity(delta, timeScale, shareA, shareB)
	}

	if tr != nil {
		tr.ConstraintCorrection(c, correction)
	}
}

// dampVelocity removes a fraction of the relative velocity along the
// constraint axis by pulling each side's previous position toward the
// relative-velocity-free state. A degenerate axis normalizes to zero, which
// zeroes vn and makes the call a no-op.
func (c *Constraint) dampVelocity(delta geom.Vec2, timeScale, shareA, shareB float64) {
	n := delta.Normalize()

	var velA geom.Vec2
	if c.a != nil {
		velA = c.a.Velocity()
	}
	velB := c.b.Velocity()
	vn := velB.Sub(velA).Dot(n)
	if vn == 0 || math.IsNaN(vn) {
		return
	}

	damp := c.damping * timeScale
	if c.b.movable() && shareB > 0 {
		c.b.Prev = c.b.Prev.Add(n.Scale(vn * damp * shareB))
	}
	if c.a != nil && c.a.movable() && shareA > 0 {
		c.a.Prev = c.a.Prev.Sub(n.Scale(vn * damp * shareA))
	}
}
