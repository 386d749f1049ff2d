package world

import (
	"fmt"
	"time"

	"github.com/san-kum/verlet/internal/geom"
)

// baseStep is the nominal step the solver constants are tuned against.
const baseStep = 1.0 / 60.0

// Config holds the world's authoritative physics defaults and stepping
// parameters. Gravity acts downward (+Y) in units/s²; Friction is the
// per-step velocity multiplier (1 = frictionless).
type Config struct {
	Gravity     float64
	Friction    float64
	Restitution float64

	TimeStep   float64 // fixed step size in seconds
	Iterations int     // constraint solver iterations per step
	Bounds     *geom.Rect
	CellSize   float64 // broad-phase grid cell size

	Tuning Tuning
}

// DefaultConfig matches the engine's root inheritance defaults: no gravity,
// light friction, bouncy restitution, 60 Hz stepping, two solver iterations.
func DefaultConfig() Config {
	return Config{
		Gravity:     defaultGravity,
		Friction:    defaultFriction,
		Restitution: defaultRestitution,
		TimeStep:    baseStep,
		Iterations:  2,
		CellSize:    defaultCellSize,
		Tuning:      DefaultTuning(),
	}
}

// StepEvents summarizes what one Advance call executed.
type StepEvents struct {
	Steps      int
	Collisions int
}

// World owns the entities, constraints and simulation time. It is
// single-threaded by contract: all mutation and stepping must come from one
// goroutine, and a step is an atomic advance — partial execution is never
// observable.
type World struct {
	cfg    Config
	tuning Tuning

	bodies      []*Body
	constraints []*Constraint
	grid        *spatialIndex

	components      map[*Body]*Body
	componentsDirty bool

	accumulator float64
	running     bool
	stepCount   uint64
	nextBodyID  uint64

	tracer      Tracer
	onCollision CollisionFunc
}

// New validates cfg and returns a stopped world.
func New(cfg Config) (*World, error) {
	if cfg.TimeStep <= 0 {
		return nil, fmt.Errorf("%w: timestep must be positive, got %g", ErrInvalidConfig, cfg.TimeStep)
	}
	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, cfg.Iterations)
	}
	if cfg.Friction < 0 || cfg.Friction > 1 {
		return nil, fmt.Errorf("%w: friction must be in [0,1], got %g", ErrInvalidConfig, cfg.Friction)
	}
	if cfg.Restitution < 0 || cfg.Restitution > 1 {
		return nil, fmt.Errorf("%w: restitution must be in [0,1], got %g", ErrInvalidConfig, cfg.Restitution)
	}
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}
	return &World{
		cfg:    cfg,
		grid:   newSpatialIndex(cfg.CellSize),
		tuning: cfg.Tuning,
	}, nil
}

// Container: the world is always a valid chain root because every default is
// concrete.
func (w *World) Parent() Container            { return nil }
func (w *World) GravityDefault() *float64     { return &w.cfg.Gravity }
func (w *World) FrictionDefault() *float64    { return &w.cfg.Friction }
func (w *World) RestitutionDefault() *float64 { return &w.cfg.Restitution }

func (w *World) Bodies() []*Body             { return w.bodies }
func (w *World) Constraints() []*Constraint  { return w.constraints }
func (w *World) Bounds() *geom.Rect          { return w.cfg.Bounds }
func (w *World) TimeStep() float64           { return w.cfg.TimeStep }
func (w *World) StepCount() uint64           { return w.stepCount }
func (w *World) SetTracer(t Tracer)          { w.tracer = t }
func (w *World) SetCollisionHandler(f CollisionFunc) { w.onCollision = f }

// AddBody registers b. Bodies with no explicit container inherit the world's
// defaults.
func (w *World) AddBody(b *Body) {
	w.nextBodyID++
	b.id = w.nextBodyID
	if b.container == nil {
		b.SetContainer(w)
	}
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters b. Constraints still referencing it are not
// removed; solving them afterwards is a caller contract violation
// (ErrDanglingBody).
func (w *World) RemoveBody(b *Body) {
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.componentsDirty = true
			return
		}
	}
}

func (w *World) AddConstraint(c *Constraint) {
	w.constraints = append(w.constraints, c)
	w.componentsDirty = true
}

func (w *World) RemoveConstraint(c *Constraint) {
	for i, x := range w.constraints {
		if x == c {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			w.componentsDirty = true
			return
		}
	}
}

// Start begins accepting time from Advance. Idempotent.
func (w *World) Start() { w.running = true }

// Stop halts future stepping, leaving all entity state as-is. Idempotent.
func (w *World) Stop() { w.running = false }

func (w *World) Running() bool { return w.running }

// Advance adds elapsed wall time to the accumulator and runs as many fixed
// steps as fit, guaranteeing deterministic step size independent of
// frame-rate jitter. It returns immediately when the world is stopped.
func (w *World) Advance(elapsed time.Duration) StepEvents {
	var ev StepEvents
	if !w.running || elapsed <= 0 {
		return ev
	}
	w.accumulator += elapsed.Seconds()
	for w.accumulator >= w.cfg.TimeStep {
		ev.Collisions += w.Step()
		ev.Steps++
		w.accumulator -= w.cfg.TimeStep
	}
	return ev
}

// Step runs exactly one fixed step: gravity → integration → constraints →
// collisions → bounds containment. It returns the number of resolved
// contacts. Most drivers should use Advance; Step is the deterministic
// building block.
func (w *World) Step() int {
	dt := w.cfg.TimeStep
	timeScale := dt / baseStep

	for _, b := range w.bodies {
		if b.movable() {
			w.integrate(b, dt)
		}
	}

	for i := 0; i < w.cfg.Iterations; i++ {
		// Anchored constraints first: rigid anchors pull free chains
		// into shape before free-free interactions are resolved.
		for _, c := range w.constraints {
			if c.anchored() {
				c.solve(timeScale, w.tracer)
			}
		}
		for _, c := range w.constraints {
			if !c.anchored() {
				c.solve(timeScale, w.tracer)
			}
		}
	}

	collisions := w.resolveCollisions()

	for _, b := range w.bodies {
		if !b.movable() {
			continue
		}
		w.contain(b)
		w.settle(b)
	}

	w.stepCount++
	if w.tracer != nil {
		w.tracer.StepDone(StepSummary{
			Step:        w.stepCount,
			Bodies:      len(w.bodies),
			Constraints: len(w.constraints),
			Collisions:  collisions,
		})
	}
	return collisions
}

// integrate advances one body with explicit position Verlet: gravity joins
// the accumulated acceleration, friction scales the implicit velocity, and
// the acceleration is cleared for the next step.
func (w *World) integrate(b *Body, dt float64) {
	b.Acc.Y += b.EffectiveGravity()
	b.forced = b.Acc.X != 0 || b.Acc.Y != 0

	vel := b.Pos.Sub(b.Prev).Scale(b.EffectiveFriction())
	next := b.Pos.Add(vel).Add(b.Acc.Scale(dt * dt))

	b.Prev = b.Pos
	b.Pos = next
	b.Acc = geom.Vec2{}
}

// contain pushes the body back inside its bounds (its own rectangle when
// set, the world bounds otherwise) and reflects the violating velocity
// component with restitution. Incoming speeds below the jitter threshold are
// hard-stopped instead of bounced.
func (w *World) contain(b *Body) {
	bounds := b.Bounds
	if bounds == nil {
		bounds = w.cfg.Bounds
	}
	if bounds == nil {
		return
	}
	if bounds.ContainsCircle(b.Pos, b.Radius) {
		return
	}

	vel := b.Velocity()
	e := b.EffectiveRestitution()
	jitter := w.tuning.BoundsJitterSpeed

	if b.Pos.X-b.Radius < bounds.Min.X {
		b.Pos.X = bounds.Min.X + b.Radius
		b.Prev.X = reflectPrev(b.Pos.X, vel.X, e, jitter)
	} else if b.Pos.X+b.Radius > bounds.Max.X {
		b.Pos.X = bounds.Max.X - b.Radius
		b.Prev.X = reflectPrev(b.Pos.X, vel.X, e, jitter)
	}

	if b.Pos.Y-b.Radius < bounds.Min.Y {
		b.Pos.Y = bounds.Min.Y + b.Radius
		b.Prev.Y = reflectPrev(b.Pos.Y, vel.Y, e, jitter)
	} else if b.Pos.Y+b.Radius > bounds.Max.Y {
		b.Pos.Y = bounds.Max.Y - b.Radius
		b.Prev.Y = reflectPrev(b.Pos.Y, vel.Y, e, jitter)
	}
}

// reflectPrev rewrites one axis of the previous position so the implied
// velocity is the restitution-scaled reflection of v, or zero when v is
// below the jitter threshold.
func reflectPrev(pos, v, e, jitter float64) float64 {
	if v > -jitter && v < jitter {
		return pos
	}
	return pos + v*e
}

// settle snaps near-resting bodies: below RestSpeed the previous position
// collapses onto the current one; inside the band above it the velocity is
// partially damped so bodies do not flip between moving and resting. Bodies
// under an active acceleration are exempt: snapping them every step would
// absorb a weak force entirely instead of letting it accumulate.
func (w *World) settle(b *Body) {
	if b.forced {
		return
	}
	vel := b.Pos.Sub(b.Prev)
	speed := vel.Length()
	switch {
	case speed < w.tuning.RestSpeed:
		b.Prev = b.Pos
	case speed < w.tuning.RestBand:
		b.Prev = b.Pos.Sub(vel.Scale(w.tuning.RestBandDamp))
	}
}
