package world

import (
	"fmt"

	"github.com/san-kum/verlet/internal/geom"
)

// Fallback physics defaults used when a body has no container at all.
const (
	defaultGravity     = 0.0
	defaultFriction    = 0.99
	defaultRestitution = 0.8
)

// BodyConfig describes a body at construction time. Velocity is expressed in
// units per step (the Verlet previous-position offset).
type BodyConfig struct {
	Pos      geom.Vec2
	Velocity geom.Vec2
	Mass     float64 // ignored for static bodies
	Radius   float64
	Static   bool
	Enabled  *bool // nil means enabled

	// Nullable overrides; nil inherits from the container chain.
	Gravity     *float64
	Friction    *float64
	Restitution *float64

	// Bounds constrains this body to its own rectangle instead of the
	// world bounds.
	Bounds *geom.Rect
}

// Body is one simulated disc. Position and previous position together encode
// the Verlet state; mutating either outside ApplyForce/SetVelocity while the
// world is stepping is not supported.
type Body struct {
	Pos  geom.Vec2
	Prev geom.Vec2
	Acc  geom.Vec2

	Mass    float64
	invMass float64
	Radius  float64

	Static  bool
	Enabled bool

	// Dragging marks a body under external manipulation (e.g. pointer
	// input). Collision resolution skips dragged bodies.
	Dragging bool

	Gravity     *float64
	Friction    *float64
	Restitution *float64

	Bounds *geom.Rect

	container Container
	propCache [numProps]Container

	// Set during integration when a non-zero acceleration acted this step.
	// Such bodies are exempt from rest snapping.
	forced bool

	// Assigned at registration; used for stable broad-phase pair keys.
	id uint64
}

// NewBody validates cfg and returns a body at rest (or with the configured
// initial velocity). Non-positive radius, or non-positive mass on a dynamic
// body, is rejected rather than clamped: it indicates caller error, not
// numerical degeneracy.
func NewBody(cfg BodyConfig) (*Body, error) {
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, cfg.Radius)
	}
	if !cfg.Static && cfg.Mass <= 0 {
		return nil, fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidConfig, cfg.Mass)
	}

	b := &Body{
		Pos:         cfg.Pos,
		Prev:        cfg.Pos.Sub(cfg.Velocity),
		Radius:      cfg.Radius,
		Static:      cfg.Static,
		Enabled:     true,
		Gravity:     cfg.Gravity,
		Friction:    cfg.Friction,
		Restitution: cfg.Restitution,
		Bounds:      cfg.Bounds,
	}
	if cfg.Enabled != nil {
		b.Enabled = *cfg.Enabled
	}
	if cfg.Static {
		b.Mass = 0
		b.invMass = 0
		b.Prev = cfg.Pos
	} else {
		b.Mass = cfg.Mass
		b.invMass = 1.0 / cfg.Mass
	}
	return b, nil
}

// MustBody is a construction helper for code paths (presets, tests) where
// the configuration is known valid.
func MustBody(cfg BodyConfig) *Body {
	b, err := NewBody(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// Position returns the body's world-space position.
func (b *Body) Position() geom.Vec2 { return b.Pos }

// LocalPosition is the position in the body's container frame. Containers
// carry defaults but no spatial transform, so local and world coordinates
// coincide.
func (b *Body) LocalPosition() geom.Vec2 { return b.Pos }

// Velocity returns the implicit per-step velocity.
func (b *Body) Velocity() geom.Vec2 { return b.Pos.Sub(b.Prev) }

// SetVelocity rewrites the previous position so the implicit velocity equals
// (vx, vy). No-op on static bodies.
func (b *Body) SetVelocity(vx, vy float64) {
	if b.Static {
		return
	}
	b.Prev = b.Pos.Sub(geom.V(vx, vy))
}

// ApplyForce accumulates an acceleration for the current step. Forces are
// additive and cleared by integration; this is the only supported external
// mutation between steps. No-op on static bodies.
func (b *Body) ApplyForce(fx, fy float64) {
	if b.Static {
		return
	}
	b.Acc = b.Acc.Add(geom.V(fx, fy))
}

func (b *Body) InvMass() float64 { return b.invMass }

// movable reports whether the body takes part in integration and positional
// correction this step.
func (b *Body) movable() bool {
	return b.Enabled && !b.Static
}
