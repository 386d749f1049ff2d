package world

import "github.com/san-kum/verlet/internal/geom"

// StepSummary is handed to the tracer after each fixed step.
type StepSummary struct {
	Step        uint64
	Bodies      int
	Constraints int
	Collisions  int
}

// Tracer receives structured instrumentation at well-defined points. All
// callbacks run synchronously on the stepping goroutine and must not mutate
// physics state. A nil tracer disables tracing; there is no global debug
// flag.
type Tracer interface {
	StepDone(s StepSummary)
	Collision(a, b *Body, normal geom.Vec2, overlap float64)
	ConstraintCorrection(c *Constraint, correction geom.Vec2)
}

// CollisionFunc is the gameplay-facing collision hook, fired synchronously
// during resolution with the contact normal (pointing from a to b) and the
// overlap magnitude. It must not mutate physics state re-entrantly.
type CollisionFunc func(a, b *Body, normal geom.Vec2, overlap float64)
