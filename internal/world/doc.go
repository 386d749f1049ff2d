// Package world implements a 2D rigid-particle physics engine based on
// position Verlet integration.
//
// A [World] owns a set of circular [Body] values and distance [Constraint]
// links between them. The host drives simulation time by calling
// [World.Advance] with wall-clock elapsed time; the world accumulates it and
// runs zero or more fixed-size steps. Each step applies gravity, integrates,
// solves constraints, resolves circle-circle collisions and finally contains
// bodies inside their bounds, in that order.
//
// Velocity is implicit: it is the difference between a body's current and
// previous position, expressed in units per step. Static bodies (infinite
// mass) participate in collisions and constraints as immovable partners but
// are never integrated.
//
// The engine performs no scheduling, I/O or rendering and must be driven
// from a single goroutine. Instrumentation is injected through [Tracer];
// gameplay observers hook collisions through [World.SetCollisionHandler].
package world
