package world

import "errors"

// Domain errors for world construction and registration.
var (
	// ErrInvalidConfig indicates a body or world configuration value that is
	// out of range (non-positive mass or radius, bad timestep).
	ErrInvalidConfig = errors.New("world: invalid configuration")

	// ErrDanglingBody indicates a constraint referencing a body that was
	// never registered, or was removed, from the world it is solved in.
	// The solver does not attempt recovery; registering such a constraint
	// is a caller contract violation.
	ErrDanglingBody = errors.New("world: constraint references unregistered body")

	// ErrNilBody indicates a constraint constructed without its required
	// second body.
	ErrNilBody = errors.New("world: constraint requires a body")
)
