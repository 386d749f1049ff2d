package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/verlet/internal/geom"
	"github.com/san-kum/verlet/internal/world"
)

const (
	DefaultTimeStep   = 1.0 / 60.0
	DefaultIterations = 2
	DefaultDuration   = 10.0
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
)

var ErrInvalidScene = errors.New("config: invalid scene")

// Scene is the YAML description of a world plus its initial contents. Bodies
// are named so constraints can reference them.
type Scene struct {
	Name        string  `yaml:"name"`
	Gravity     float64 `yaml:"gravity"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	TimeStep    float64 `yaml:"timestep"`
	Iterations  int     `yaml:"iterations"`
	Duration    float64 `yaml:"duration"`

	Bounds *BoundsSpec `yaml:"bounds,omitempty"`

	Bodies      []BodySpec       `yaml:"bodies"`
	Constraints []ConstraintSpec `yaml:"constraints,omitempty"`
}

type BoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type BodySpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
	Mass   float64 `yaml:"mass,omitempty"`
	Radius float64 `yaml:"radius"`
	Static bool    `yaml:"static,omitempty"`

	Gravity     *float64 `yaml:"gravity,omitempty"`
	Friction    *float64 `yaml:"friction,omitempty"`
	Restitution *float64 `yaml:"restitution,omitempty"`
}

// ConstraintSpec links two named bodies, or anchors B at a fixed point when A
// is empty. Length zero pins the pair at their scene distance.
type ConstraintSpec struct {
	A       string  `yaml:"a,omitempty"`
	B       string  `yaml:"b"`
	AnchorX float64 `yaml:"anchor_x,omitempty"`
	AnchorY float64 `yaml:"anchor_y,omitempty"`

	Length    float64 `yaml:"length"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping,omitempty"`
}

func DefaultScene() *Scene {
	return &Scene{
		Name:        "empty",
		Gravity:     0,
		Friction:    0.99,
		Restitution: 0.8,
		TimeStep:    DefaultTimeStep,
		Iterations:  DefaultIterations,
		Duration:    DefaultDuration,
		Bounds: &BoundsSpec{
			MaxX: DefaultWidth,
			MaxY: DefaultHeight,
		},
	}
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScene()
	s.Bodies = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks what the engine cannot: name references and schema-level
// ranges. Engine-level validation (masses, radii, world parameters) happens
// again in Build through the world constructors.
func (s *Scene) Validate() error {
	if s.TimeStep <= 0 {
		return fmt.Errorf("%w: timestep must be positive, got %g", ErrInvalidScene, s.TimeStep)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidScene, s.Duration)
	}

	names := make(map[string]bool, len(s.Bodies))
	for _, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body without name", ErrInvalidScene)
		}
		if names[b.Name] {
			return fmt.Errorf("%w: duplicate body name %q", ErrInvalidScene, b.Name)
		}
		names[b.Name] = true
	}

	for i, c := range s.Constraints {
		if c.B == "" {
			return fmt.Errorf("%w: constraint %d has no b body", ErrInvalidScene, i)
		}
		if !names[c.B] {
			return fmt.Errorf("%w: constraint %d references unknown body %q", ErrInvalidScene, i, c.B)
		}
		if c.A != "" && !names[c.A] {
			return fmt.Errorf("%w: constraint %d references unknown body %q", ErrInvalidScene, i, c.A)
		}
	}
	return nil
}

// Build instantiates the scene: a stopped world plus the name-to-body mapping
// for callers that need to address individual bodies afterwards.
func (s *Scene) Build() (*world.World, map[string]*world.Body, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	cfg := world.DefaultConfig()
	cfg.Gravity = s.Gravity
	cfg.Friction = s.Friction
	cfg.Restitution = s.Restitution
	cfg.TimeStep = s.TimeStep
	if s.Iterations > 0 {
		cfg.Iterations = s.Iterations
	}
	if s.Bounds != nil {
		r := geom.R(s.Bounds.MinX, s.Bounds.MinY, s.Bounds.MaxX, s.Bounds.MaxY)
		cfg.Bounds = &r
	}

	w, err := world.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	bodies := make(map[string]*world.Body, len(s.Bodies))
	for _, spec := range s.Bodies {
		b, err := world.NewBody(world.BodyConfig{
			Pos:         geom.V(spec.X, spec.Y),
			Velocity:    geom.V(spec.VX, spec.VY),
			Mass:        spec.Mass,
			Radius:      spec.Radius,
			Static:      spec.Static,
			Gravity:     spec.Gravity,
			Friction:    spec.Friction,
			Restitution: spec.Restitution,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q: %w", spec.Name, err)
		}
		w.AddBody(b)
		bodies[spec.Name] = b
	}

	for i, spec := range s.Constraints {
		cc := world.ConstraintConfig{
			B:         bodies[spec.B],
			Length:    spec.Length,
			Stiffness: spec.Stiffness,
			Damping:   spec.Damping,
		}
		if spec.A != "" {
			cc.A = bodies[spec.A]
		} else {
			cc.Anchor = geom.V(spec.AnchorX, spec.AnchorY)
		}
		c, err := world.NewConstraint(cc)
		if err != nil {
			return nil, nil, fmt.Errorf("config: constraint %d: %w", i, err)
		}
		w.AddConstraint(c)
	}

	return w, bodies, nil
}

// BodyNames returns the scene's body names in declaration order, the order
// frames are recorded in.
func (s *Scene) BodyNames() []string {
	names := make([]string, len(s.Bodies))
	for i, b := range s.Bodies {
		names[i] = b.Name
	}
	return names
}
