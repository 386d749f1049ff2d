package world

import (
	"errors"
	"testing"

	"github.com/san-kum/verlet/internal/geom"
)

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  BodyConfig
	}{
		{"zero radius", BodyConfig{Mass: 1, Radius: 0}},
		{"negative radius", BodyConfig{Mass: 1, Radius: -5}},
		{"zero mass", BodyConfig{Mass: 0, Radius: 10}},
		{"negative mass", BodyConfig{Mass: -1, Radius: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewBodyStaticIgnoresMass(t *testing.T) {
	b, err := NewBody(BodyConfig{Radius: 10, Static: true})
	if err != nil {
		t.Fatalf("static body rejected: %v", err)
	}
	if b.InvMass() != 0 {
		t.Errorf("static inverse mass = %v, want 0", b.InvMass())
	}
	if b.Mass != 0 {
		t.Errorf("static mass = %v, want 0", b.Mass)
	}
}

func TestNewBodyInitialVelocity(t *testing.T) {
	b := MustBody(BodyConfig{
		Pos:      geom.V(100, 100),
		Velocity: geom.V(3, -2),
		Mass:     1,
		Radius:   10,
	})

	vel := b.Velocity()
	if vel.X != 3 || vel.Y != -2 {
		t.Errorf("initial velocity = %v, want {3 -2}", vel)
	}
	if b.Prev.X != 97 || b.Prev.Y != 102 {
		t.Errorf("previous position = %v, want {97 102}", b.Prev)
	}
}

func TestLocalPositionMatchesWorld(t *testing.T) {
	w := newTestWorld(t, nil)
	g := NewGroup(w)

	b := MustBody(BodyConfig{Pos: geom.V(25, 75), Mass: 1, Radius: 5})
	b.SetContainer(g)
	w.AddBody(b)

	if b.LocalPosition() != b.Position() {
		t.Errorf("local = %v, world = %v; containers carry no transform", b.LocalPosition(), b.Position())
	}
}

func TestSetVelocity(t *testing.T) {
	b := MustBody(BodyConfig{Pos: geom.V(50, 50), Mass: 1, Radius: 5})

	b.SetVelocity(2, 4)
	vel := b.Velocity()
	if vel.X != 2 || vel.Y != 4 {
		t.Errorf("velocity = %v, want {2 4}", vel)
	}

	// The current position must not move.
	if b.Pos.X != 50 || b.Pos.Y != 50 {
		t.Errorf("position moved to %v", b.Pos)
	}
}

func TestSetVelocityStaticNoop(t *testing.T) {
	b := MustBody(BodyConfig{Pos: geom.V(10, 10), Radius: 5, Static: true})
	b.SetVelocity(5, 5)
	if v := b.Velocity(); v.X != 0 || v.Y != 0 {
		t.Errorf("static body acquired velocity %v", v)
	}
}

func TestApplyForceAccumulates(t *testing.T) {
	b := MustBody(BodyConfig{Mass: 1, Radius: 5})
	b.ApplyForce(10, 0)
	b.ApplyForce(0, 20)
	if b.Acc.X != 10 || b.Acc.Y != 20 {
		t.Errorf("accumulated force = %v, want {10 20}", b.Acc)
	}
}

func TestApplyForceStaticNoop(t *testing.T) {
	b := MustBody(BodyConfig{Radius: 5, Static: true})
	b.ApplyForce(100, 100)
	if b.Acc.X != 0 || b.Acc.Y != 0 {
		t.Errorf("static body accumulated force %v", b.Acc)
	}
}

func TestBodyDisabledByConfig(t *testing.T) {
	enabled := false
	b := MustBody(BodyConfig{Mass: 1, Radius: 5, Enabled: &enabled})
	if b.Enabled {
		t.Error("body enabled despite config")
	}
	if b.movable() {
		t.Error("disabled body reported movable")
	}
}
