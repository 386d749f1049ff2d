package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()

	if s.TimeStep <= 0 {
		t.Error("timestep should be positive")
	}
	if s.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if s.Bounds == nil || s.Bounds.MaxX <= 0 || s.Bounds.MaxY <= 0 {
		t.Errorf("default bounds invalid: %+v", s.Bounds)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	s := GetPreset("pendulum")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "pendulum" {
		t.Errorf("name = %q, want pendulum", loaded.Name)
	}
	if loaded.Gravity != 500 {
		t.Errorf("gravity = %v, want 500", loaded.Gravity)
	}
	if len(loaded.Bodies) != 1 || loaded.Bodies[0].Name != "bob" {
		t.Errorf("bodies = %+v", loaded.Bodies)
	}
	if len(loaded.Constraints) != 1 || loaded.Constraints[0].B != "bob" {
		t.Errorf("constraints = %+v", loaded.Constraints)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"zero timestep", func(s *Scene) { s.TimeStep = 0 }},
		{"zero duration", func(s *Scene) { s.Duration = 0 }},
		{"unnamed body", func(s *Scene) { s.Bodies = append(s.Bodies, BodySpec{Radius: 5, Mass: 1}) }},
		{"duplicate body name", func(s *Scene) {
			s.Bodies = append(s.Bodies, BodySpec{Name: "bob", Radius: 5, Mass: 1})
		}},
		{"constraint without b", func(s *Scene) {
			s.Constraints = append(s.Constraints, ConstraintSpec{Stiffness: 1, Length: 10})
		}},
		{"constraint unknown b", func(s *Scene) {
			s.Constraints = append(s.Constraints, ConstraintSpec{B: "ghost", Stiffness: 1, Length: 10})
		}},
		{"constraint unknown a", func(s *Scene) {
			s.Constraints = append(s.Constraints, ConstraintSpec{A: "ghost", B: "bob", Stiffness: 1, Length: 10})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GetPreset("pendulum")
			clone := *s
			clone.Bodies = append([]BodySpec(nil), s.Bodies...)
			clone.Constraints = append([]ConstraintSpec(nil), s.Constraints...)
			tt.mutate(&clone)

			err := clone.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("error = %v, want ErrInvalidScene", err)
			}
		})
	}
}

func TestBuildPresets(t *testing.T) {
	for name, scene := range Presets {
		t.Run(name, func(t *testing.T) {
			w, bodies, err := scene.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(w.Bodies()) != len(scene.Bodies) {
				t.Errorf("world has %d bodies, scene declares %d", len(w.Bodies()), len(scene.Bodies))
			}
			if len(w.Constraints()) != len(scene.Constraints) {
				t.Errorf("world has %d constraints, scene declares %d", len(w.Constraints()), len(scene.Constraints))
			}
			for _, spec := range scene.Bodies {
				if bodies[spec.Name] == nil {
					t.Errorf("body %q missing from mapping", spec.Name)
				}
			}
		})
	}
}

func TestBuildRunsStably(t *testing.T) {
	// Every preset must survive its full duration without blowing up.
	for name, scene := range Presets {
		t.Run(name, func(t *testing.T) {
			w, bodies, err := scene.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			steps := int(scene.Duration / scene.TimeStep)
			for i := 0; i < steps; i++ {
				w.Step()
			}
			for bodyName, b := range bodies {
				if !b.Pos.IsFinite() {
					t.Errorf("body %q diverged to %v", bodyName, b.Pos)
				}
			}
		})
	}
}

func TestBuildRejectsBadBody(t *testing.T) {
	s := DefaultScene()
	s.Bodies = []BodySpec{{Name: "bad", Radius: 0, Mass: 1}}

	if _, _, err := s.Build(); err == nil {
		t.Error("expected error for zero-radius body")
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("got %d names, want %d", len(names), len(Presets))
	}
}

func TestBodyNamesOrder(t *testing.T) {
	s := GetPreset("chain")
	names := s.BodyNames()
	if len(names) != len(s.Bodies) {
		t.Fatalf("got %d names, want %d", len(names), len(s.Bodies))
	}
	for i, spec := range s.Bodies {
		if names[i] != spec.Name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], spec.Name)
		}
	}
}
