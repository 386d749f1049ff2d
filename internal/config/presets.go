package config

import "fmt"

// Presets are ready-made scenes covering the engine's behaviors: bouncing
// off walls, stack settling, constrained pendulum and chain motion, and a
// pit with enough bodies to engage the grid broad phase.
var Presets = map[string]*Scene{
	"bounce": {
		Name: "bounce", Gravity: 900, Friction: 0.999, Restitution: 0.85,
		TimeStep: DefaultTimeStep, Iterations: DefaultIterations, Duration: 10,
		Bounds: &BoundsSpec{MaxX: 800, MaxY: 600},
		Bodies: []BodySpec{
			{Name: "ball1", X: 120, Y: 100, VX: 4, Mass: 1, Radius: 18},
			{Name: "ball2", X: 400, Y: 80, VX: -3, VY: 1, Mass: 2, Radius: 26},
			{Name: "ball3", X: 650, Y: 150, VX: -5, Mass: 1, Radius: 14},
			{Name: "ball4", X: 300, Y: 300, VX: 2, VY: -2, Mass: 3, Radius: 32},
			{Name: "ball5", X: 550, Y: 400, VX: -1, VY: -3, Mass: 1, Radius: 20},
		},
	},
	"stack": {
		Name: "stack", Gravity: 600, Friction: 0.99, Restitution: 0.3,
		TimeStep: DefaultTimeStep, Iterations: DefaultIterations, Duration: 8,
		Bounds: &BoundsSpec{MaxX: 800, MaxY: 600},
		Bodies: []BodySpec{
			{Name: "base", X: 400, Y: 560, Radius: 40, Static: true},
			{Name: "s1", X: 400, Y: 480, Mass: 2, Radius: 30},
			{Name: "s2", X: 400, Y: 420, Mass: 1.5, Radius: 26},
			{Name: "s3", X: 400, Y: 370, Mass: 1, Radius: 22},
			{Name: "s4", X: 400, Y: 330, Mass: 0.8, Radius: 16},
		},
	},
	"pendulum": {
		Name: "pendulum", Gravity: 500, Friction: 0.999, Restitution: 0.8,
		TimeStep: DefaultTimeStep, Iterations: DefaultIterations, Duration: 12,
		Bodies: []BodySpec{
			{Name: "bob", X: 500, Y: 100, Mass: 1, Radius: 12},
		},
		Constraints: []ConstraintSpec{
			{B: "bob", AnchorX: 400, AnchorY: 100, Length: 0, Stiffness: 0.9},
		},
	},
	"chain": {
		Name: "chain", Gravity: 500, Friction: 0.995, Restitution: 0.5,
		TimeStep: DefaultTimeStep, Iterations: 4, Duration: 12,
		Bounds: &BoundsSpec{MaxX: 800, MaxY: 600},
		Bodies: []BodySpec{
			{Name: "l1", X: 430, Y: 100, Mass: 1, Radius: 6},
			{Name: "l2", X: 460, Y: 100, Mass: 1, Radius: 6},
			{Name: "l3", X: 490, Y: 100, Mass: 1, Radius: 6},
			{Name: "l4", X: 520, Y: 100, Mass: 1, Radius: 6},
			{Name: "l5", X: 550, Y: 100, Mass: 1, Radius: 6},
			{Name: "l6", X: 580, Y: 100, Mass: 1, Radius: 6},
			{Name: "weight", X: 610, Y: 100, Mass: 4, Radius: 14},
		},
		Constraints: []ConstraintSpec{
			{B: "l1", AnchorX: 400, AnchorY: 100, Length: 30, Stiffness: 1},
			{A: "l1", B: "l2", Length: 30, Stiffness: 1},
			{A: "l2", B: "l3", Length: 30, Stiffness: 1},
			{A: "l3", B: "l4", Length: 30, Stiffness: 1},
			{A: "l4", B: "l5", Length: 30, Stiffness: 1},
			{A: "l5", B: "l6", Length: 30, Stiffness: 1},
			{A: "l6", B: "weight", Length: 30, Stiffness: 1},
		},
	},
	"pit": pitScene(),
}

// pitScene rains an 8x8 grid of balls into a box, enough bodies to cross the
// broad-phase threshold.
func pitScene() *Scene {
	s := &Scene{
		Name: "pit", Gravity: 800, Friction: 0.99, Restitution: 0.4,
		TimeStep: DefaultTimeStep, Iterations: DefaultIterations, Duration: 6,
		Bounds: &BoundsSpec{MaxX: 800, MaxY: 600},
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			s.Bodies = append(s.Bodies, BodySpec{
				Name:   fmt.Sprintf("p%d_%d", row, col),
				X:      160 + float64(col)*70,
				Y:      40 + float64(row)*45,
				Mass:   1,
				Radius: 12,
			})
		}
	}
	return s
}

func GetPreset(name string) *Scene {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
