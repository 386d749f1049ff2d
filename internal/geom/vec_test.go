package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	sum := a.Add(b)
	if sum.X != 4 || sum.Y != 2 {
		t.Errorf("Add = %v, want {4 2}", sum)
	}

	diff := a.Sub(b)
	if diff.X != 2 || diff.Y != 6 {
		t.Errorf("Sub = %v, want {2 6}", diff)
	}

	scaled := a.Scale(2)
	if scaled.X != 6 || scaled.Y != 8 {
		t.Errorf("Scale = %v, want {6 8}", scaled)
	}

	if dot := a.Dot(b); dot != -5 {
		t.Errorf("Dot = %v, want -5", dot)
	}
}

func TestVec2Length(t *testing.T) {
	v := V(3, 4)
	if !almostEqual(v.Length(), 5, 1e-12) {
		t.Errorf("Length = %v, want 5", v.Length())
	}
	if v.LengthSq() != 25 {
		t.Errorf("LengthSq = %v, want 25", v.LengthSq())
	}
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"unit x", V(10, 0), V(1, 0)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"zero vector", V(0, 0), V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !almostEqual(got.X, tt.want.X, 1e-12) || !almostEqual(got.Y, tt.want.Y, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec2Distance(t *testing.T) {
	a := V(100, 100)
	b := V(130, 100)
	if !almostEqual(a.Distance(b), 30, 1e-12) {
		t.Errorf("Distance = %v, want 30", a.Distance(b))
	}
	if a.DistanceSq(b) != 900 {
		t.Errorf("DistanceSq = %v, want 900", a.DistanceSq(b))
	}
}

func TestVec2IsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V(math.NaN(), 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if V(0, math.Inf(1)).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 100, 50)

	if !r.Contains(V(50, 25)) {
		t.Error("interior point not contained")
	}
	if r.Contains(V(-1, 25)) {
		t.Error("exterior point contained")
	}
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size = %v x %v, want 100 x 50", r.Width(), r.Height())
	}
}

func TestRectContainsCircle(t *testing.T) {
	r := R(0, 0, 100, 100)

	if !r.ContainsCircle(V(50, 50), 20) {
		t.Error("fitting circle not contained")
	}
	if r.ContainsCircle(V(10, 50), 20) {
		t.Error("circle crossing left wall reported contained")
	}
}
