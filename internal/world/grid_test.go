package world

import (
	"testing"

	"github.com/san-kum/verlet/internal/geom"
)

func gridBody(x, y float64, static bool) *Body {
	cfg := BodyConfig{Pos: geom.V(x, y), Radius: 10, Static: static}
	if !static {
		cfg.Mass = 1
	}
	return MustBody(cfg)
}

func collectPairs(s *spatialIndex) []pairKey {
	var keys []pairKey
	s.pairs(func(a, b *Body) {
		keys = append(keys, makePairKey(a, b))
	})
	return keys
}

func TestGridDeduplicatesPairs(t *testing.T) {
	s := newSpatialIndex(100)

	a := gridBody(10, 10, false)
	b := gridBody(20, 10, false)
	c := gridBody(30, 10, false)
	a.id, b.id, c.id = 1, 2, 3

	s.insert(a)
	s.insert(b)
	s.insert(c)

	// All three share a cell (and its eight neighbors); each unordered pair
	// must be visited exactly once.
	keys := collectPairs(s)
	if len(keys) != 3 {
		t.Fatalf("got %d pairs, want 3: %v", len(keys), keys)
	}
	seen := make(map[pairKey]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("pair %v visited twice", k)
		}
		seen[k] = true
	}
}

func TestGridAdjacentCellsPaired(t *testing.T) {
	s := newSpatialIndex(100)

	// 95 and 105 straddle the x=100 cell boundary.
	a := gridBody(95, 50, false)
	b := gridBody(105, 50, false)
	a.id, b.id = 1, 2

	s.insert(a)
	s.insert(b)

	if keys := collectPairs(s); len(keys) != 1 {
		t.Errorf("boundary-straddling pair enumerated %d times, want 1", len(keys))
	}
}

func TestGridSkipsStaticPairs(t *testing.T) {
	s := newSpatialIndex(100)

	a := gridBody(10, 10, true)
	b := gridBody(20, 10, true)
	c := gridBody(30, 10, false)
	a.id, b.id, c.id = 1, 2, 3

	s.insert(a)
	s.insert(b)
	s.insert(c)

	keys := collectPairs(s)
	if len(keys) != 2 {
		t.Fatalf("got %d pairs, want 2 (static-static culled)", len(keys))
	}
	staticPair := makePairKey(a, b)
	for _, k := range keys {
		if k == staticPair {
			t.Error("static-static pair enumerated")
		}
	}
}

func TestGridNegativeCoordinates(t *testing.T) {
	s := newSpatialIndex(100)

	// Floor division: -1 and -99 share cell -1, +1 lands in cell 0.
	if c := s.cellOf(-1, -99); c.x != -1 || c.y != -1 {
		t.Errorf("cellOf(-1,-99) = %+v, want {-1 -1}", c)
	}
	if c := s.cellOf(1, 99); c.x != 0 || c.y != 0 {
		t.Errorf("cellOf(1,99) = %+v, want {0 0}", c)
	}

	a := gridBody(-5, -5, false)
	b := gridBody(5, 5, false)
	a.id, b.id = 1, 2

	s.insert(a)
	s.insert(b)

	if keys := collectPairs(s); len(keys) != 1 {
		t.Errorf("origin-straddling pair enumerated %d times, want 1", len(keys))
	}
}

func TestGridClearReuses(t *testing.T) {
	s := newSpatialIndex(100)

	a := gridBody(10, 10, false)
	b := gridBody(20, 10, false)
	a.id, b.id = 1, 2
	s.insert(a)
	s.insert(b)
	if keys := collectPairs(s); len(keys) != 1 {
		t.Fatalf("pairs before clear = %d, want 1", len(keys))
	}

	s.clear()
	if keys := collectPairs(s); len(keys) != 0 {
		t.Errorf("pairs after clear = %d, want 0", len(keys))
	}

	s.insert(a)
	s.insert(b)
	if keys := collectPairs(s); len(keys) != 1 {
		t.Errorf("pairs after reinsert = %d, want 1", len(keys))
	}
}

func TestGridZeroCellSizeFallsBack(t *testing.T) {
	s := newSpatialIndex(0)
	if s.cellSize != defaultCellSize {
		t.Errorf("cell size = %v, want default %v", s.cellSize, defaultCellSize)
	}
}
