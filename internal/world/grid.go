package world

import "math"

// Broad-phase parameters. Below the threshold a direct O(n²) scan beats the
// grid's build and query overhead.
const (
	gridThreshold    = 50
	defaultCellSize  = 100.0
	neighborhoodSpan = 1 // insert into the 3x3 cell neighborhood
)

type cellKey struct {
	x, y int32
}

type pairKey struct {
	lo, hi uint64
}

func makePairKey(a, b *Body) pairKey {
	if a.id < b.id {
		return pairKey{lo: a.id, hi: b.id}
	}
	return pairKey{lo: b.id, hi: a.id}
}

// spatialIndex is a uniform grid rebuilt from scratch every step. Each body
// is inserted into its containing cell and the 8 neighbors, so pairs whose
// interaction crosses a cell boundary are still enumerated together.
type spatialIndex struct {
	cellSize float64
	cells    map[cellKey][]*Body
	seen     map[pairKey]struct{}
}

func newSpatialIndex(cellSize float64) *spatialIndex {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &spatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*Body),
		seen:     make(map[pairKey]struct{}),
	}
}

func (s *spatialIndex) clear() {
	for k := range s.cells {
		s.cells[k] = s.cells[k][:0]
	}
	for k := range s.seen {
		delete(s.seen, k)
	}
}

func (s *spatialIndex) cellOf(x, y float64) cellKey {
	return cellKey{
		x: int32(math.Floor(x / s.cellSize)),
		y: int32(math.Floor(y / s.cellSize)),
	}
}

func (s *spatialIndex) insert(b *Body) {
	center := s.cellOf(b.Pos.X, b.Pos.Y)
	for dx := int32(-neighborhoodSpan); dx <= neighborhoodSpan; dx++ {
		for dy := int32(-neighborhoodSpan); dy <= neighborhoodSpan; dy++ {
			k := cellKey{x: center.x + dx, y: center.y + dy}
			s.cells[k] = append(s.cells[k], b)
		}
	}
}

// pairs enumerates candidate pairs cell by cell, de-duplicating with an
// unordered key. The same pair appears in up to nine cells; only the first
// occurrence survives.
func (s *spatialIndex) pairs(visit func(a, b *Body)) {
	for _, bodies := range s.cells {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if a.Static && b.Static {
					continue
				}
				key := makePairKey(a, b)
				if _, dup := s.seen[key]; dup {
					continue
				}
				s.seen[key] = struct{}{}
				visit(a, b)
			}
		}
	}
}
