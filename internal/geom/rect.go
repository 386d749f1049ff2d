package geom

// Rect is an axis-aligned rectangle spanning [Min, Max] on both axes.
type Rect struct {
	Min, Max Vec2
}

func R(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: Vec2{X: minX, Y: minY}, Max: Vec2{X: maxX, Y: maxY}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsCircle reports whether a circle of the given radius centered at p
// fits entirely inside the rectangle.
func (r Rect) ContainsCircle(p Vec2, radius float64) bool {
	return p.X-radius >= r.Min.X && p.X+radius <= r.Max.X &&
		p.Y-radius >= r.Min.Y && p.Y+radius <= r.Max.Y
}
