package viz

import (
	"github.com/san-kum/verlet/internal/geom"
	"github.com/san-kum/verlet/internal/world"
)

// RenderWorld draws the world onto the canvas: the bounds frame, constraint
// links, and every enabled body. view is the world-space rectangle mapped to
// the full canvas; pass the world bounds for a stable framing.
func RenderWorld(c *Canvas, w *world.World, view geom.Rect) {
	cw := float64(c.Width * 2)
	ch := float64(c.Height * 4)
	vw := view.Width()
	vh := view.Height()
	if vw <= 0 || vh <= 0 {
		return
	}

	toScreen := func(p geom.Vec2) (int, int) {
		x := (p.X - view.Min.X) / vw * (cw - 1)
		y := (p.Y - view.Min.Y) / vh * (ch - 1)
		return int(x), int(y)
	}

	if b := w.Bounds(); b != nil {
		x0, y0 := toScreen(b.Min)
		x1, y1 := toScreen(b.Max)
		c.DrawLine(x0, y0, x1, y0)
		c.DrawLine(x1, y0, x1, y1)
		c.DrawLine(x1, y1, x0, y1)
		c.DrawLine(x0, y1, x0, y0)
	}

	for _, con := range w.Constraints() {
		b := con.BodyB()
		if b == nil {
			continue
		}
		var from geom.Vec2
		if a := con.BodyA(); a != nil {
			from = a.Pos
		} else {
			from = con.Anchor()
		}
		x0, y0 := toScreen(from)
		x1, y1 := toScreen(b.Pos)
		c.DrawLine(x0, y0, x1, y1)
	}

	for _, b := range w.Bodies() {
		if !b.Enabled {
			continue
		}
		x, y := toScreen(b.Pos)
		// Radius scales with the horizontal mapping only; cells are not
		// square but circles read fine at terminal sizes.
		r := int(b.Radius / vw * (cw - 1))
		if b.Static {
			c.FillCircle(x, y, r)
		} else {
			c.DrawCircle(x, y, r)
		}
	}
}

// ViewFor picks a rendering window: the world bounds when set, otherwise a
// box around the current bodies with some margin.
func ViewFor(w *world.World) geom.Rect {
	if b := w.Bounds(); b != nil {
		return *b
	}
	bodies := w.Bodies()
	if len(bodies) == 0 {
		return geom.R(0, 0, 800, 600)
	}
	view := geom.R(bodies[0].Pos.X, bodies[0].Pos.Y, bodies[0].Pos.X, bodies[0].Pos.Y)
	for _, b := range bodies {
		if b.Pos.X-b.Radius < view.Min.X {
			view.Min.X = b.Pos.X - b.Radius
		}
		if b.Pos.Y-b.Radius < view.Min.Y {
			view.Min.Y = b.Pos.Y - b.Radius
		}
		if b.Pos.X+b.Radius > view.Max.X {
			view.Max.X = b.Pos.X + b.Radius
		}
		if b.Pos.Y+b.Radius > view.Max.Y {
			view.Max.Y = b.Pos.Y + b.Radius
		}
	}
	const margin = 50
	view.Min.X -= margin
	view.Min.Y -= margin
	view.Max.X += margin
	view.Max.Y += margin
	return view
}
