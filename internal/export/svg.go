package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/verlet/internal/geom"
	"github.com/san-kum/verlet/internal/world"
)

const svgBackground = "#0a0a0a"

// WorldToSVG renders a snapshot of the world: the bounds frame, constraint
// links as lines, dynamic bodies as outlined circles and static bodies
// filled. view is the world-space window mapped onto the image.
func WorldToSVG(w *world.World, view geom.Rect, width, height int) string {
	vw := view.Width()
	vh := view.Height()
	if vw <= 0 || vh <= 0 {
		return ""
	}

	sx := float64(width) / vw
	sy := float64(height) / vh
	toX := func(x float64) float64 { return (x - view.Min.X) * sx }
	toY := func(y float64) float64 { return (y - view.Min.Y) * sy }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	if b := w.Bounds(); b != nil {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444466" stroke-width="1"/>
`, toX(b.Min.X), toY(b.Min.Y), b.Width()*sx, b.Height()*sy))
	}

	for _, c := range w.Constraints() {
		b := c.BodyB()
		if b == nil {
			continue
		}
		var from geom.Vec2
		if a := c.BodyA(); a != nil {
			from = a.Pos
		} else {
			from = c.Anchor()
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888899" stroke-width="1"/>
`, toX(from.X), toY(from.Y), toX(b.Pos.X), toY(b.Pos.Y)))
	}

	for _, b := range w.Bodies() {
		if !b.Enabled {
			continue
		}
		r := b.Radius * sx
		if b.Static {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#666688"/>
`, toX(b.Pos.X), toY(b.Pos.Y), r))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#00ff88" stroke-width="1.5"/>
`, toX(b.Pos.X), toY(b.Pos.Y), r))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG plots a recorded path as a polyline, auto-scaled to the
// image with 10% padding.
func TrajectoryToSVG(points []geom.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
