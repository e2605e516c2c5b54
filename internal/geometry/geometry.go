// Package geometry holds the closed-form math used to draw and hit-test the
// diagram: connection anchors, Bezier paths, zoom and pan, drop mapping,
// grid snapping and bounding boxes.
package geometry

import (
	"math"
	"strconv"
)

const (
	// GridSize is the snapping grid pitch
	GridSize = 20

	// MinZoom and MaxZoom bound the view scale
	MinZoom float64 = 0.25
	MaxZoom float64 = 3

	// CanvasOffset centres the virtual canvas on screen origin
	CanvasOffset = 4000
)

// DefaultDeviceSize is the rendered size of a device box
var DefaultDeviceSize = Size{Width: 120, Height: 80}

// Edge names a side of a rectangle
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Point is a diagram coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a box width and height
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is an axis-aligned box given by its extremes
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Empty reports whether b still holds the degenerate starting values
func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Placed is anything with a top-left position
type Placed interface {
	Position() (x, y float64)
}

// Framed is anything with its own rectangle
type Framed interface {
	Frame() (x, y, width, height float64)
}

// ConnectionPoint returns the midpoint of the named edge of the box at
// origin with the given size. An unknown edge yields the box centre and a
// nil origin yields {0, 0}.
func ConnectionPoint(origin *Point, edge Edge, width, height float64) Point {
	if origin == nil {
		return Point{}
	}
	x, y := origin.X, origin.Y
	switch edge {
	case EdgeTop:
		return Point{X: x + width/2, Y: y}
	case EdgeBottom:
		return Point{X: x + width/2, Y: y + height}
	case EdgeLeft:
		return Point{X: x, Y: y + height/2}
	case EdgeRight:
		return Point{X: x + width, Y: y + height/2}
	default:
		return Point{X: x + width/2, Y: y + height/2}
	}
}

// ConnectionPath builds an SVG cubic Bezier from one anchor to another.
// Vertical departures bend through the vertical midpoint, all others through
// the horizontal midpoint.
func ConnectionPath(from Point, fromEdge Edge, to Point) string {
	var c1, c2 Point
	if fromEdge == EdgeTop || fromEdge == EdgeBottom {
		midY := (from.Y + to.Y) / 2
		c1 = Point{X: from.X, Y: midY}
		c2 = Point{X: to.X, Y: midY}
	} else {
		midX := (from.X + to.X) / 2
		c1 = Point{X: midX, Y: from.Y}
		c2 = Point{X: midX, Y: to.Y}
	}
	return "M" + num(from.X) + "," + num(from.Y) +
		" C" + num(c1.X) + "," + num(c1.Y) +
		" " + num(c2.X) + "," + num(c2.Y) +
		" " + num(to.X) + "," + num(to.Y)
}

// num formats a float the shortest way that round-trips, without a fixed
// number of decimals.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NearestEdge returns the side of a width x height box closest to the point
// (relX, relY) measured from the box's top-left. Ties resolve top, bottom,
// left, right.
func NearestEdge(relX, relY, width, height float64) Edge {
	candidates := []struct {
		edge Edge
		dist float64
	}{
		{EdgeTop, relY},
		{EdgeBottom, height - relY},
		{EdgeLeft, relX},
		{EdgeRight, width - relX},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.dist < best.dist {
			best = c
		}
	}
	return best.edge
}

// ClampZoom limits z to [MinZoom, MaxZoom]
func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// ZoomPan recomputes the pan so the world point under the mouse stays fixed
// on screen when the zoom changes from oldZoom to newZoom.
func ZoomPan(oldZoom, newZoom, mouseX, mouseY, panX, panY float64) (float64, float64) {
	ratio := newZoom / oldZoom
	return mouseX - (mouseX-panX)*ratio, mouseY - (mouseY-panY)*ratio
}

// DropPosition maps a screen drop point to diagram coordinates so a new
// default-sized device is centred under the cursor.
func DropPosition(clientX, clientY, rectLeft, rectTop, panX, panY, zoom float64) Point {
	return Point{
		X: (clientX-rectLeft-panX)/zoom + CanvasOffset - DefaultDeviceSize.Width/2,
		Y: (clientY-rectTop-panY)/zoom + CanvasOffset - DefaultDeviceSize.Height/2,
	}
}

// SnapToGridValue rounds v to the nearest grid line. Halves round towards
// positive infinity.
func SnapToGridValue(v float64) float64 {
	return math.Floor(v/GridSize+0.5) * GridSize
}

// Snap applies SnapToGridValue to both coordinates when enabled
func Snap(p Point, enabled bool) Point {
	if !enabled {
		return p
	}
	return Point{X: SnapToGridValue(p.X), Y: SnapToGridValue(p.Y)}
}

// BoundingBox covers every device box, sized by dims, and every zone
// rectangle. With no input it returns the degenerate box
// {+Inf, +Inf, -Inf, -Inf}; check Empty before using it.
func BoundingBox[D Placed, Z Framed](devices []D, zones []Z, dims func(D) Size) Bounds {
	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}

	for _, d := range devices {
		x, y := d.Position()
		sz := dims(d)
		b.include(x, y, sz.Width, sz.Height)
	}
	for _, z := range zones {
		b.include(z.Frame())
	}
	return b
}

func (b *Bounds) include(x, y, w, h float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x+w)
	b.MaxY = math.Max(b.MaxY, y+h)
}
