package chart

import (
	"math"
	"strconv"
	"strings"
)

// PathOp is a drawing instruction.
type PathOp uint8

const (
	OpMove PathOp = iota
	OpLine
	OpCubic
	OpClose
)

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathCmd is one instruction. Cubic uses all three points (two controls and
// the end point); Move and Line use P[2] only; Close uses none.
type PathCmd struct {
	Op PathOp
	P  [3]Point
}

// Path is a sequence of drawing instructions shared by the SVG and PNG
// renderers.
type Path []PathCmd

func (p *Path) moveTo(x, y float64) { *p = append(*p, PathCmd{Op: OpMove, P: [3]Point{2: {x, y}}}) }
func (p *Path) lineTo(x, y float64) { *p = append(*p, PathCmd{Op: OpLine, P: [3]Point{2: {x, y}}}) }
func (p *Path) closePath()          { *p = append(*p, PathCmd{Op: OpClose}) }

func (p *Path) cubicTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, PathCmd{Op: OpCubic, P: [3]Point{{x1, y1}, {x2, y2}, {x, y}}})
}

// SVG renders the path as an SVG "d" attribute, coordinates rounded to
// three decimals.
func (p Path) SVG() string {
	var b strings.Builder
	for _, c := range p {
		switch c.Op {
		case OpMove:
			b.WriteByte('M')
			writeCoords(&b, c.P[2])
		case OpLine:
			b.WriteByte('L')
			writeCoords(&b, c.P[2])
		case OpCubic:
			b.WriteByte('C')
			writeCoords(&b, c.P[0], c.P[1], c.P[2])
		case OpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writeCoords(b *strings.Builder, pts ...Point) {
	for i, pt := range pts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(FormatCoord(pt.X))
		b.WriteByte(',')
		b.WriteString(FormatCoord(pt.Y))
	}
}

// FormatCoord renders a coordinate rounded to three decimals.
func FormatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Flatten approximates the path with polylines, one per subpath, sampling
// each cubic segment at the given number of steps.
func (p Path) Flatten(steps int) [][]Point {
	if steps < 1 {
		steps = 1
	}
	var (
		out     [][]Point
		current []Point
		cursor  Point
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, current)
			current = nil
		}
	}
	for _, c := range p {
		switch c.Op {
		case OpMove:
			flush()
			cursor = c.P[2]
			current = []Point{cursor}
		case OpLine:
			cursor = c.P[2]
			current = append(current, cursor)
		case OpCubic:
			p0 := cursor
			for s := 1; s <= steps; s++ {
				current = append(current, cubicAt(p0, c.P[0], c.P[1], c.P[2], float64(s)/float64(steps)))
			}
			cursor = c.P[2]
		case OpClose:
			if len(current) > 0 {
				cursor = current[0]
			}
			flush()
		}
	}
	flush()
	return out
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// basis is the uniform cubic B-spline state machine. Each call to point
// feeds one control point; the curve passes near, not through, interior
// points and ends exactly on the first and last.
type basis struct {
	path   *Path
	line   int // 0 for the first edge of an area, 1 for the closing edge
	state  int
	x0, y0 float64
	x1, y1 float64
}

func (c *basis) lineStart() {
	c.x0, c.x1, c.y0, c.y1 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	c.state = 0
}

func (c *basis) lineEnd() {
	switch c.state {
	case 3:
		c.bezier(c.x1, c.y1)
		c.path.lineTo(c.x1, c.y1)
	case 2:
		c.path.lineTo(c.x1, c.y1)
	}
	if c.line == 1 {
		c.path.closePath()
	}
	c.line = 1 - c.line
}

func (c *basis) point(x, y float64) {
	switch c.state {
	case 0:
		c.state = 1
		if c.line == 1 {
			c.path.lineTo(x, y)
		} else {
			c.path.moveTo(x, y)
		}
	case 1:
		c.state = 2
	case 2:
		c.state = 3
		c.path.lineTo((5*c.x0+c.x1)/6, (5*c.y0+c.y1)/6)
		c.bezier(x, y)
	default:
		c.bezier(x, y)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
}

func (c *basis) bezier(x, y float64) {
	c.path.cubicTo(
		(2*c.x0+c.x1)/3, (2*c.y0+c.y1)/3,
		(c.x0+2*c.x1)/3, (c.y0+2*c.y1)/3,
		(c.x0+4*c.x1+x)/6, (c.y0+4*c.y1+y)/6,
	)
}

// BasisArea builds a closed, B-spline smoothed area: the top edge (x, y1)
// left to right, then the bottom edge (x, y0) right to left.
//
// Indexes where any of x, y0 or y1 is not finite are skipped and split the
// area into separate closed segments.
func BasisArea(xs, y0s, y1s []float64) Path {
	var path Path
	c := &basis{path: &path}

	n := len(xs)
	for j := 0; j < n; {
		if !finitePoint(xs[j], y0s[j], y1s[j]) {
			j++
			continue
		}
		end := j
		for end < n && finitePoint(xs[end], y0s[end], y1s[end]) {
			end++
		}

		c.line = 0
		c.lineStart()
		for k := j; k < end; k++ {
			c.point(xs[k], y1s[k])
		}
		c.lineEnd()
		c.lineStart()
		for k := end - 1; k >= j; k-- {
			c.point(xs[k], y0s[k])
		}
		c.lineEnd()

		j = end
	}
	return path
}

func finitePoint(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
