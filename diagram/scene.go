package diagram

// A Scene is an ordered list of drawing primitives in a fixed coordinate
// box. It is a plain return value; renderers (SVG here, PDF elsewhere)
// decide what to do with it.
type Scene struct {
	Width  float64
	Height float64
	Elems  []Element
}

type Element interface {
	translated(dx, dy float64) Element
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          string
}

// Rect is axis-aligned; RX > 0 rounds the corners.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Color      string
}

// Circle is filled when Fill is set, stroked when Stroke is set.
type Circle struct {
	CX, CY, R   float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Label anchor values follow SVG text-anchor: "start", "middle", "end".
type Label struct {
	X, Y   float64
	Text   string
	Size   float64
	Color  string
	Anchor string
	Middle bool // vertically center on Y instead of using Y as baseline
	Bold   bool
}

func (l Line) translated(dx, dy float64) Element {
	l.X1 += dx
	l.Y1 += dy
	l.X2 += dx
	l.Y2 += dy
	return l
}

func (r Rect) translated(dx, dy float64) Element {
	r.X += dx
	r.Y += dy
	return r
}

func (c Circle) translated(dx, dy float64) Element {
	c.CX += dx
	c.CY += dy
	return c
}

func (l Label) translated(dx, dy float64) Element {
	l.X += dx
	l.Y += dy
	return l
}
