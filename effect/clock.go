package effect

import (
	"image"

	"github.com/bodgit/splash/blt"
)

// Rotation is the sweep direction of a clock wipe.
type Rotation int

// Sweep directions.
const (
	Clockwise Rotation = iota
	CounterClockwise
)

func (r Rotation) String() string {
	if r == CounterClockwise {
		return "counter-clockwise"
	}
	return "clockwise"
}

// Center returns the point every clock wipe line ends at.
func Center(width, height int) image.Point {
	return image.Pt((width-1)/2, (height-1)/2)
}

// Perimeter returns the edge points of a width by height rectangle in the
// order a clock wipe visits them. The walk starts at the top edge above the
// center and sweeps along five edge segments back to where it started.
// Each corner appears once unless the rectangle is a single row or column.
func Perimeter(width, height int, dir Rotation) []image.Point {
	if width <= 0 || height <= 0 {
		return nil
	}

	var pts []image.Point
	add := func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	}

	c := Center(width, height)
	right, bottom := width-1, height-1

	if dir == CounterClockwise {
		for x := c.X; x >= 0; x-- {
			add(x, 0)
		}
		for y := 1; y <= bottom; y++ {
			add(0, y)
		}
		for x := 1; x <= right; x++ {
			add(x, bottom)
		}
		for y := bottom - 1; y >= 0; y-- {
			add(right, y)
		}
		for x := right - 1; x > c.X; x-- {
			add(x, 0)
		}
		return pts
	}

	for x := c.X; x <= right; x++ {
		add(x, 0)
	}
	for y := 1; y <= bottom; y++ {
		add(right, y)
	}
	for x := right - 1; x >= 0; x-- {
		add(x, bottom)
	}
	// The first segment already started at the corner when the center is
	// in the leftmost column
	top := 0
	if c.X == 0 {
		top = 1
	}
	for y := bottom - 1; y >= top; y-- {
		add(0, y)
	}
	for x := 1; x < c.X; x++ {
		add(x, 0)
	}
	return pts
}

// ClockWipe reveals buf in r one radius at a time, sweeping around the
// perimeter. Every pixel on the line from each perimeter point to the center
// is copied from buf with a single pixel fill.
func (e *Engine) ClockWipe(buf *blt.Buffer, r blt.Rect, dir Rotation) error {
	if err := checkGeometry(buf, r); err != nil {
		return err
	}

	e.logger.Printf("effect: clock wipe %v %dx%d at %v", dir, buf.Width, buf.Height, r)

	plot := func(p image.Point) error {
		return blt.Fill(e.surface, buf.Pix[p.Y*buf.Width+p.X], blt.RectAt(r.Left+uint(p.X), r.Top+uint(p.Y), 1, 1))
	}

	c := Center(buf.Width, buf.Height)
	for _, p := range Perimeter(buf.Width, buf.Height, dir) {
		if err := Line(p, c, plot); err != nil {
			return err
		}
		e.pause(e.WipeDelay)
	}

	return nil
}
