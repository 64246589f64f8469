package effect

import "image"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Line calls plot for every point on the line from p0 to p1 inclusive, in
// order, using integer Bresenham stepping. It stops at the first error.
func Line(p0, p1 image.Point, plot func(image.Point) error) error {
	dx, sx := abs(p1.X-p0.X), sign(p1.X-p0.X)
	dy, sy := -abs(p1.Y-p0.Y), sign(p1.Y-p0.Y)
	e := dx + dy

	for p := p0; ; {
		if err := plot(p); err != nil {
			return err
		}
		if p == p1 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// LinePoints returns the points Line visits from p0 to p1.
func LinePoints(p0, p1 image.Point) []image.Point {
	var pts []image.Point
	_ = Line(p0, p1, func(p image.Point) error {
		pts = append(pts, p)
		return nil
	})
	return pts
}
