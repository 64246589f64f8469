package blt

import "fmt"

// Rect is a rectangle with inclusive bounds.
type Rect struct {
	Left   uint
	Top    uint
	Right  uint
	Bottom uint
}

// RectAt returns the rectangle of the given size whose top-left corner is
// at (x, y). The size must be non-zero.
func RectAt(x, y, width, height uint) Rect {
	return Rect{
		Left:   x,
		Top:    y,
		Right:  x + width - 1,
		Bottom: y + height - 1,
	}
}

// Valid reports whether the right and bottom edges are not before the left
// and top edges.
func (r Rect) Valid() bool {
	return r.Right >= r.Left && r.Bottom >= r.Top
}

// Width returns the number of columns covered by r.
func (r Rect) Width() uint {
	return r.Right - r.Left + 1
}

// Height returns the number of rows covered by r.
func (r Rect) Height() uint {
	return r.Bottom - r.Top + 1
}

// Offset returns r moved right by dx and down by dy.
func (r Rect) Offset(dx, dy uint) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Shrink returns r with dx columns removed from each side and dy rows
// removed from the top and bottom. The result may not be Valid.
func (r Rect) Shrink(dx, dy uint) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right - dx, r.Bottom - dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
