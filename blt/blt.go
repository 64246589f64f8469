/*
Package blt implements the pixel buffer and block transfer primitives shared
by the image decoders and the effect engine.

A Surface is anything capable of moving rectangles of pixels to and from a
display. Pixels are stored as 4-byte blue, green, red, reserved records,
mirroring the layout used by firmware graphics output protocols, so that a
decoded Buffer can be handed to a Surface without any further conversion.
*/
package blt

import (
	"errors"
	"fmt"
)

// Operation selects the direction of a block transfer.
type Operation int

const (
	// VideoFill fills a rectangle on the surface with the first pixel of
	// the buffer.
	VideoFill Operation = iota
	// VideoToBuffer copies a rectangle from the surface into the buffer.
	VideoToBuffer
	// BufferToVideo copies a rectangle from the buffer onto the surface.
	BufferToVideo
)

func (op Operation) String() string {
	switch op {
	case VideoFill:
		return "VideoFill"
	case VideoToBuffer:
		return "VideoToBuffer"
	case BufferToVideo:
		return "BufferToVideo"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

var (
	// ErrInvalidParameter is returned when a transfer falls outside the
	// surface or the buffer.
	ErrInvalidParameter = errors.New("blt: invalid parameter")
	// ErrUnsupported is returned for an unknown Operation.
	ErrUnsupported = errors.New("blt: unsupported operation")
	// ErrBufferSize is returned when a buffer is neither a single pixel
	// nor exactly the size of the rectangle.
	ErrBufferSize = errors.New("blt: buffer does not match rectangle")
	// ErrInvalidRect is returned for a rectangle whose right or bottom
	// edge is before its left or top edge.
	ErrInvalidRect = errors.New("blt: invalid rectangle")
)

// Surface is the block transfer capability of a display. Coordinates and
// sizes are in pixels, delta is the length of a buffer row in bytes with
// zero meaning the buffer is tightly packed. A transfer either completes or
// fails as a whole.
type Surface interface {
	Blt(buf []Pixel, op Operation, srcX, srcY, dstX, dstY, width, height, delta int) error
}

// Draw copies buf onto s at the origin of r. A single pixel buffer fills the
// whole rectangle, otherwise buf must hold exactly r.Width()*r.Height()
// pixels in row-major order.
func Draw(s Surface, buf []Pixel, r Rect) error {
	if !r.Valid() {
		return ErrInvalidRect
	}

	width, height := int(r.Width()), int(r.Height())

	op := BufferToVideo
	switch {
	case len(buf) == width*height:
	case len(buf) == 1:
		op = VideoFill
	default:
		return ErrBufferSize
	}

	return s.Blt(buf, op, 0, 0, int(r.Left), int(r.Top), width, height, 0)
}

// Fill paints every pixel of r on s with p.
func Fill(s Surface, p Pixel, r Rect) error {
	return Draw(s, []Pixel{p}, r)
}

// Read copies the rectangle r from s into a newly allocated buffer.
func Read(s Surface, r Rect) (*Buffer, error) {
	if !r.Valid() {
		return nil, ErrInvalidRect
	}

	b, err := NewBuffer(int(r.Width()), int(r.Height()))
	if err != nil {
		return nil, err
	}

	if err := s.Blt(b.Pix, VideoToBuffer, int(r.Left), int(r.Top), 0, 0, b.Width, b.Height, 0); err != nil {
		return nil, err
	}

	return b, nil
}
