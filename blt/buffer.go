package blt

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/bits"
)

// PixelSize is the size in bytes of one Pixel record.
const PixelSize = 4

// maxAddressable is the largest byte count a single allocation may request.
const maxAddressable = uint64(math.MaxInt)

// ErrTooLarge is returned when a buffer size computation would exceed the
// addressable memory of the platform.
var ErrTooLarge = errors.New("blt: buffer too large")

// Pixel is a single blue, green, red, reserved record. It implements
// color.Color and is always fully opaque.
type Pixel struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.Red)
	r |= r << 8
	g = uint32(p.Green)
	g |= g << 8
	b = uint32(p.Blue)
	b |= b << 8
	return r, g, b, 0xffff
}

// PixelModel converts any color to a Pixel, discarding alpha.
var PixelModel = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Pixel{Blue: uint8(b >> 8), Green: uint8(g >> 8), Red: uint8(r >> 8)}
}

// Size returns the size in bytes of a width by height buffer of pixels. The
// pixel count is checked against the addressable limit before it is scaled
// by PixelSize so neither step can wrap.
func Size(width, height uint64) (int, error) {
	hi, lo := bits.Mul64(width, height)
	if hi != 0 || lo > maxAddressable/PixelSize {
		return 0, ErrTooLarge
	}
	return int(lo * PixelSize), nil
}

// Buffer is a row-major array of pixels. len(Pix) is always Width*Height.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewBuffer returns a zeroed width by height buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidParameter
	}
	n, err := Size(uint64(width), uint64(height))
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, n/PixelSize),
	}, nil
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return PixelModel
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	return b.PixelAt(x, y)
}

// PixelAt returns the pixel at (x, y), or the zero Pixel outside the buffer.
func (b *Buffer) PixelAt(x, y int) Pixel {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return Pixel{}
	}
	return b.Pix[y*b.Width+x]
}

// Set implements the draw.Image interface.
func (b *Buffer) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return
	}
	b.Pix[y*b.Width+x] = PixelModel.Convert(c).(Pixel)
}

// Row returns the pixels of row y.
func (b *Buffer) Row(y int) []Pixel {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}
