package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/bodgit/splash/blt"
)

type decoder struct {
	b      []byte
	logger *log.Logger

	header  Header
	palette []blt.Pixel
	image   *blt.Buffer
}

// expandFunc expands one padded source row into a row of pixels.
type expandFunc func(dst []blt.Pixel, src []byte, palette []blt.Pixel) error

func lookup(palette []blt.Pixel, i byte) (blt.Pixel, error) {
	if int(i) >= len(palette) {
		return blt.Pixel{}, errBadPalette
	}
	return palette[i], nil
}

func expandIndexed1(dst []blt.Pixel, src []byte, palette []blt.Pixel) (err error) {
	for x := range dst {
		// Most significant bit is the leftmost pixel
		if dst[x], err = lookup(palette, src[x>>3]>>(7-uint(x&7))&0x01); err != nil {
			return
		}
	}
	return
}

func expandIndexed4(dst []blt.Pixel, src []byte, palette []blt.Pixel) (err error) {
	for x := range dst {
		i := src[x>>1]
		if x&1 == 0 {
			i >>= 4
		}
		if dst[x], err = lookup(palette, i&0x0f); err != nil {
			return
		}
	}
	return
}

func expandIndexed8(dst []blt.Pixel, src []byte, palette []blt.Pixel) (err error) {
	for x := range dst {
		if dst[x], err = lookup(palette, src[x]); err != nil {
			return
		}
	}
	return
}

func expand1555(dst []blt.Pixel, src []byte, _ []blt.Pixel) error {
	for x := range dst {
		v := binary.LittleEndian.Uint16(src[x<<1:])
		dst[x] = blt.Pixel{
			Blue:  uint8(v&0x1f) << 3,
			Green: uint8(v>>5&0x1f) << 3,
			Red:   uint8(v>>10&0x1f) << 3,
		}
	}
	return nil
}

func expand565(dst []blt.Pixel, src []byte, _ []blt.Pixel) error {
	for x := range dst {
		v := binary.LittleEndian.Uint16(src[x<<1:])
		dst[x] = blt.Pixel{
			Blue:  uint8(v&0x1f) << 3,
			Green: uint8(v>>5&0x3f) << 2,
			Red:   uint8(v>>11&0x1f) << 3,
		}
	}
	return nil
}

func expand4444(dst []blt.Pixel, src []byte, _ []blt.Pixel) error {
	for x := range dst {
		v := binary.LittleEndian.Uint16(src[x<<1:])
		dst[x] = blt.Pixel{
			Blue:  uint8(v&0x0f) << 4,
			Green: uint8(v>>4&0x0f) << 4,
			Red:   uint8(v>>8&0x0f) << 4,
		}
	}
	return nil
}

func expand888(dst []blt.Pixel, src []byte, _ []blt.Pixel) error {
	for x := range dst {
		p := src[x*3 : x*3+3]
		dst[x] = blt.Pixel{Blue: p[0], Green: p[1], Red: p[2]}
	}
	return nil
}

func expand8888(dst []blt.Pixel, src []byte, _ []blt.Pixel) error {
	for x := range dst {
		p := src[x<<2 : x<<2+4]
		dst[x] = blt.Pixel{Blue: p[0], Green: p[1], Red: p[2]}
	}
	return nil
}

func (l Layout) expander() expandFunc {
	switch l {
	case Indexed1:
		return expandIndexed1
	case Indexed4:
		return expandIndexed4
	case Indexed8:
		return expandIndexed8
	case Direct1555:
		return expand1555
	case Direct565:
		return expand565
	case Direct4444:
		return expand4444
	case Direct888:
		return expand888
	case Direct8888:
		return expand8888
	}
	return nil
}

func (d *decoder) readPalette() {
	start := fileHeaderSize + d.header.InfoSize
	d.palette = make([]blt.Pixel, d.header.ColorMapSize)
	for i := range d.palette {
		e := d.b[start+i*paletteEntry:]
		d.palette[i] = blt.Pixel{Blue: e[0], Green: e[1], Red: e[2]}
	}
}

// flipRows returns a copy of height rows of stride bytes in reverse order.
func flipRows(data []byte, stride, height int) []byte {
	tmp := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		copy(tmp[y*stride:(y+1)*stride], data[(height-1-y)*stride:])
	}
	return tmp
}

func (d *decoder) decode(configOnly bool) error {
	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	h := &d.header

	total := d.header.stride() * uint64(h.Height)
	if total > math.MaxUint32 {
		return fmt.Errorf("bmp: pixel data: %w", blt.ErrTooLarge)
	}
	if h.Offset > len(d.b) || uint64(len(d.b)-h.Offset) < total {
		return errNotEnough
	}

	stride := int(d.header.stride())
	data := d.b[h.Offset : h.Offset+int(total)]

	if h.Layout.Indexed() {
		d.readPalette()
	}

	// Rows are expanded last to first, so an inverted image is put back in
	// the default bottom-up order first
	if h.Inverted {
		data = flipRows(data, stride, h.Height)
		h.Inverted = false
	}

	var err error
	if d.image, err = blt.NewBuffer(h.Width, h.Height); err != nil {
		return err
	}

	expand := h.Layout.expander()
	for y := 0; y < h.Height; y++ {
		if err := expand(d.image.Row(h.Height-1-y), data[y*stride:(y+1)*stride], d.palette); err != nil {
			d.image = nil
			return err
		}
	}

	d.palette = nil

	return nil
}

func newDecoder(b []byte, logger *log.Logger) *decoder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &decoder{b: b, logger: logger}
}

// Decode decodes the BMP image in b. b is not modified.
func Decode(b []byte, logger *log.Logger) (*blt.Buffer, error) {
	d := newDecoder(b, logger)
	if err := d.decode(false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the header of the BMP image in b without decoding
// any pixel data.
func DecodeConfig(b []byte) (Header, error) {
	d := newDecoder(b, nil)
	if err := d.decode(true); err != nil {
		return Header{}, err
	}
	return d.header, nil
}
