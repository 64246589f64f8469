package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrFormat is returned when the data does not start with a BMP
	// signature.
	ErrFormat = errors.New("bmp: invalid format")
	// ErrUnsupported is returned for a bits per pixel, compression or
	// channel mask combination that cannot be decoded.
	ErrUnsupported = errors.New("bmp: unsupported pixel layout")

	errNotEnough   = errors.New("bmp: not enough image data")
	errFileSize    = errors.New("bmp: declared file size too small")
	errOffset      = errors.New("bmp: pixel data offset out of range")
	errDimensions  = errors.New("bmp: invalid dimensions")
	errBadPalette  = errors.New("bmp: invalid palette index")
	errInfoTooLong = errors.New("bmp: information header overlaps pixel data")
)

// rawHeader is the file header and information header exactly as stored.
type rawHeader struct {
	Type            [2]byte
	Size            uint32
	Reserved1       uint16
	Reserved2       uint16
	Offset          uint32
	InfoSize        uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	UsedColors      uint32
	ImportantColors uint32
}

// masks is the bit-field record following the headers.
type masks struct {
	Red   uint32
	Green uint32
	Blue  uint32
	Alpha uint32
}

// Header describes a BMP image. Height is always positive, Inverted records
// that it was negative in the file.
type Header struct {
	Width        int
	Height       int
	BitsPerPixel int
	Layout       Layout
	Compression  Compression
	ColorMapSize int
	Inverted     bool

	// Offset is the position of the pixel data, FileSize the file size
	// declared by the file header.
	Offset   int
	FileSize int
	InfoSize int

	// ImageSize is w*h*(bpp/8), plus h*(bpp/8) when the width is odd. It
	// is informational only, decoding always uses the padded row stride.
	// It saturates at math.MaxUint64.
	ImageSize uint64
}

// imageSize returns (w+w%2)*h*(bpp/8) without wrapping.
func imageSize(width, height, bpp int) uint64 {
	w := uint64(width)
	if width%2 != 0 {
		w++
	}
	hi, lo := bits.Mul64(w, uint64(height))
	if hi != 0 {
		return math.MaxUint64
	}
	if hi, lo = bits.Mul64(lo, uint64(bpp/8)); hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// stride returns the length in bytes of one padded pixel row.
func (h *Header) stride() uint64 {
	return ((uint64(h.Width)*uint64(h.BitsPerPixel) + 31) >> 5) << 2
}

func classify(bpp uint16, c Compression, m *masks) (Layout, error) {
	switch bpp {
	case 1:
		return Indexed1, nil
	case 4:
		return Indexed4, nil
	case 8:
		return Indexed8, nil
	case 16:
		if c != CompressionBitfields {
			return Direct1555, nil
		}
		switch {
		case m.Red == 0xf800 && m.Green == 0x07e0 && m.Blue == 0x001f:
			return Direct565, nil
		case m.Red == 0x0f00 && m.Green == 0x00f0 && m.Blue == 0x000f:
			return Direct4444, nil
		}
	case 24:
		return Direct888, nil
	case 32:
		return Direct8888, nil
	}
	return 0, ErrUnsupported
}

func (d *decoder) readHeader() error {
	if len(d.b) < len(magic) || string(d.b[:len(magic)]) != magic {
		return ErrFormat
	}
	if len(d.b) < headerSize {
		return errNotEnough
	}

	var raw rawHeader
	if err := binary.Read(bytes.NewReader(d.b[:headerSize]), binary.LittleEndian, &raw); err != nil {
		return err
	}

	if raw.Size <= headerSize {
		return errFileSize
	}
	if raw.Offset < headerSize || raw.Offset >= raw.Size {
		return errOffset
	}
	if raw.InfoSize < infoHeaderSize {
		return ErrUnsupported
	}

	h := Header{
		Width:        int(raw.Width),
		Height:       int(raw.Height),
		BitsPerPixel: int(raw.BitsPerPixel),
		Compression:  Compression(raw.Compression),
		Offset:       int(raw.Offset),
		FileSize:     int(raw.Size),
		InfoSize:     int(raw.InfoSize),
	}

	if h.Height < 0 {
		h.Inverted = true
		h.Height = -h.Height
	}
	if h.Width <= 0 || h.Height <= 0 {
		return errDimensions
	}

	h.ImageSize = imageSize(h.Width, h.Height, h.BitsPerPixel)

	var m masks
	switch h.Compression {
	case CompressionRGB:
	case CompressionBitfields:
		if len(d.b) < headerSize+masksSize {
			return errNotEnough
		}
		if err := binary.Read(bytes.NewReader(d.b[headerSize:headerSize+masksSize]), binary.LittleEndian, &m); err != nil {
			return err
		}
		d.logger.Printf("bmp: red mask 0x%08x, green mask 0x%08x, blue mask 0x%08x, alpha mask 0x%08x", m.Red, m.Green, m.Blue, m.Alpha)
	default:
		return ErrUnsupported
	}

	layout, err := classify(raw.BitsPerPixel, h.Compression, &m)
	if err != nil {
		return err
	}
	h.Layout = layout

	if layout.Indexed() {
		if fileHeaderSize+h.InfoSize > h.Offset {
			return errInfoTooLong
		}
		h.ColorMapSize = (h.Offset - fileHeaderSize - h.InfoSize) / paletteEntry
	}

	d.header = h

	d.logger.Printf("bmp: %dx%d, %d bpp (%v), compression %v, image size %d, inverted %t", h.Width, h.Height, h.BitsPerPixel, h.Layout, h.Compression, h.ImageSize, h.Inverted)

	return nil
}
