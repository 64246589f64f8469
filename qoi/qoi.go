/*
Package qoi adapts a QOI ("Quite OK Image") codec to produce blt buffers.

The actual decoding is delegated to a Codec. The descriptor a Codec reports
is the header word for word as stored after the magic, read in host byte
order; QOI stores it big-endian so the width and height are byte-swapped by
the adapter before use.
*/
package qoi

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/bits"

	"github.com/bodgit/splash/blt"
)

const (
	magic    = "qoif"
	channels = 3
)

var (
	// ErrFormat is returned when the data does not start with the QOI
	// magic.
	ErrFormat = errors.New("qoi: invalid format")

	errDimensions = errors.New("qoi: invalid dimensions")
	errShort      = errors.New("qoi: codec returned short pixel data")
)

// Descriptor is the image description following the magic.
type Descriptor struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// Codec decodes the complete QOI stream in b to tightly packed pixels with
// the requested number of channels, in red, green, blue(, alpha) order.
type Codec func(b []byte, channels int) ([]byte, Descriptor, error)

// Decoder converts QOI images to blt buffers.
type Decoder struct {
	codec  Codec
	logger *log.Logger
}

// NewDecoder returns a Decoder using codec, or DefaultCodec if codec is nil.
func NewDecoder(codec Codec, logger *log.Logger) *Decoder {
	if codec == nil {
		codec = DefaultCodec
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Decoder{
		codec:  codec,
		logger: logger,
	}
}

// Decode decodes the QOI image in b.
func (d *Decoder) Decode(b []byte) (*blt.Buffer, error) {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return nil, ErrFormat
	}

	pix, desc, err := d.codec(b, channels)
	if err != nil {
		return nil, fmt.Errorf("qoi: %w", err)
	}

	desc.Width = bits.ReverseBytes32(desc.Width)
	desc.Height = bits.ReverseBytes32(desc.Height)

	d.logger.Printf("qoi: %dx%d, %d channels, colorspace %d", desc.Width, desc.Height, desc.Channels, desc.Colorspace)

	if desc.Width == 0 || desc.Height == 0 {
		return nil, errDimensions
	}

	// Check the size before anything is allocated
	if _, err := blt.Size(uint64(desc.Width), uint64(desc.Height)); err != nil {
		return nil, err
	}

	if uint64(len(pix)) != uint64(desc.Width)*uint64(desc.Height)*channels {
		return nil, errShort
	}

	m, err := blt.NewBuffer(int(desc.Width), int(desc.Height))
	if err != nil {
		return nil, err
	}

	for i := range m.Pix {
		p := pix[i*channels : i*channels+channels]
		m.Pix[i] = blt.Pixel{Blue: p[2], Green: p[1], Red: p[0]}
	}

	return m, nil
}

// Decode decodes the QOI image in b using DefaultCodec.
func Decode(b []byte, logger *log.Logger) (*blt.Buffer, error) {
	return NewDecoder(nil, logger).Decode(b)
}
