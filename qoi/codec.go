package qoi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"

	xqoi "github.com/xfmoulet/qoi"
)

const headerSize = 14

var errHeader = errors.New("qoi: not enough header data")

// DefaultCodec decodes b with github.com/xfmoulet/qoi. Channels must be 3 or
// 4.
func DefaultCodec(b []byte, channels int) ([]byte, Descriptor, error) {
	if len(b) < headerSize {
		return nil, Descriptor{}, errHeader
	}
	if channels != 3 && channels != 4 {
		return nil, Descriptor{}, errors.New("qoi: unsupported channel count")
	}

	desc := Descriptor{
		Width:      binary.LittleEndian.Uint32(b[4:]),
		Height:     binary.LittleEndian.Uint32(b[8:]),
		Channels:   b[12],
		Colorspace: b[13],
	}

	m, err := xqoi.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, desc, err
	}

	r := m.Bounds()
	pix := make([]byte, 0, r.Dx()*r.Dy()*channels)

	if n, ok := m.(*image.NRGBA); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := n.Pix[n.PixOffset(r.Min.X, y):n.PixOffset(r.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				pix = append(pix, row[i:i+channels]...)
			}
		}
		return pix, desc, nil
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pix = append(pix, []byte{c.R, c.G, c.B, c.A}[:channels]...)
		}
	}

	return pix, desc, nil
}
