package qoi

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"math/bits"
	"testing"

	"github.com/bodgit/splash/blt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xqoi "github.com/xfmoulet/qoi"
)

var header = []byte("qoif\x00\x00\x00\x02\x00\x00\x00\x01\x03\x00")

func fakeCodec(pix []byte, width, height uint32, err error) (Codec, *int) {
	calls := new(int)
	return func(b []byte, channels int) ([]byte, Descriptor, error) {
		*calls++
		if channels != 3 {
			return nil, Descriptor{}, errors.New("wrong channel count")
		}
		return pix, Descriptor{
			Width:    bits.ReverseBytes32(width),
			Height:   bits.ReverseBytes32(height),
			Channels: 3,
		}, err
	}, calls
}

func testImage(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: uint8(x ^ y*9), A: 0xff})
		}
	}
	return m
}

func TestDecodeSwapsDimensions(t *testing.T) {
	codec, calls := fakeCodec([]byte{1, 2, 3, 4, 5, 6}, 2, 1, nil)

	m, err := NewDecoder(codec, nil).Decode(header)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 1, m.Height)
	assert.Equal(t, []blt.Pixel{{Blue: 3, Green: 2, Red: 1}, {Blue: 6, Green: 5, Red: 4}}, m.Pix)
}

func TestDecodeErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name          string
		b             []byte
		pix           []byte
		width, height uint32
		codecErr      error
		err           error
		calls         int
	}{
		{"bad magic", []byte("qoix\x00\x00"), nil, 1, 1, nil, ErrFormat, 0},
		{"short", []byte("qo"), nil, 1, 1, nil, ErrFormat, 0},
		{"codec failure", header, nil, 1, 1, boom, boom, 1},
		{"zero width", header, nil, 0, 1, nil, errDimensions, 1},
		{"overflow", header, make([]byte, 3), 0xffffffff, 0xffffffff, nil, blt.ErrTooLarge, 1},
		{"short pixels", header, make([]byte, 5), 2, 1, nil, errShort, 1},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			codec, calls := fakeCodec(table.pix, table.width, table.height, table.codecErr)
			m, err := NewDecoder(codec, nil).Decode(table.b)
			assert.ErrorIs(t, err, table.err)
			assert.Nil(t, m)
			assert.Equal(t, table.calls, *calls)
		})
	}
}

func TestDecode(t *testing.T) {
	src := testImage(5, 3)

	var b bytes.Buffer
	require.NoError(t, xqoi.Encode(&b, src))

	var out bytes.Buffer
	m, err := Decode(b.Bytes(), log.New(&out, "", 0))
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), m.Bounds())
	assert.Len(t, m.Pix, 5*3)

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			c := src.NRGBAAt(x, y)
			assert.Equal(t, blt.Pixel{Blue: c.B, Green: c.G, Red: c.R}, m.PixelAt(x, y))
		}
	}

	assert.Contains(t, out.String(), "qoi: 5x3")
}

func TestDefaultCodec(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, xqoi.Encode(&b, testImage(4, 2)))

	pix, desc, err := DefaultCodec(b.Bytes(), 4)
	require.NoError(t, err)
	assert.Equal(t, bits.ReverseBytes32(4), desc.Width)
	assert.Equal(t, bits.ReverseBytes32(2), desc.Height)
	assert.Len(t, pix, 4*2*4)
	assert.Equal(t, uint8(0xff), pix[3])

	_, _, err = DefaultCodec(b.Bytes()[:10], 3)
	assert.ErrorIs(t, err, errHeader)

	_, _, err = DefaultCodec(b.Bytes(), 2)
	assert.Error(t, err)
}
