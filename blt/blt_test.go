package blt

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) []Pixel {
	p := make([]Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p[y*w+x] = Pixel{Blue: uint8(x), Green: uint8(y), Red: uint8(x + y)}
		}
	}
	return p
}

type call struct {
	op                           Operation
	srcX, srcY, dstX, dstY, w, h int
	delta, n                     int
}

type spySurface struct {
	calls []call
}

func (s *spySurface) Blt(buf []Pixel, op Operation, srcX, srcY, dstX, dstY, width, height, delta int) error {
	s.calls = append(s.calls, call{op, srcX, srcY, dstX, dstY, width, height, delta, len(buf)})
	return nil
}

func TestRect(t *testing.T) {
	r := RectAt(10, 20, 64, 40)
	assert.Equal(t, Rect{10, 20, 73, 59}, r)
	assert.Equal(t, uint(64), r.Width())
	assert.Equal(t, uint(40), r.Height())
	assert.True(t, r.Valid())

	assert.Equal(t, Rect{15, 22, 78, 61}, r.Offset(5, 2))
	assert.Equal(t, Rect{12, 21, 71, 58}, r.Shrink(2, 1))
	assert.False(t, RectAt(0, 0, 2, 2).Shrink(1, 1).Shrink(1, 1).Valid())
	assert.Equal(t, "(10,20)-(73,59)", r.String())
}

func TestSize(t *testing.T) {
	n, err := Size(64, 40)
	require.NoError(t, err)
	assert.Equal(t, 64*40*PixelSize, n)

	_, err = Size(math.MaxUint32, math.MaxUint32)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Size(math.MaxUint64, 2)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Size(maxAddressable/PixelSize+1, 1)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNewBuffer(t *testing.T) {
	b, err := NewBuffer(3, 2)
	require.NoError(t, err)
	assert.Len(t, b.Pix, 6)
	assert.Equal(t, 3, b.Bounds().Dx())

	_, err = NewBuffer(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewBuffer(math.MaxInt, math.MaxInt)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestBufferImage(t *testing.T) {
	b, err := NewBuffer(2, 2)
	require.NoError(t, err)

	b.Set(1, 0, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	assert.Equal(t, Pixel{Blue: 0x30, Green: 0x20, Red: 0x10}, b.PixelAt(1, 0))
	assert.Equal(t, Pixel{}, b.PixelAt(5, 5))

	r, g, bl, a := b.At(1, 0).RGBA()
	assert.Equal(t, []uint32{0x1010, 0x2020, 0x3030, 0xffff}, []uint32{r, g, bl, a})

	assert.Equal(t, []Pixel{{}, {Blue: 0x30, Green: 0x20, Red: 0x10}}, b.Row(0))
}

func TestDraw(t *testing.T) {
	s := new(spySurface)

	require.NoError(t, Draw(s, gradient(4, 3), RectAt(5, 6, 4, 3)))
	require.NoError(t, Fill(s, Pixel{Red: 1}, RectAt(1, 2, 10, 10)))
	assert.Equal(t, []call{
		{BufferToVideo, 0, 0, 5, 6, 4, 3, 0, 12},
		{VideoFill, 0, 0, 1, 2, 10, 10, 0, 1},
	}, s.calls)

	assert.ErrorIs(t, Draw(s, gradient(2, 2), RectAt(0, 0, 4, 3)), ErrBufferSize)
	assert.ErrorIs(t, Draw(s, gradient(1, 1), Rect{Left: 4, Right: 3}), ErrInvalidRect)
	assert.Len(t, s.calls, 2)
}

func TestFramebuffer(t *testing.T) {
	fb, err := NewFramebuffer(8, 6)
	require.NoError(t, err)

	src := gradient(3, 2)
	require.NoError(t, Draw(fb, src, RectAt(4, 3, 3, 2)))
	assert.Equal(t, src[0], fb.PixelAt(4, 3))
	assert.Equal(t, src[5], fb.PixelAt(6, 4))
	assert.Equal(t, Pixel{}, fb.PixelAt(3, 3))

	got, err := Read(fb, RectAt(4, 3, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, src, got.Pix)

	white := Pixel{0xff, 0xff, 0xff, 0}
	require.NoError(t, Fill(fb, white, RectAt(0, 0, 2, 2)))
	assert.Equal(t, white, fb.PixelAt(1, 1))
	assert.Equal(t, Pixel{}, fb.PixelAt(2, 1))
}

func TestFramebufferStride(t *testing.T) {
	fb, err := NewFramebuffer(4, 4)
	require.NoError(t, err)

	// Copy the 2x2 region at (1, 1) out of a 4 pixel wide buffer
	src := gradient(4, 4)
	require.NoError(t, fb.Blt(src, BufferToVideo, 1, 1, 0, 0, 2, 2, 4*PixelSize))
	assert.Equal(t, src[5], fb.PixelAt(0, 0))
	assert.Equal(t, src[6], fb.PixelAt(1, 0))
	assert.Equal(t, src[9], fb.PixelAt(0, 1))
	assert.Equal(t, src[10], fb.PixelAt(1, 1))

	dst := make([]Pixel, 9)
	require.NoError(t, fb.Blt(dst, VideoToBuffer, 0, 0, 1, 1, 2, 2, 3*PixelSize))
	assert.Equal(t, []Pixel{{}, {}, {}, {}, src[5], src[6], {}, src[9], src[10]}, dst)
}

func TestFramebufferRejects(t *testing.T) {
	fb, err := NewFramebuffer(4, 4)
	require.NoError(t, err)

	pix := gradient(4, 4)
	tests := []struct {
		name                         string
		buf                          []Pixel
		op                           Operation
		srcX, srcY, dstX, dstY, w, h int
		delta                        int
		err                          error
	}{
		{"zero width", pix, BufferToVideo, 0, 0, 0, 0, 0, 1, 0, ErrInvalidParameter},
		{"negative origin", pix, BufferToVideo, 0, 0, -1, 0, 1, 1, 0, ErrInvalidParameter},
		{"off surface", pix, BufferToVideo, 0, 0, 2, 2, 3, 3, 0, ErrInvalidParameter},
		{"off buffer", pix[:3], BufferToVideo, 0, 0, 0, 0, 2, 2, 0, ErrInvalidParameter},
		{"odd delta", pix, BufferToVideo, 0, 0, 0, 0, 2, 2, 3, ErrInvalidParameter},
		{"narrow delta", pix, BufferToVideo, 0, 0, 0, 0, 2, 2, PixelSize, ErrInvalidParameter},
		{"empty fill", nil, VideoFill, 0, 0, 0, 0, 1, 1, 0, ErrInvalidParameter},
		{"read off surface", pix, VideoToBuffer, 3, 3, 0, 0, 2, 2, 0, ErrInvalidParameter},
		{"unknown", pix, Operation(9), 0, 0, 0, 0, 1, 1, 0, ErrUnsupported},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			err := fb.Blt(table.buf, table.op, table.srcX, table.srcY, table.dstX, table.dstY, table.w, table.h, table.delta)
			assert.ErrorIs(t, err, table.err)
		})
	}

	for _, p := range fb.Pix {
		assert.Equal(t, Pixel{}, p)
	}
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "BufferToVideo", BufferToVideo.String())
	assert.Equal(t, "Operation(7)", Operation(7).String())
}
