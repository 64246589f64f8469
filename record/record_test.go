package record

import (
	"bytes"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/bodgit/splash/blt"
	"github.com/bodgit/splash/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorder(t *testing.T, w, h, n int) *Recorder {
	t.Helper()
	fb, err := blt.NewFramebuffer(w, h)
	require.NoError(t, err)
	return New(fb, n, nil)
}

func TestRecorder(t *testing.T) {
	r := newRecorder(t, 4, 4, 3)

	for i := 0; i < 7; i++ {
		require.NoError(t, blt.Fill(r, blt.Pixel{Red: uint8(i * 30)}, blt.RectAt(0, 0, 4, 4)))
		// Transfers alone never capture
		assert.Equal(t, i/3, r.Frames())
		r.Pause(time.Millisecond)
	}
	assert.Equal(t, 2, r.Frames())

	// Reads don't change the surface
	_, err := blt.Read(r, blt.RectAt(0, 0, 2, 2))
	require.NoError(t, err)

	// Failed transfers don't either
	assert.Error(t, blt.Fill(r, blt.Pixel{}, blt.RectAt(3, 3, 2, 2)))

	// Neither do boundaries with nothing drawn
	for i := 0; i < 5; i++ {
		r.Pause(0)
	}
	assert.Equal(t, 2, r.Frames())

	b := new(bytes.Buffer)
	require.NoError(t, r.Encode(b))
	assert.Equal(t, 3, r.Frames())

	g, err := gif.DecodeAll(b)
	require.NoError(t, err)
	require.Len(t, g.Image, 3)
	assert.Equal(t, []int{DefaultDelay, DefaultDelay, DefaultDelay}, g.Delay)

	// The last frame is the final state of the surface
	assert.Equal(t, color.RGBA{R: 180, A: 0xff}, color.RGBAModel.Convert(g.Image[2].At(1, 1)))
	assert.Equal(t, color.RGBA{R: 60, A: 0xff}, color.RGBAModel.Convert(g.Image[0].At(3, 3)))
}

func TestRecorderEffects(t *testing.T) {
	src, err := blt.NewBuffer(6, 5)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = blt.Pixel{Red: uint8(i * 8), Green: 0x80}
	}
	r := blt.RectAt(3, 2, 6, 5)

	tests := []struct {
		name   string
		run    func(*effect.Engine) error
		frames int
	}{
		{"clockwise", func(e *effect.Engine) error { return e.ClockWipe(src, r, effect.Clockwise) }, len(effect.Perimeter(6, 5, effect.Clockwise))},
		{"counter-clockwise", func(e *effect.Engine) error { return e.ClockWipe(src, r, effect.CounterClockwise) }, len(effect.Perimeter(6, 5, effect.CounterClockwise))},
		{"fade", func(e *effect.Engine) error { return e.Fade(src, r, effect.FadeIn) }, effect.Levels},
		{"rainfall", func(e *effect.Engine) error { return e.Rainfall(src, r, effect.TopToBottom) }, 5},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			rec := newRecorder(t, 16, 12, 1)
			e := effect.New(rec, nil)
			e.Sleep = rec.Pause

			require.NoError(t, table.run(e))
			assert.Equal(t, table.frames, rec.Frames())

			// The last boundary already captured the final state
			require.NoError(t, rec.Encode(new(bytes.Buffer)))
			assert.Equal(t, table.frames, rec.Frames())
		})
	}

	rec := newRecorder(t, 16, 12, 4)
	e := effect.New(rec, nil)
	e.Sleep = rec.Pause
	require.NoError(t, e.Rainfall(src, r, effect.BottomToTop))
	assert.Equal(t, 1, rec.Frames())
	require.NoError(t, rec.Encode(new(bytes.Buffer)))
	assert.Equal(t, 2, rec.Frames())
}

func TestRecorderExactColors(t *testing.T) {
	r := newRecorder(t, 3, 2, 1)

	src := []blt.Pixel{
		{Red: 255}, {Green: 255}, {Blue: 255},
		{Red: 1, Green: 2, Blue: 3}, {}, {Red: 255, Green: 255, Blue: 255},
	}
	require.NoError(t, blt.Draw(r, src, blt.RectAt(0, 0, 3, 2)))
	require.Equal(t, 1, r.Frames())

	b := new(bytes.Buffer)
	require.NoError(t, r.Encode(b))
	assert.Equal(t, 1, r.Frames())

	g, err := gif.DecodeAll(b)
	require.NoError(t, err)
	for i, p := range src {
		assert.Equal(t, p, blt.PixelModel.Convert(g.Image[0].At(i%3, i/3)))
	}
}

func TestRecorderQuantizes(t *testing.T) {
	r := newRecorder(t, 32, 32, 1)

	buf, err := blt.NewBuffer(32, 32)
	require.NoError(t, err)
	for i := range buf.Pix {
		buf.Pix[i] = blt.Pixel{Red: uint8(i), Green: uint8(i >> 2), Blue: uint8(i >> 4)}
	}
	require.NoError(t, blt.Draw(r, buf.Pix, blt.RectAt(0, 0, 32, 32)))

	require.Len(t, r.frames, 1)
	assert.LessOrEqual(t, len(r.frames[0].Palette), maxColors)

	assert.NoError(t, r.Encode(new(bytes.Buffer)))
}

func TestRecorderEmpty(t *testing.T) {
	r := newRecorder(t, 2, 2, 0)
	assert.Equal(t, 1, r.every)
	assert.ErrorIs(t, r.Encode(new(bytes.Buffer)), errNoFrames)
}
