/*
Package record implements a blt.Surface that keeps a copy of what is drawn on
it as a sequence of frames which can be written out as an animated GIF.

Transfers only change the framebuffer. Frames are captured by Pause, which
has the signature of the effect engine's Sleep hook so a frame is taken at
each pacing boundary of an effect rather than after every transfer. Frames
with no more than 256 colors keep their exact colors, anything else is
reduced with a median cut quantizer.
*/
package record

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"log"
	"time"

	"github.com/bodgit/splash/blt"
	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

// DefaultDelay is the delay after each frame in 100ths of a second.
const DefaultDelay = 2

var errNoFrames = errors.New("record: no frames")

// Recorder is a Surface backed by a blt.Framebuffer.
type Recorder struct {
	fb     *blt.Framebuffer
	logger *log.Logger
	every  int
	count  int
	drawn  bool // since the last boundary
	dirty  bool // since the last frame
	frames []*image.Paletted

	// Delay is the delay after each frame in 100ths of a second.
	Delay int
}

// New returns a Recorder drawing onto fb that captures a frame on every nth
// call to Pause. An n less than one captures on every call.
func New(fb *blt.Framebuffer, n int, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if n < 1 {
		n = 1
	}
	return &Recorder{
		fb:     fb,
		logger: logger,
		every:  n,
		Delay:  DefaultDelay,
	}
}

// Blt implements the blt.Surface interface.
func (r *Recorder) Blt(buf []blt.Pixel, op blt.Operation, srcX, srcY, dstX, dstY, width, height, delta int) error {
	if err := r.fb.Blt(buf, op, srcX, srcY, dstX, dstY, width, height, delta); err != nil {
		return err
	}

	if op == blt.VideoToBuffer {
		return nil
	}

	r.drawn = true
	r.dirty = true

	return nil
}

// Pause marks a frame boundary. Boundaries with no transfers since the last
// boundary are ignored.
func (r *Recorder) Pause(time.Duration) {
	if !r.drawn {
		return
	}
	r.drawn = false
	r.count++
	if r.count%r.every == 0 {
		r.Snapshot()
	}
}

func countColors(m image.Image) map[color.Color]int {
	b := m.Bounds()
	colors := make(map[color.Color]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[m.At(x, y)]++
		}
	}
	return colors
}

func palette(m image.Image) color.Palette {
	colors := countColors(m)
	if len(colors) > maxColors {
		q := quantize.MedianCutQuantizer{}
		return q.Quantize(make(color.Palette, 0, maxColors), m)
	}

	p := make(color.Palette, 0, len(colors))
	for c := range colors {
		p = append(p, c)
	}
	return p
}

// Snapshot captures the current contents of the framebuffer as a frame.
func (r *Recorder) Snapshot() {
	b := r.fb.Bounds()
	pm := image.NewPaletted(b, palette(&r.fb.Buffer))
	draw.Draw(pm, b, &r.fb.Buffer, b.Min, draw.Src)

	r.frames = append(r.frames, pm)
	r.dirty = false

	r.logger.Printf("record: frame %d at boundary %d, %d colors", len(r.frames), r.count, len(pm.Palette))
}

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int {
	return len(r.frames)
}

// Encode writes the captured frames to w as an animated GIF. If the
// framebuffer has changed since the last frame, a final frame is captured
// first so the animation always ends on what is on the surface.
func (r *Recorder) Encode(w io.Writer) error {
	if r.dirty {
		r.Snapshot()
	}
	if len(r.frames) == 0 {
		return errNoFrames
	}

	g := &gif.GIF{
		Image: r.frames,
		Delay: make([]int, len(r.frames)),
	}
	for i := range g.Delay {
		g.Delay[i] = r.Delay
	}

	return gif.EncodeAll(w, g)
}
