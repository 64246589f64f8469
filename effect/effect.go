/*
Package effect implements time-sequenced transitions that reveal a decoded
buffer on a surface: a linear fade, a clock-face wipe and a row-by-row
"rainfall" reveal.

Each transition is a series of ordinary block transfers separated by fixed
pacing delays. The delays block; nothing else runs while an effect is in
progress. The first failed transfer aborts the effect and the surface is
left with whatever the completed steps produced.
*/
package effect

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/bodgit/splash/blt"
)

// Default pacing between frames.
const (
	DefaultFadeDelay = 2 * time.Millisecond
	DefaultWipeDelay = 200 * time.Microsecond
	DefaultRainDelay = 5 * time.Millisecond
)

// ErrGeometry is returned when the destination rectangle is not the same
// size as the buffer.
var ErrGeometry = errors.New("effect: rectangle does not match buffer")

// Engine runs effects against a single surface.
type Engine struct {
	surface blt.Surface
	logger  *log.Logger

	FadeDelay time.Duration // after each fade level
	WipeDelay time.Duration // after each clock wipe line
	RainDelay time.Duration // after each rainfall pass

	// Sleep is called with each delay, it defaults to time.Sleep.
	Sleep func(time.Duration)
}

// New returns an Engine drawing to surface with the default delays.
func New(surface blt.Surface, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		surface:   surface,
		logger:    logger,
		FadeDelay: DefaultFadeDelay,
		WipeDelay: DefaultWipeDelay,
		RainDelay: DefaultRainDelay,
		Sleep:     time.Sleep,
	}
}

func (e *Engine) pause(d time.Duration) {
	if d > 0 {
		e.Sleep(d)
	}
}

func checkGeometry(buf *blt.Buffer, r blt.Rect) error {
	if !r.Valid() || uint64(r.Width()) != uint64(buf.Width) || uint64(r.Height()) != uint64(buf.Height) {
		return ErrGeometry
	}
	return nil
}
