package effect

import "github.com/bodgit/splash/blt"

// FadeDirection selects whether a fade brightens or darkens.
type FadeDirection int

// Fade directions.
const (
	FadeIn FadeDirection = iota
	FadeOut
)

// Levels is the number of discrete fade steps.
const Levels = 256

func scale(c uint8, level uint8) uint8 {
	return uint8((uint(c)*uint(level) + 127) / 255)
}

// FadeLevel writes src scaled to level/255 brightness into dst. Level 0 is
// black and level 255 reproduces src exactly.
func FadeLevel(dst, src []blt.Pixel, level uint8) {
	for i, p := range src {
		dst[i] = blt.Pixel{
			Blue:  scale(p.Blue, level),
			Green: scale(p.Green, level),
			Red:   scale(p.Red, level),
		}
	}
}

// Fade draws buf into r once per level, counting up from black for FadeIn
// or down to black for FadeOut.
func (e *Engine) Fade(buf *blt.Buffer, r blt.Rect, dir FadeDirection) error {
	if err := checkGeometry(buf, r); err != nil {
		return err
	}

	e.logger.Printf("effect: fade %v %dx%d at %v", dir, buf.Width, buf.Height, r)

	frame := make([]blt.Pixel, len(buf.Pix))
	for i := 0; i < Levels; i++ {
		level := uint8(i)
		if dir == FadeOut {
			level = uint8(Levels - 1 - i)
		}
		FadeLevel(frame, buf.Pix, level)
		if err := blt.Draw(e.surface, frame, r); err != nil {
			return err
		}
		e.pause(e.FadeDelay)
	}

	return nil
}

func (d FadeDirection) String() string {
	if d == FadeOut {
		return "out"
	}
	return "in"
}
