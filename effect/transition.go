package effect

import (
	"fmt"

	"github.com/bodgit/splash/blt"
)

// Transition names one of the effects with its direction.
type Transition int

// Known transitions. None draws the buffer with a single transfer.
const (
	None Transition = iota
	FadeInTransition
	FadeOutTransition
	WipeClockwise
	WipeCounterClockwise
	RainDown
	RainUp
)

var transitionNames = [...]string{
	"none", "fade-in", "fade-out", "wipe-cw", "wipe-ccw", "rain-down", "rain-up",
}

func (t Transition) String() string {
	if t >= 0 && int(t) < len(transitionNames) {
		return transitionNames[t]
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// Transitions returns the names accepted by ParseTransition.
func Transitions() []string {
	return append([]string(nil), transitionNames[:]...)
}

// ParseTransition returns the Transition called name.
func ParseTransition(name string) (Transition, error) {
	for i, n := range transitionNames {
		if n == name {
			return Transition(i), nil
		}
	}
	return None, fmt.Errorf("effect: unknown transition %q", name)
}

// Run draws buf into r using transition t.
func (e *Engine) Run(t Transition, buf *blt.Buffer, r blt.Rect) error {
	switch t {
	case None:
		if err := checkGeometry(buf, r); err != nil {
			return err
		}
		return blt.Draw(e.surface, buf.Pix, r)
	case FadeInTransition:
		return e.Fade(buf, r, FadeIn)
	case FadeOutTransition:
		return e.Fade(buf, r, FadeOut)
	case WipeClockwise:
		return e.ClockWipe(buf, r, Clockwise)
	case WipeCounterClockwise:
		return e.ClockWipe(buf, r, CounterClockwise)
	case RainDown:
		return e.Rainfall(buf, r, TopToBottom)
	case RainUp:
		return e.Rainfall(buf, r, BottomToTop)
	}
	return fmt.Errorf("effect: unknown transition %v", t)
}
