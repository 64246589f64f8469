package effect

import "github.com/bodgit/splash/blt"

// Direction is the order in which rainfall reveals rows.
type Direction int

// Rainfall directions.
const (
	TopToBottom Direction = iota
	BottomToTop
)

func (d Direction) String() string {
	if d == BottomToTop {
		return "bottom to top"
	}
	return "top to bottom"
}

// Rainfall reveals buf in r one source row per pass. For TopToBottom, pass
// r copies source row r onto every destination row from the bottom edge up
// to and including row r, so later passes overwrite all but the row they
// leave behind. BottomToTop is the mirror image.
func (e *Engine) Rainfall(buf *blt.Buffer, r blt.Rect, dir Direction) error {
	if err := checkGeometry(buf, r); err != nil {
		return err
	}

	e.logger.Printf("effect: rainfall %v %dx%d at %v", dir, buf.Width, buf.Height, r)

	last := buf.Height - 1
	for pass := 0; pass < buf.Height; pass++ {
		row := pass
		if dir == BottomToTop {
			row = last - pass
		}
		src := buf.Row(row)

		for i := 0; i < buf.Height-pass; i++ {
			y := last - i
			if dir == BottomToTop {
				y = i
			}
			if err := blt.Draw(e.surface, src, blt.RectAt(r.Left, r.Top+uint(y), uint(buf.Width), 1)); err != nil {
				return err
			}
		}

		e.pause(e.RainDelay)
	}

	return nil
}
