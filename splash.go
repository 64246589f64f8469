/*
Package splash draws encoded boot splash images onto a display surface.

BMP and QOI images are decoded into a blt.Buffer and transferred to a
blt.Surface, either in one go or through one of the transitions provided by
the effect package. An sqlite backed catalog of encoded images is provided
for applications that need somewhere to keep them.
*/
package splash

import (
	"io"
	"log"

	"github.com/bodgit/splash/blt"
	"github.com/bodgit/splash/bmp"
	"github.com/bodgit/splash/effect"
	"github.com/bodgit/splash/qoi"
)

// Splash draws images onto a single surface.
type Splash struct {
	surface blt.Surface
	logger  *log.Logger
	effects *effect.Engine
	qoi     *qoi.Decoder
}

// New returns a Splash drawing to surface.
func New(surface blt.Surface, logger *log.Logger) *Splash {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Splash{
		surface: surface,
		logger:  logger,
		effects: effect.New(surface, logger),
		qoi:     qoi.NewDecoder(qoi.DefaultCodec, logger),
	}
}

// Effects returns the engine used by Show so its pacing can be adjusted.
func (s *Splash) Effects() *effect.Engine {
	return s.effects
}

func (s *Splash) draw(m *blt.Buffer, x, y uint) (blt.Rect, error) {
	r := blt.RectAt(x, y, uint(m.Width), uint(m.Height))
	if err := blt.Draw(s.surface, m.Pix, r); err != nil {
		return blt.Rect{}, err
	}
	s.logger.Printf("splash: drew %dx%d image at %v", m.Width, m.Height, r)
	return r, nil
}

// DrawBMP decodes the BMP image in b and draws it with its top-left corner
// at (x, y). It returns the rectangle that was drawn.
func (s *Splash) DrawBMP(b []byte, x, y uint) (blt.Rect, error) {
	m, err := bmp.Decode(b, s.logger)
	if err != nil {
		return blt.Rect{}, err
	}
	return s.draw(m, x, y)
}

// DrawQOI decodes the QOI image in b and draws it with its top-left corner
// at (x, y). It returns the rectangle that was drawn.
func (s *Splash) DrawQOI(b []byte, x, y uint) (blt.Rect, error) {
	m, err := s.qoi.Decode(b)
	if err != nil {
		return blt.Rect{}, err
	}
	return s.draw(m, x, y)
}

func (s *Splash) decode(b []byte) (*blt.Buffer, error) {
	switch DetectFormat(b) {
	case FormatBMP:
		return bmp.Decode(b, s.logger)
	case FormatQOI:
		return s.qoi.Decode(b)
	}
	return nil, ErrUnknownFormat
}

// Draw is like DrawBMP or DrawQOI depending on the signature of b.
func (s *Splash) Draw(b []byte, x, y uint) (blt.Rect, error) {
	m, err := s.decode(b)
	if err != nil {
		return blt.Rect{}, err
	}
	return s.draw(m, x, y)
}

// Show decodes b and reveals it at (x, y) using transition t.
func (s *Splash) Show(b []byte, x, y uint, t effect.Transition) (blt.Rect, error) {
	m, err := s.decode(b)
	if err != nil {
		return blt.Rect{}, err
	}

	r := blt.RectAt(x, y, uint(m.Width), uint(m.Height))
	if err := s.effects.Run(t, m, r); err != nil {
		return blt.Rect{}, err
	}
	s.logger.Printf("splash: showed %dx%d image at %v with %v", m.Width, m.Height, r, t)

	return r, nil
}
