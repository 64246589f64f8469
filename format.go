package splash

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/bodgit/splash/blt"
	"github.com/bodgit/splash/bmp"
	"github.com/bodgit/splash/qoi"
)

// Format identifies an encoded image format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatBMP
	FormatQOI
)

var formatNames = [...]string{"unknown", "bmp", "qoi"}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned for bytes that carry neither a BMP nor a QOI
// signature.
var ErrUnknownFormat = errors.New("splash: unknown image format")

var (
	bmpMagic = []byte("BM")
	qoiMagic = []byte("qoif")
)

// DetectFormat sniffs the leading signature of b.
func DetectFormat(b []byte) Format {
	switch {
	case bytes.HasPrefix(b, bmpMagic):
		return FormatBMP
	case bytes.HasPrefix(b, qoiMagic):
		return FormatQOI
	}
	return FormatUnknown
}

// Decode decodes b with the decoder matching its signature.
func Decode(b []byte, logger *log.Logger) (*blt.Buffer, Format, error) {
	f := DetectFormat(b)

	var m *blt.Buffer
	var err error
	switch f {
	case FormatBMP:
		m, err = bmp.Decode(b, logger)
	case FormatQOI:
		m, err = qoi.Decode(b, logger)
	default:
		return nil, f, ErrUnknownFormat
	}

	return m, f, err
}
