/*
Package bmp implements a BMP decoder producing blt buffers.

The file starts with a 14 byte file header followed by a 40 byte information
header. For 16 bits per pixel with bit-field compression a record of four
channel masks follows, and for 8 or fewer bits per pixel a palette of 4 byte
blue, green, red, reserved entries sits between the headers and the pixel
data. Pixel rows are padded to a multiple of 4 bytes and are stored bottom
row first unless the height is negative.

Supported layouts are 1, 4 and 8 bit indexed color, 16 bit 1-5-5-5, 5-6-5 and
4-4-4-4, 24 bit and 32 bit. Run-length encoded and embedded JPEG/PNG images
are not supported.
*/
package bmp

import "fmt"

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	headerSize     = fileHeaderSize + infoHeaderSize
	masksSize      = 16
	paletteEntry   = 4
)

const magic = "BM"

// Compression is the compression kind recorded in the information header.
type Compression uint32

// Known compression kinds. Only CompressionRGB and CompressionBitfields can
// be decoded.
const (
	CompressionRGB Compression = iota
	CompressionRLE8
	CompressionRLE4
	CompressionBitfields
	CompressionJPEG
	CompressionPNG
	CompressionRGBA
	CompressionCMYK
	CompressionCMYKRLE8
	CompressionCMYKRLE4
)

var compressionNames = [...]string{
	"RGB", "RLE8", "RLE4", "Bitfields", "JPEG", "PNG", "RGBA", "CMYK", "CMYKRLE8", "CMYKRLE4",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", uint32(c))
}

// Layout identifies how the bits of one source pixel map to a color.
type Layout int

// The closed set of pixel layouts the decoder can expand.
const (
	Indexed1 Layout = iota
	Indexed4
	Indexed8
	Direct1555
	Direct565
	Direct4444
	Direct888
	Direct8888
)

var layoutNames = [...]string{
	"Indexed1", "Indexed4", "Indexed8", "Direct1555", "Direct565", "Direct4444", "Direct888", "Direct8888",
}

func (l Layout) String() string {
	if l >= 0 && int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Indexed reports whether pixels in this layout are palette indices.
func (l Layout) Indexed() bool {
	return l == Indexed1 || l == Indexed4 || l == Indexed8
}
