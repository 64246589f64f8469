package blt

// Framebuffer is an in-memory Surface. It is used wherever there is no
// physical display, the contents can be read back as an image.Image.
type Framebuffer struct {
	Buffer
}

// NewFramebuffer returns a black width by height Framebuffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	b, err := NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{Buffer: *b}, nil
}

func (f *Framebuffer) contains(x, y, width, height int) bool {
	return x <= f.Width-width && y <= f.Height-height
}

// bufferContains reports whether a width by height region at (x, y) fits
// in a buffer of n pixels whose rows are stride pixels long.
func bufferContains(n, stride, x, y, width, height int) bool {
	if x > stride-width || n < x+width {
		return false
	}
	return y+height-1 <= (n-x-width)/stride
}

// Blt implements the Surface interface.
func (f *Framebuffer) Blt(buf []Pixel, op Operation, srcX, srcY, dstX, dstY, width, height, delta int) error {
	if width <= 0 || height <= 0 || srcX < 0 || srcY < 0 || dstX < 0 || dstY < 0 {
		return ErrInvalidParameter
	}
	if delta < 0 || delta%PixelSize != 0 {
		return ErrInvalidParameter
	}

	stride := width
	if delta != 0 {
		stride = delta / PixelSize
	}

	switch op {
	case VideoFill:
		if len(buf) == 0 || !f.contains(dstX, dstY, width, height) {
			return ErrInvalidParameter
		}
		for y := dstY; y < dstY+height; y++ {
			row := f.Pix[y*f.Width+dstX : y*f.Width+dstX+width]
			for x := range row {
				row[x] = buf[0]
			}
		}
	case BufferToVideo:
		if !f.contains(dstX, dstY, width, height) || !bufferContains(len(buf), stride, srcX, srcY, width, height) {
			return ErrInvalidParameter
		}
		for y := 0; y < height; y++ {
			copy(f.Pix[(dstY+y)*f.Width+dstX:][:width], buf[(srcY+y)*stride+srcX:][:width])
		}
	case VideoToBuffer:
		if !f.contains(srcX, srcY, width, height) || !bufferContains(len(buf), stride, dstX, dstY, width, height) {
			return ErrInvalidParameter
		}
		for y := 0; y < height; y++ {
			copy(buf[(dstY+y)*stride+dstX:][:width], f.Pix[(srcY+y)*f.Width+srcX:][:width])
		}
	default:
		return ErrUnsupported
	}

	return nil
}
