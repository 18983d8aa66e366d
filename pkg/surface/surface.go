package surface

import (
	"fmt"
	"image"
)

// Surface is the host-canonical pixel buffer: 8-bit RGBA in R,G,B,A
// byte order, row-major with an explicit stride. It is the
// representation every plugin input and output passes through,
// whatever colour model the plugin itself declares.
//
// Stride is in bytes and may exceed 4*Width (e.g. a view into a larger
// image); rows start every Stride bytes in Pix.
type Surface struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// New allocates a surface with tight rows (Stride == 4*Width).
func New(width, height int) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		Stride: 4 * width,
		Pix:    make([]byte, 4*width*height),
	}
}

// FromRGBA wraps an image.RGBA without copying. The surface aliases
// the image's pixel buffer, stride included; a subimage view keeps its
// parent's stride and starts at its own origin.
func FromRGBA(img *image.RGBA) *Surface {
	b := img.Bounds()
	return &Surface{
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
	}
}

// RGBA returns an image.RGBA sharing the surface's pixel buffer.
func (s *Surface) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pix,
		Stride: s.Stride,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// row returns the pixel bytes of row y, exactly 4*Width long.
func (s *Surface) row(y int) []byte {
	off := y * s.Stride
	return s.Pix[off : off+4*s.Width]
}

// tight reports whether rows are contiguous, making Pix itself a
// packed RGBA frame.
func (s *Surface) tight() bool {
	return s.Stride == 4*s.Width
}

func (s *Surface) validate() error {
	if s == nil {
		return fmt.Errorf("nil surface")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("surface %dx%d: both axes must be positive", s.Width, s.Height)
	}
	if s.Stride < 4*s.Width {
		return fmt.Errorf("surface stride %d: shorter than row length %d", s.Stride, 4*s.Width)
	}
	if need := (s.Height-1)*s.Stride + 4*s.Width; len(s.Pix) < need {
		return fmt.Errorf("surface buffer %d bytes: need %d", len(s.Pix), need)
	}
	return nil
}
