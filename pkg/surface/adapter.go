package surface

import "fmt"

// ToNative converts a surface into the packed frame layout a plugin
// declaring model m consumes: width*height pixels, m.BytesPerPixel
// each, rows contiguous, channels in m.Order.
//
// When m is canonical and the surface rows are already contiguous the
// returned buffer aliases s.Pix and shared is true; the caller must
// not treat it as an independent copy. Otherwise a fresh buffer is
// built row by row, permuting channel bytes per pixel. Models without
// an alpha channel drop the host alpha byte on the way out.
func ToNative(s *Surface, m Model) (buf []byte, shared bool, err error) {
	if err := s.validate(); err != nil {
		return nil, false, err
	}
	if m.Canonical && s.tight() {
		return s.Pix, true, nil
	}

	bpp := m.BytesPerPixel
	buf = make([]byte, m.FrameBytes(s.Width, s.Height))
	if m.Canonical {
		// Same byte order, differing stride: plain row copies.
		for y := 0; y < s.Height; y++ {
			copy(buf[y*4*s.Width:], s.row(y))
		}
		return buf, false, nil
	}

	for y := 0; y < s.Height; y++ {
		src := s.row(y)
		dst := buf[y*bpp*s.Width:]
		for x := 0; x < s.Width; x++ {
			sp := src[4*x : 4*x+4]
			dp := dst[bpp*x : bpp*x+bpp]
			for j, ch := range m.Order {
				dp[j] = sp[ch]
			}
		}
	}
	return buf, false, nil
}

// NativeOutput prepares the frame buffer a plugin will render into.
// When model m is canonical and the surface rows are contiguous the
// plugin writes straight into s.Pix (shared is true, no writeback
// needed); otherwise a scratch frame is allocated for FromNative to
// copy back afterwards. The surface's current contents are never read.
func NativeOutput(s *Surface, m Model) (buf []byte, shared bool, err error) {
	if err := s.validate(); err != nil {
		return nil, false, err
	}
	if m.Canonical && s.tight() {
		return s.Pix, true, nil
	}
	return make([]byte, m.FrameBytes(s.Width, s.Height)), false, nil
}

// FromNative writes a packed native frame in model m back into the
// surface, inverting the channel permutation. Models without an alpha
// channel yield fully opaque pixels. A buffer that aliases s.Pix (the
// shared case from ToNative) is written back onto itself harmlessly,
// but callers normally skip the call instead.
func FromNative(buf []byte, m Model, s *Surface) error {
	if err := s.validate(); err != nil {
		return err
	}
	if want := m.FrameBytes(s.Width, s.Height); len(buf) != want {
		return fmt.Errorf("native frame %d bytes: want %d for %dx%d %s", len(buf), want, s.Width, s.Height, m.Name)
	}

	bpp := m.BytesPerPixel
	if m.Canonical {
		if s.tight() && &buf[0] == &s.Pix[0] {
			return nil
		}
		for y := 0; y < s.Height; y++ {
			copy(s.row(y), buf[y*4*s.Width:y*4*s.Width+4*s.Width])
		}
		return nil
	}

	opaque := !m.HasAlpha()
	for y := 0; y < s.Height; y++ {
		src := buf[y*bpp*s.Width:]
		dst := s.row(y)
		for x := 0; x < s.Width; x++ {
			sp := src[bpp*x : bpp*x+bpp]
			dp := dst[4*x : 4*x+4]
			if opaque {
				dp[3] = 0xFF
			}
			for j, ch := range m.Order {
				dp[ch] = sp[j]
			}
		}
	}
	return nil
}
