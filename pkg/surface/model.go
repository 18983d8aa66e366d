// Package surface provides the host-side image representation and the
// conversion between it and the packed frame buffers the frei0r update
// calls consume: the colour model registry, the Surface pixel buffer,
// and the channel-reordering adapter.
package surface

import (
	"fmt"

	"github.com/ldo/go0r/pkg/frei0r"
)

// Channel tags one byte position within a packed pixel.
type Channel uint8

const (
	ChR Channel = iota
	ChG
	ChB
	ChA
)

func (c Channel) String() string {
	switch c {
	case ChR:
		return "R"
	case ChG:
		return "G"
	case ChB:
		return "B"
	case ChA:
		return "A"
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// MaxDimension bounds frame width and height. Frei0r plugins allocate
// per-frame working memory from the construct dimensions, so an
// unchecked size turns into an unbounded native allocation.
const MaxDimension = 2048

// Model describes one pixel layout a plugin may declare: its ABI code,
// bytes per pixel, the byte order of its channels, and the dimension
// alignment it demands. Canonical models share the host's RGBA byte
// order and need no reordering.
type Model struct {
	Code          int32
	Name          string
	BytesPerPixel int
	Order         []Channel
	// Align is the multiple both frame axes must satisfy. The packed
	// models take any size; a planar subsampled layout would set 2.
	Align     int
	Canonical bool
}

func (m Model) String() string { return m.Name }

// HasAlpha reports whether the model carries an alpha channel.
func (m Model) HasAlpha() bool {
	for _, ch := range m.Order {
		if ch == ChA {
			return true
		}
	}
	return false
}

// CheckDimensions validates a frame size against the model: both axes
// positive, within MaxDimension, and on the model's alignment.
func (m Model) CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions %dx%d: both axes must be positive", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d: exceed maximum %d", width, height, MaxDimension)
	}
	if m.Align > 1 && (width%m.Align != 0 || height%m.Align != 0) {
		return fmt.Errorf("dimensions %dx%d: %s requires multiples of %d", width, height, m.Name, m.Align)
	}
	return nil
}

// FrameBytes returns the size of one packed native frame at the given
// dimensions.
func (m Model) FrameBytes(width, height int) int {
	return width * height * m.BytesPerPixel
}

// The three colour models of the frei0r 1.2 ABI. Packed32 plugins
// declare indifference to channel order, so the host treats it as
// canonical passthrough.
var (
	BGRA8888 = Model{
		Code:          frei0r.ColorModelBGRA8888,
		Name:          "BGRA8888",
		BytesPerPixel: 4,
		Order:         []Channel{ChB, ChG, ChR, ChA},
		Align:         1,
	}

	RGBA8888 = Model{
		Code:          frei0r.ColorModelRGBA8888,
		Name:          "RGBA8888",
		BytesPerPixel: 4,
		Order:         []Channel{ChR, ChG, ChB, ChA},
		Align:         1,
		Canonical:     true,
	}

	Packed32 = Model{
		Code:          frei0r.ColorModelPacked32,
		Name:          "PACKED32",
		BytesPerPixel: 4,
		Order:         []Channel{ChR, ChG, ChB, ChA},
		Align:         1,
		Canonical:     true,
	}
)

var models = []Model{BGRA8888, RGBA8888, Packed32}

// Models returns the registered colour models in ABI code order.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// ModelByCode looks up a colour model by its ABI code. Unknown codes
// are reported, never defaulted.
func ModelByCode(code int32) (Model, bool) {
	for _, m := range models {
		if m.Code == code {
			return m, true
		}
	}
	return Model{}, false
}
