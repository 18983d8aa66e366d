package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelByCode(t *testing.T) {
	for _, want := range Models() {
		got, ok := ModelByCode(want.Code)
		require.True(t, ok, want.Name)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.BytesPerPixel, got.BytesPerPixel)
	}

	_, ok := ModelByCode(99)
	assert.False(t, ok, "unknown codes must not resolve")
}

func TestModelCanonical(t *testing.T) {
	assert.False(t, BGRA8888.Canonical)
	assert.True(t, RGBA8888.Canonical)
	assert.True(t, Packed32.Canonical)
}

func TestModelHasAlpha(t *testing.T) {
	assert.True(t, BGRA8888.HasAlpha())
	assert.True(t, RGBA8888.HasAlpha())

	rgb := Model{Name: "RGB24", BytesPerPixel: 3, Order: []Channel{ChR, ChG, ChB}, Align: 1}
	assert.False(t, rgb.HasAlpha())
}

func TestCheckDimensions(t *testing.T) {
	yuv := Model{Name: "I420", BytesPerPixel: 1, Order: nil, Align: 2}

	tests := []struct {
		name   string
		model  Model
		w, h   int
		wantOK bool
	}{
		{"packed small", RGBA8888, 4, 4, true},
		{"packed odd", BGRA8888, 7, 3, true},
		{"zero width", RGBA8888, 0, 16, false},
		{"negative height", RGBA8888, 16, -1, false},
		{"too wide", RGBA8888, MaxDimension + 1, 16, false},
		{"at limit", RGBA8888, MaxDimension, MaxDimension, true},
		{"planar even", yuv, 6, 4, true},
		{"planar odd width", yuv, 5, 4, false},
		{"planar odd height", yuv, 6, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.CheckDimensions(tt.w, tt.h)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFrameBytes(t *testing.T) {
	assert.Equal(t, 4*4*4, RGBA8888.FrameBytes(4, 4))
	assert.Equal(t, 1920*1080*4, BGRA8888.FrameBytes(1920, 1080))
}
