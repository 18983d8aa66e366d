package preset

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldo/go0r/pkg/frei0r"
	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/plugin"
)

// testPlugin is a minimal in-process filter with one parameter of
// every wire shape the preset format has to represent.
func testPlugin(t *testing.T) *plugin.Plugin {
	t.Helper()

	names := [][]byte{
		append([]byte("amount"), 0),
		append([]byte("enabled"), 0),
		append([]byte("tint"), 0),
		append([]byte("anchor"), 0),
		append([]byte("label"), 0),
	}
	kinds := []int32{frei0r.ParamDouble, frei0r.ParamBool, frei0r.ParamColor, frei0r.ParamPosition, frei0r.ParamString}
	pluginName := append([]byte("preset-probe"), 0)

	type state struct {
		amount  float64
		enabled float64
		tint    frei0r.ParamColorValue
		anchor  frei0r.ParamPositionValue
		label   []byte
	}
	instances := map[uintptr]*state{}
	next := uintptr(1)

	ep := frei0r.EntryPoints{
		Init:   func() int32 { return 1 },
		Deinit: func() {},
		GetPluginInfo: func(info *frei0r.PluginInfo) {
			*info = frei0r.PluginInfo{
				Name:       uintptr(unsafe.Pointer(&pluginName[0])),
				PluginType: frei0r.PluginTypeFilter,
				ColorModel: frei0r.ColorModelRGBA8888,
				NumParams:  int32(len(names)),
			}
		},
		GetParamInfo: func(info *frei0r.ParamInfo, index int32) {
			*info = frei0r.ParamInfo{
				Name: uintptr(unsafe.Pointer(&names[index][0])),
				Type: kinds[index],
			}
		},
		Construct: func(w, h uint32) uintptr {
			h2 := next
			next++
			instances[h2] = &state{
				amount: 0.5, tint: frei0r.ParamColorValue{R: 1},
				anchor: frei0r.ParamPositionValue{X: 0.5, Y: 0.5},
				label:  []byte("default\x00"),
			}
			return h2
		},
		Destruct: func(h uintptr) { delete(instances, h) },
		GetParamValue: func(h uintptr, p unsafe.Pointer, index int32) {
			st := instances[h]
			switch index {
			case 0:
				*(*float64)(p) = st.amount
			case 1:
				*(*float64)(p) = st.enabled
			case 2:
				*(*frei0r.ParamColorValue)(p) = st.tint
			case 3:
				*(*frei0r.ParamPositionValue)(p) = st.anchor
			case 4:
				*(*uintptr)(p) = uintptr(unsafe.Pointer(&st.label[0]))
			}
		},
		SetParamValue: func(h uintptr, p unsafe.Pointer, index int32) {
			st := instances[h]
			switch index {
			case 0:
				st.amount = *(*float64)(p)
			case 1:
				st.enabled = *(*float64)(p)
			case 2:
				st.tint = *(*frei0r.ParamColorValue)(p)
			case 3:
				st.anchor = *(*frei0r.ParamPositionValue)(p)
			case 4:
				st.label = append([]byte(frei0r.GoString(*(*uintptr)(p))), 0)
			}
		},
		Update: func(h uintptr, time float64, in, out unsafe.Pointer) {},
	}

	p, err := plugin.FromEntryPoints(ep, "preset-probe.so")
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestSnapshotWriteReadApply(t *testing.T) {
	p := testPlugin(t)

	src, err := p.Construct(8, 8)
	require.NoError(t, err)
	defer src.Destroy()

	require.NoError(t, src.Apply(map[string]param.Value{
		"amount":  param.Double(0.9),
		"enabled": param.Bool(true),
		"tint":    param.Colour{R: 0.25, G: 0.5, B: 0.75},
		"anchor":  param.Position{X: 0.1, Y: 0.9},
		"label":   param.String("warm"),
	}))

	snap, err := Snapshot(src)
	require.NoError(t, err)
	assert.Equal(t, "preset-probe", snap.Plugin)

	var buf bytes.Buffer
	require.NoError(t, snap.Write(&buf))

	loaded, err := Read(&buf)
	require.NoError(t, err)

	dst, err := p.Construct(8, 8)
	require.NoError(t, err)
	defer dst.Destroy()
	require.NoError(t, loaded.Apply(dst))

	got, err := dst.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, param.Double(0.9), got["amount"])
	assert.Equal(t, param.Bool(true), got["enabled"])
	assert.Equal(t, param.Colour{R: 0.25, G: 0.5, B: 0.75}, got["tint"])
	assert.Equal(t, param.Position{X: 0.1, Y: 0.9}, got["anchor"])
	assert.Equal(t, param.String("warm"), got["label"])
}

func TestApplySkipsUnknownParams(t *testing.T) {
	p := testPlugin(t)
	inst, err := p.Construct(8, 8)
	require.NoError(t, err)
	defer inst.Destroy()

	f := &File{
		Plugin: "preset-probe",
		Params: map[string]any{
			"amount":  0.75,
			"removed": 1.0, // dropped in a newer plugin version
		},
	}
	require.NoError(t, f.Apply(inst))

	got, err := inst.GetByName("amount")
	require.NoError(t, err)
	assert.Equal(t, param.Double(0.75), got)
}

func TestApplyRejectsWrongShape(t *testing.T) {
	p := testPlugin(t)
	inst, err := p.Construct(8, 8)
	require.NoError(t, err)
	defer inst.Destroy()

	f := &File{Params: map[string]any{"tint": "red"}}
	assert.Error(t, f.Apply(inst))

	f = &File{Params: map[string]any{"anchor": []any{0.1, 0.2, 0.3}}}
	assert.Error(t, f.Apply(inst))

	f = &File{Params: map[string]any{"enabled": "yes"}}
	assert.Error(t, f.Apply(inst))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewBufferString("\tnot yaml"))
	assert.Error(t, err)
}
