package plugin

import (
	"unsafe"

	"github.com/ldo/go0r/pkg/frei0r"
	"github.com/ldo/go0r/pkg/param"
)

// fakeLib emulates a native frei0r plugin entirely in process: its
// entry-point table is Go closures operating on the same raw pointers
// and wire layouts a real shared object would, so the loader,
// marshaling, and lifecycle paths run exactly as they do against
// dlopen-resolved symbols.
type fakeLib struct {
	name        []byte
	author      []byte
	explanation []byte
	typ         int32
	model       int32
	numParams   int32
	abiVersion  int32
	major       int32
	minor       int32
	defs        []fakeParam

	initResult  int32
	initCalls   int
	deinitCalls int

	failConstruct bool
	nextHandle    uintptr
	instances     map[uintptr]*fakeInstance

	// lastInputs captures copies of the native input frames handed to
	// the most recent update call.
	lastInputs [][]byte

	// update renders in place of the default per-byte gain filter.
	// Inputs may contain nils (source, mixer2 third slot).
	update func(st *fakeInstance, time float64, inputs [][]byte, out []byte)
}

type fakeParam struct {
	name        []byte
	explanation []byte
	kind        param.Kind
	def         param.Value
}

type fakeInstance struct {
	w, h uint32
	vals []param.Value
	// cstrs holds plugin-owned C strings handed out by get, one slot
	// per string parameter, valid until the next set or destruct.
	cstrs [][]byte
}

func cstr(s string) []byte { return append([]byte(s), 0) }

func cptr(b []byte) uintptr { return uintptr(unsafe.Pointer(&b[0])) }

func newFakeLib(name string, typ Type, model int32, defs ...fakeParam) *fakeLib {
	return &fakeLib{
		name:        cstr(name),
		author:      cstr("test suite"),
		explanation: cstr("in-process fake plugin"),
		typ:         int32(typ),
		model:       model,
		numParams:   int32(len(defs)),
		abiVersion:  frei0r.MajorVersion,
		major:       1,
		minor:       0,
		defs:        defs,
		initResult:  1,
		nextHandle:  1,
		instances:   make(map[uintptr]*fakeInstance),
	}
}

func fp(name string, kind param.Kind, def param.Value) fakeParam {
	return fakeParam{
		name:        cstr(name),
		explanation: cstr(name + " parameter"),
		kind:        kind,
		def:         def,
	}
}

func (f *fakeLib) entryPoints() frei0r.EntryPoints {
	ep := frei0r.EntryPoints{
		Init: func() int32 {
			f.initCalls++
			return f.initResult
		},
		Deinit: func() { f.deinitCalls++ },
		GetPluginInfo: func(info *frei0r.PluginInfo) {
			*info = frei0r.PluginInfo{
				Name:          cptr(f.name),
				Author:        cptr(f.author),
				PluginType:    f.typ,
				ColorModel:    f.model,
				Frei0rVersion: f.abiVersion,
				MajorVersion:  f.major,
				MinorVersion:  f.minor,
				NumParams:     f.numParams,
				Explanation:   cptr(f.explanation),
			}
		},
		GetParamInfo: func(info *frei0r.ParamInfo, index int32) {
			if int(index) >= len(f.defs) {
				*info = frei0r.ParamInfo{}
				return
			}
			d := f.defs[index]
			*info = frei0r.ParamInfo{
				Name:        cptr(d.name),
				Type:        int32(d.kind),
				Explanation: cptr(d.explanation),
			}
		},
		Construct: func(width, height uint32) uintptr {
			if f.failConstruct {
				return 0
			}
			st := &fakeInstance{
				w:     width,
				h:     height,
				vals:  make([]param.Value, len(f.defs)),
				cstrs: make([][]byte, len(f.defs)),
			}
			for i, d := range f.defs {
				st.vals[i] = d.def
			}
			h := f.nextHandle
			f.nextHandle++
			f.instances[h] = st
			return h
		},
		Destruct: func(instance uintptr) {
			delete(f.instances, instance)
		},
		GetParamValue: func(instance uintptr, p unsafe.Pointer, index int32) {
			st := f.instances[instance]
			switch val := st.vals[index].(type) {
			case param.Bool:
				x := 0.0
				if val {
					x = 1.0
				}
				*(*float64)(p) = x
			case param.Double:
				*(*float64)(p) = float64(val)
			case param.Colour:
				*(*frei0r.ParamColorValue)(p) = frei0r.ParamColorValue{R: val.R, G: val.G, B: val.B}
			case param.Position:
				*(*frei0r.ParamPositionValue)(p) = frei0r.ParamPositionValue{X: val.X, Y: val.Y}
			case param.String:
				st.cstrs[index] = cstr(string(val))
				*(*uintptr)(p) = cptr(st.cstrs[index])
			}
		},
		SetParamValue: func(instance uintptr, p unsafe.Pointer, index int32) {
			st := f.instances[instance]
			switch f.defs[index].kind {
			case param.KindBool:
				st.vals[index] = param.Bool(*(*float64)(p) >= 0.5)
			case param.KindDouble:
				st.vals[index] = param.Double(*(*float64)(p))
			case param.KindColour:
				c := *(*frei0r.ParamColorValue)(p)
				st.vals[index] = param.Colour{R: c.R, G: c.G, B: c.B}
			case param.KindPosition:
				pos := *(*frei0r.ParamPositionValue)(p)
				st.vals[index] = param.Position{X: pos.X, Y: pos.Y}
			case param.KindString:
				// The ABI requires the plugin to copy the text out of
				// caller-transient memory during the call.
				st.vals[index] = param.String(frei0r.GoString(*(*uintptr)(p)))
			}
		},
	}

	render := func(instance uintptr, time float64, inframes []unsafe.Pointer, outframe unsafe.Pointer) {
		st := f.instances[instance]
		size := int(st.w * st.h * 4)
		inputs := make([][]byte, len(inframes))
		f.lastInputs = make([][]byte, len(inframes))
		for i, p := range inframes {
			if p == nil {
				continue
			}
			inputs[i] = unsafe.Slice((*byte)(p), size)
			f.lastInputs[i] = append([]byte(nil), inputs[i]...)
		}
		out := unsafe.Slice((*byte)(outframe), size)
		if f.update != nil {
			f.update(st, time, inputs, out)
			return
		}
		defaultGainFilter(st, inputs, out)
	}

	if Type(f.typ).usesUpdate2() {
		ep.Update2 = func(instance uintptr, time float64, in1, in2, in3, out unsafe.Pointer) {
			render(instance, time, []unsafe.Pointer{in1, in2, in3}, out)
		}
	} else {
		ep.Update = func(instance uintptr, time float64, in, out unsafe.Pointer) {
			render(instance, time, []unsafe.Pointer{in}, out)
		}
	}
	return ep
}

// defaultGainFilter scales every byte of the first input by the
// instance's first double parameter.
func defaultGainFilter(st *fakeInstance, inputs [][]byte, out []byte) {
	gain := 1.0
	for _, v := range st.vals {
		if d, isDouble := v.(param.Double); isDouble {
			gain = float64(d)
			break
		}
	}
	if len(inputs) == 0 || inputs[0] == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	for i, b := range inputs[0] {
		scaled := float64(b) * gain
		if scaled > 255 {
			scaled = 255
		}
		out[i] = byte(scaled)
	}
}

// loadFake runs the fake through the same load path Open uses.
func (f *fakeLib) load() (*Plugin, error) {
	return load(f.entryPoints(), 0, "fake.so")
}
