// Package plugin is the frei0r host core: it loads plugin shared
// objects, builds immutable descriptors from their self-reported
// metadata, manages instance lifecycles, and moves parameter values
// and pixel frames across the native ABI boundary.
package plugin

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/ldo/go0r/pkg/frei0r"
	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/surface"
)

// Open loads the plugin shared object at path, resolves the frei0r
// entry points, initialises the library, and queries its metadata into
// an immutable descriptor.
//
// The shared object stays resident until the descriptor is closed and
// every instance constructed from it has been destroyed.
func Open(path string) (*Plugin, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	ep, err := resolve(handle)
	if err != nil {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := load(ep, handle, path)
	if err != nil {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// FromEntryPoints builds a descriptor from an already-resolved entry
// point table, bypassing dlopen. It serves in-process plugin
// implementations: effects written in Go against the same ABI shape,
// and test doubles standing in for native plugins.
func FromEntryPoints(ep frei0r.EntryPoints, path string) (*Plugin, error) {
	return load(ep, 0, path)
}

// resolve binds the fixed frei0r symbol set out of an opened library.
// Update and Update2 are probed but not required here; load enforces
// the one the plugin's type needs.
func resolve(handle uintptr) (frei0r.EntryPoints, error) {
	var ep frei0r.EntryPoints
	required := []struct {
		name string
		fptr any
	}{
		{frei0r.SymInit, &ep.Init},
		{frei0r.SymDeinit, &ep.Deinit},
		{frei0r.SymGetPluginInfo, &ep.GetPluginInfo},
		{frei0r.SymGetParamInfo, &ep.GetParamInfo},
		{frei0r.SymConstruct, &ep.Construct},
		{frei0r.SymDestruct, &ep.Destruct},
		{frei0r.SymSetParamValue, &ep.SetParamValue},
		{frei0r.SymGetParamValue, &ep.GetParamValue},
	}
	for _, sym := range required {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil || addr == 0 {
			return frei0r.EntryPoints{}, fmt.Errorf("%w: missing symbol %s", ErrMalformedPlugin, sym.name)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	if addr, err := purego.Dlsym(handle, frei0r.SymUpdate); err == nil && addr != 0 {
		purego.RegisterFunc(&ep.Update, addr)
	}
	if addr, err := purego.Dlsym(handle, frei0r.SymUpdate2); err == nil && addr != 0 {
		purego.RegisterFunc(&ep.Update2, addr)
	}
	return ep, nil
}

// load initialises the library through an already-resolved entry-point
// table and builds the descriptor. Tests drive it directly with
// in-process fakes; Open drives it with dlopen-resolved symbols.
func load(ep frei0r.EntryPoints, handle uintptr, path string) (*Plugin, error) {
	if ep.Init() == 0 {
		return nil, fmt.Errorf("%w: f0r_init failed", ErrMalformedPlugin)
	}
	ok := false
	defer func() {
		if !ok {
			ep.Deinit()
		}
	}()

	var info frei0r.PluginInfo
	ep.GetPluginInfo(&info)

	name := frei0r.GoString(info.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty plugin name", ErrMalformedPlugin)
	}
	typ, found := typeFromCode(info.PluginType)
	if !found {
		return nil, fmt.Errorf("%w: unknown plugin type code %d", ErrMalformedPlugin, info.PluginType)
	}
	model, found := surface.ModelByCode(info.ColorModel)
	if !found {
		return nil, fmt.Errorf("%w: code %d", ErrUnsupportedColourModel, info.ColorModel)
	}
	if typ.usesUpdate2() {
		if ep.Update2 == nil {
			return nil, fmt.Errorf("%w: %s plugin lacks %s", ErrMalformedPlugin, typ, frei0r.SymUpdate2)
		}
	} else if ep.Update == nil {
		return nil, fmt.Errorf("%w: %s plugin lacks %s", ErrMalformedPlugin, typ, frei0r.SymUpdate)
	}

	params, err := loadParams(ep, int(info.NumParams))
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(params))
	for _, d := range params {
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter name %q", ErrMalformedPlugin, d.Name)
		}
		byName[d.Name] = d.Index
	}

	ok = true
	return &Plugin{
		ep:            ep,
		handle:        handle,
		path:          path,
		name:          name,
		author:        frei0r.GoString(info.Author),
		explanation:   frei0r.GoString(info.Explanation),
		typ:           typ,
		model:         model,
		frei0rVersion: int(info.Frei0rVersion),
		major:         int(info.MajorVersion),
		minor:         int(info.MinorVersion),
		params:        params,
		byName:        byName,
	}, nil
}

// loadParams queries one descriptor per ordinal index. The declared
// count bounds the walk; a nil-named entry ends it early, and the
// index recorded on each descriptor is the native ABI contract for
// every later get/set call.
func loadParams(ep frei0r.EntryPoints, count int) ([]Param, error) {
	params := make([]Param, 0, count)
	for i := 0; i < count; i++ {
		var pi frei0r.ParamInfo
		ep.GetParamInfo(&pi, int32(i))
		name := frei0r.GoString(pi.Name)
		if name == "" {
			break
		}
		kind, found := param.KindFromCode(pi.Type)
		if !found {
			return nil, fmt.Errorf("%w: parameter %q has unknown type code %d", ErrMalformedPlugin, name, pi.Type)
		}
		params = append(params, Param{
			Index:       i,
			Name:        name,
			Kind:        kind,
			Explanation: frei0r.GoString(pi.Explanation),
		})
	}
	return params, nil
}
