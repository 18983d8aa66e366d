package plugin

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/ldo/go0r/pkg/frei0r"
	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/surface"
)

// Param describes one parameter of a plugin's schema. Index is the
// ordinal the native ABI addresses the parameter by; the order
// reported at load time is fixed for the life of the descriptor.
type Param struct {
	Index       int
	Name        string
	Kind        param.Kind
	Explanation string
}

// Plugin is the immutable descriptor of one loaded plugin: its
// metadata, parameter schema, and the resolved native entry points.
// It keeps the shared object resident for every instance constructed
// from it.
type Plugin struct {
	ep     frei0r.EntryPoints
	handle uintptr
	path   string

	name          string
	author        string
	explanation   string
	typ           Type
	model         surface.Model
	frei0rVersion int
	major, minor  int
	params        []Param
	byName        map[string]int

	mu        sync.Mutex
	instances int
	closed    bool
	released  bool
}

// Name returns the plugin's declared unique name.
func (p *Plugin) Name() string { return p.name }

// Author returns the plugin author string.
func (p *Plugin) Author() string { return p.author }

// Explanation returns the plugin's explanation text, possibly empty.
func (p *Plugin) Explanation() string { return p.explanation }

// Path returns the shared object path the plugin was loaded from.
func (p *Plugin) Path() string { return p.path }

// Type returns the plugin type, which fixes the update frame arity.
func (p *Plugin) Type() Type { return p.typ }

// Model returns the colour model the plugin's frame buffers use.
func (p *Plugin) Model() surface.Model { return p.model }

// Version returns the plugin's own major and minor version.
func (p *Plugin) Version() (major, minor int) { return p.major, p.minor }

// ABIVersion returns the frei0r ABI version the plugin was built for.
func (p *Plugin) ABIVersion() int { return p.frei0rVersion }

// Params returns the parameter schema in ABI index order.
func (p *Plugin) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// Param looks up a parameter descriptor by name.
func (p *Plugin) Param(name string) (Param, bool) {
	i, found := p.byName[name]
	if !found {
		return Param{}, false
	}
	return p.params[i], true
}

// Construct creates a live instance bound to the given frame
// dimensions. Dimensions are checked against the colour model before
// anything crosses the ABI, and the new instance's parameter values
// are read back from the plugin rather than assumed.
func (p *Plugin) Construct(width, height int) (*Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("%w: %s", ErrClosed, p.name)
	}
	if err := p.model.CheckDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}

	handle := p.ep.Construct(uint32(width), uint32(height))
	if handle == 0 {
		return nil, fmt.Errorf("%w: %s at %dx%d", ErrNativeConstructFailed, p.name, width, height)
	}

	inst := &Instance{
		plugin: p,
		handle: handle,
		width:  width,
		height: height,
		values: make([]param.Value, len(p.params)),
	}
	if err := inst.readDefaults(); err != nil {
		p.ep.Destruct(handle)
		return nil, err
	}

	p.instances++
	return inst, nil
}

// Close marks the descriptor dead: no further Construct calls succeed.
// The native library is deinitialised and unloaded once the last live
// instance is destroyed, never before.
func (p *Plugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.releaseLocked()
	return nil
}

// instanceDestroyed drops one instance reference.
func (p *Plugin) instanceDestroyed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instances--
	p.releaseLocked()
}

func (p *Plugin) releaseLocked() {
	if !p.closed || p.instances > 0 || p.released {
		return
	}
	p.released = true
	p.ep.Deinit()
	if p.handle != 0 {
		_ = purego.Dlclose(p.handle)
	}
}
