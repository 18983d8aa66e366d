package plugin

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/surface"
)

// Instance is a live plugin instance bound to fixed frame dimensions.
// It exclusively owns one native instance handle.
//
// Native plugins are not guaranteed re-entrant, so every native call
// on an instance is serialized through its mutex. Distinct instances,
// including siblings of one descriptor, run concurrently without
// restriction.
type Instance struct {
	plugin *Plugin
	width  int
	height int

	mu        sync.Mutex
	handle    uintptr
	destroyed bool
	// values mirrors the native parameter state for lock-cheap reads
	// via Values; the native side stays authoritative for Get.
	values []param.Value
}

// Plugin returns the descriptor this instance was constructed from.
func (inst *Instance) Plugin() *Plugin { return inst.plugin }

// Width returns the frame width fixed at construction.
func (inst *Instance) Width() int { return inst.width }

// Height returns the frame height fixed at construction.
func (inst *Instance) Height() int { return inst.height }

// Get reads one parameter value from the plugin by index.
func (inst *Instance) Get(index int) (param.Value, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return nil, fmt.Errorf("%w: %s", ErrUseAfterDestroy, inst.plugin.name)
	}
	if index < 0 || index >= len(inst.plugin.params) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownParam, index)
	}
	return inst.getLocked(index)
}

// GetByName reads one parameter value from the plugin by name.
func (inst *Instance) GetByName(name string) (param.Value, error) {
	d, found := inst.plugin.Param(name)
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return inst.Get(d.Index)
}

// Set writes one parameter value to the plugin by index. The value's
// kind must match the descriptor's kind; mismatches are refused before
// anything reaches native code.
func (inst *Instance) Set(index int, v param.Value) error {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return fmt.Errorf("%w: %s", ErrUseAfterDestroy, inst.plugin.name)
	}
	if index < 0 || index >= len(inst.plugin.params) {
		return fmt.Errorf("%w: index %d", ErrUnknownParam, index)
	}
	return inst.setLocked(index, v)
}

// SetByName writes one parameter value to the plugin by name.
func (inst *Instance) SetByName(name string, v param.Value) error {
	d, found := inst.plugin.Param(name)
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return inst.Set(d.Index, v)
}

// Snapshot reads every parameter from the plugin, in index order, and
// returns the values keyed by parameter name.
func (inst *Instance) Snapshot() (map[string]param.Value, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return nil, fmt.Errorf("%w: %s", ErrUseAfterDestroy, inst.plugin.name)
	}
	out := make(map[string]param.Value, len(inst.plugin.params))
	for _, d := range inst.plugin.params {
		v, err := inst.getLocked(d.Index)
		if err != nil {
			return nil, err
		}
		out[d.Name] = v
	}
	return out, nil
}

// Apply sets the named parameters from the mapping, in name-to-index
// lookup order. Parameters absent from the mapping are untouched: this
// is a partial update, never a reset. Every name and kind is validated
// before the first native write, so a bad mapping changes nothing.
func (inst *Instance) Apply(values map[string]param.Value) error {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return fmt.Errorf("%w: %s", ErrUseAfterDestroy, inst.plugin.name)
	}
	for name, v := range values {
		d, found := inst.plugin.Param(name)
		if !found {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		if v.Kind() != d.Kind {
			return fmt.Errorf("%w: %q wants %s, got %s", param.ErrKindMismatch, name, d.Kind, v.Kind())
		}
	}
	for _, d := range inst.plugin.params {
		v, present := values[d.Name]
		if !present {
			continue
		}
		if err := inst.setLocked(d.Index, v); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the mirrored parameter state without touching the
// native side: the defaults read back at construction, overlaid with
// every successful Set since.
func (inst *Instance) Values() map[string]param.Value {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	out := make(map[string]param.Value, len(inst.plugin.params))
	for _, d := range inst.plugin.params {
		out[d.Name] = inst.values[d.Index]
	}
	return out
}

// Update renders one frame at the given timestamp. The number of
// inputs must match the plugin type's arity and every surface must
// match the instance's bound dimensions. Inputs are converted to the
// plugin's colour model, the native update entry point writes the
// result directly into the output frame, and the output is converted
// back into the caller's surface.
func (inst *Instance) Update(time float64, inputs []*surface.Surface, output *surface.Surface) error {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return fmt.Errorf("%w: %s", ErrUseAfterDestroy, inst.plugin.name)
	}

	typ := inst.plugin.typ
	if len(inputs) != typ.Inputs() {
		return fmt.Errorf("%w: %s takes %d inputs, got %d", ErrArityMismatch, typ, typ.Inputs(), len(inputs))
	}
	if output == nil {
		return fmt.Errorf("%w: %s requires an output frame", ErrArityMismatch, typ)
	}
	for i, in := range inputs {
		if in == nil || in.Width != inst.width || in.Height != inst.height {
			return fmt.Errorf("%w: input %d does not match instance dimensions %dx%d",
				ErrInvalidDimensions, i, inst.width, inst.height)
		}
	}
	if output.Width != inst.width || output.Height != inst.height {
		return fmt.Errorf("%w: output does not match instance dimensions %dx%d",
			ErrInvalidDimensions, inst.width, inst.height)
	}

	model := inst.plugin.model
	frames := make([]unsafe.Pointer, typ.Inputs())
	bufs := make([][]byte, typ.Inputs())
	for i, in := range inputs {
		buf, _, err := surface.ToNative(in, model)
		if err != nil {
			return err
		}
		bufs[i] = buf
		frames[i] = unsafe.Pointer(&buf[0])
	}

	outBuf, outShared, err := surface.NativeOutput(output, model)
	if err != nil {
		return err
	}
	outFrame := unsafe.Pointer(&outBuf[0])

	ep := inst.plugin.ep
	switch typ {
	case Source:
		ep.Update(inst.handle, time, nil, outFrame)
	case Filter:
		ep.Update(inst.handle, time, frames[0], outFrame)
	case Mixer2:
		ep.Update2(inst.handle, time, frames[0], frames[1], nil, outFrame)
	case Mixer3:
		ep.Update2(inst.handle, time, frames[0], frames[1], frames[2], outFrame)
	}
	runtime.KeepAlive(bufs)

	if outShared {
		return nil
	}
	return surface.FromNative(outBuf, model, output)
}

// Destroy releases the native instance handle. The first call invokes
// the native destruct entry point and the transition is one-way; later
// calls are no-ops. Every other operation fails with
// ErrUseAfterDestroy once destroyed.
func (inst *Instance) Destroy() error {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		return nil
	}
	inst.plugin.ep.Destruct(inst.handle)
	inst.handle = 0
	inst.destroyed = true
	inst.plugin.instanceDestroyed()
	return nil
}

// readDefaults populates the value mirror from the plugin's own
// defaults at construction time.
func (inst *Instance) readDefaults() error {
	for _, d := range inst.plugin.params {
		if _, err := inst.getLocked(d.Index); err != nil {
			return err
		}
	}
	return nil
}

func (inst *Instance) getLocked(index int) (param.Value, error) {
	d := inst.plugin.params[index]
	wire := make([]byte, d.Kind.WireSize())
	inst.plugin.ep.GetParamValue(inst.handle, unsafe.Pointer(&wire[0]), int32(index))
	v, err := param.Decode(d.Kind, wire)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", d.Name, err)
	}
	inst.values[index] = v
	return v, nil
}

func (inst *Instance) setLocked(index int, v param.Value) error {
	d := inst.plugin.params[index]
	if v.Kind() != d.Kind {
		return fmt.Errorf("%w: %q wants %s, got %s", param.ErrKindMismatch, d.Name, d.Kind, v.Kind())
	}
	wire, pin, err := param.Encode(v)
	if err != nil {
		return err
	}
	inst.plugin.ep.SetParamValue(inst.handle, unsafe.Pointer(&wire[0]), int32(index))
	runtime.KeepAlive(pin)
	inst.values[index] = v
	return nil
}
