// Package preset saves and restores plugin parameter state as YAML
// documents, so a tuned effect can be reapplied to a fresh instance.
package preset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/plugin"
)

// File is one serialized preset. Parameter values use natural YAML
// types: bool, float, string, and 3- or 2-element float sequences for
// colours and positions; the plugin's schema decides how each entry is
// interpreted on load.
type File struct {
	Plugin string         `yaml:"plugin"`
	Params map[string]any `yaml:"params"`
}

// Snapshot captures an instance's current parameter state.
func Snapshot(inst *plugin.Instance) (*File, error) {
	values, err := inst.Snapshot()
	if err != nil {
		return nil, err
	}
	f := &File{
		Plugin: inst.Plugin().Name(),
		Params: make(map[string]any, len(values)),
	}
	for name, v := range values {
		switch val := v.(type) {
		case param.Bool:
			f.Params[name] = bool(val)
		case param.Double:
			f.Params[name] = float64(val)
		case param.Colour:
			f.Params[name] = []float64{float64(val.R), float64(val.G), float64(val.B)}
		case param.Position:
			f.Params[name] = []float64{val.X, val.Y}
		case param.String:
			f.Params[name] = string(val)
		}
	}
	return f, nil
}

// Apply restores the preset onto an instance as a partial update.
// Entries whose name is not in the instance's schema are skipped, so
// presets stay usable across plugin versions that drop parameters.
func (f *File) Apply(inst *plugin.Instance) error {
	values := make(map[string]param.Value, len(f.Params))
	for name, raw := range f.Params {
		d, found := inst.Plugin().Param(name)
		if !found {
			continue
		}
		v, err := coerce(d.Kind, raw)
		if err != nil {
			return fmt.Errorf("preset: %q: %w", name, err)
		}
		values[name] = v
	}
	return inst.Apply(values)
}

// Write serializes the preset.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return enc.Close()
}

// Read parses a preset document.
func Read(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return &f, nil
}

// coerce interprets a decoded YAML value per the schema kind.
func coerce(kind param.Kind, raw any) (param.Value, error) {
	switch kind {
	case param.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", raw)
		}
		return param.Bool(b), nil
	case param.KindDouble:
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return param.Double(f), nil
	case param.KindColour:
		parts, err := toFloats(raw, 3)
		if err != nil {
			return nil, err
		}
		return param.Colour{R: float32(parts[0]), G: float32(parts[1]), B: float32(parts[2])}, nil
	case param.KindPosition:
		parts, err := toFloats(raw, 2)
		if err != nil {
			return nil, err
		}
		return param.Position{X: parts[0], Y: parts[1]}, nil
	case param.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", raw)
		}
		return param.String(s), nil
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}

func toFloat(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("want number, got %T", raw)
}

func toFloats(raw any, n int) ([]float64, error) {
	seq, ok := raw.([]any)
	if !ok || len(seq) != n {
		return nil, fmt.Errorf("want sequence of %d numbers, got %T", n, raw)
	}
	out := make([]float64, n)
	for i, item := range seq {
		f, err := toFloat(item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
