package plugin

import (
	"fmt"

	"github.com/ldo/go0r/pkg/frei0r"
)

// Type classifies a plugin and fixes its frame arity: how many input
// frames Update consumes and that it always produces one output.
type Type int32

const (
	Filter = Type(frei0r.PluginTypeFilter)
	Source = Type(frei0r.PluginTypeSource)
	Mixer2 = Type(frei0r.PluginTypeMixer2)
	Mixer3 = Type(frei0r.PluginTypeMixer3)
)

func (t Type) String() string {
	switch t {
	case Filter:
		return "filter"
	case Source:
		return "source"
	case Mixer2:
		return "mixer2"
	case Mixer3:
		return "mixer3"
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// Inputs returns the number of input frames the type consumes.
func (t Type) Inputs() int {
	switch t {
	case Source:
		return 0
	case Filter:
		return 1
	case Mixer2:
		return 2
	case Mixer3:
		return 3
	}
	return 0
}

// Outputs returns the number of output frames, one for every type.
func (t Type) Outputs() int { return 1 }

// usesUpdate2 reports whether the type renders through f0r_update2
// (mixers) rather than f0r_update (filters and sources).
func (t Type) usesUpdate2() bool {
	return t == Mixer2 || t == Mixer3
}

func typeFromCode(code int32) (Type, bool) {
	t := Type(code)
	switch t {
	case Filter, Source, Mixer2, Mixer3:
		return t, true
	}
	return 0, false
}
