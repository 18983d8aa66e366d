// Package param models frei0r parameter values on the host side and
// marshals them to and from the native wire forms the get/set entry
// points transport.
//
// Each kind is a tagged variant carrying its own data, so a value's
// kind is checked before anything crosses the ABI boundary; nothing is
// ever coerced between kinds.
package param

import (
	"errors"
	"fmt"

	"github.com/ldo/go0r/pkg/frei0r"
)

// ErrKindMismatch is returned when a supplied value's kind does not
// match the parameter descriptor it is being applied to.
var ErrKindMismatch = errors.New("param: value kind mismatch")

// Kind identifies a parameter type. The numeric values are the frei0r
// ABI type codes.
type Kind int32

const (
	KindBool     = Kind(frei0r.ParamBool)
	KindDouble   = Kind(frei0r.ParamDouble)
	KindColour   = Kind(frei0r.ParamColor)
	KindPosition = Kind(frei0r.ParamPosition)
	KindString   = Kind(frei0r.ParamString)
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindDouble:
		return "double"
	case KindColour:
		return "colour"
	case KindPosition:
		return "position"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// WireSize returns the byte size of the kind's native transport form.
func (k Kind) WireSize() int {
	switch k {
	case KindBool, KindDouble:
		return frei0r.SizeofDouble
	case KindColour:
		return frei0r.SizeofColor
	case KindPosition:
		return frei0r.SizeofPosition
	case KindString:
		return frei0r.SizeofString
	}
	return 0
}

// KindFromCode maps a native parameter type code to a Kind.
func KindFromCode(code int32) (Kind, bool) {
	k := Kind(code)
	switch k {
	case KindBool, KindDouble, KindColour, KindPosition, KindString:
		return k, true
	}
	return 0, false
}

// Value is one typed parameter value.
type Value interface {
	Kind() Kind
}

// Bool is an on/off parameter. On the wire it travels as a double;
// 0.5 or greater reads back as true.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Double is a numeric parameter, domain [0, 1] unless the plugin's
// explanation documents otherwise.
type Double float64

func (Double) Kind() Kind { return KindDouble }

// Colour is an RGB triple, each channel in [0, 1].
type Colour struct {
	R, G, B float32
}

func (Colour) Kind() Kind { return KindColour }

// Position is a 2D point, each axis in [0, 1].
type Position struct {
	X, Y float64
}

func (Position) Kind() Kind { return KindPosition }

// String is an opaque text parameter.
type String string

func (String) Kind() Kind { return KindString }
