package param

import (
	"fmt"
	"unsafe"

	"github.com/ldo/go0r/pkg/frei0r"
)

// Encode builds the native wire form of a value. The returned buffer
// is what gets passed (by address) to f0r_set_param_value.
//
// For strings the wire bytes hold a pointer into a separate
// NUL-terminated buffer returned as pin; the caller must keep pin
// alive (runtime.KeepAlive) until the native call returns. The native
// side is required by the ABI to copy the string out, so pin's
// lifetime ends with the call.
func Encode(v Value) (wire []byte, pin any, err error) {
	switch val := v.(type) {
	case Bool:
		wire = make([]byte, frei0r.SizeofDouble)
		f := 0.0
		if val {
			f = 1.0
		}
		*(*float64)(unsafe.Pointer(&wire[0])) = f
	case Double:
		wire = make([]byte, frei0r.SizeofDouble)
		*(*float64)(unsafe.Pointer(&wire[0])) = float64(val)
	case Colour:
		wire = make([]byte, frei0r.SizeofColor)
		*(*frei0r.ParamColorValue)(unsafe.Pointer(&wire[0])) = frei0r.ParamColorValue{R: val.R, G: val.G, B: val.B}
	case Position:
		wire = make([]byte, frei0r.SizeofPosition)
		*(*frei0r.ParamPositionValue)(unsafe.Pointer(&wire[0])) = frei0r.ParamPositionValue{X: val.X, Y: val.Y}
	case String:
		cstr := append([]byte(val), 0)
		wire = make([]byte, frei0r.SizeofString)
		*(*uintptr)(unsafe.Pointer(&wire[0])) = uintptr(unsafe.Pointer(&cstr[0]))
		pin = cstr
	default:
		return nil, nil, fmt.Errorf("param: unsupported value type %T", v)
	}
	return wire, pin, nil
}

// Decode reads a native wire buffer filled by f0r_get_param_value back
// into a typed value.
//
// A string slot holds a pointer to plugin-owned memory that stays
// valid only until the next set or destruct, so the text is copied out
// immediately.
func Decode(k Kind, wire []byte) (Value, error) {
	if len(wire) != k.WireSize() {
		return nil, fmt.Errorf("param: %s wire buffer is %d bytes, want %d", k, len(wire), k.WireSize())
	}
	switch k {
	case KindBool:
		return Bool(*(*float64)(unsafe.Pointer(&wire[0])) >= 0.5), nil
	case KindDouble:
		return Double(*(*float64)(unsafe.Pointer(&wire[0]))), nil
	case KindColour:
		c := *(*frei0r.ParamColorValue)(unsafe.Pointer(&wire[0]))
		return Colour{R: c.R, G: c.G, B: c.B}, nil
	case KindPosition:
		p := *(*frei0r.ParamPositionValue)(unsafe.Pointer(&wire[0]))
		return Position{X: p.X, Y: p.Y}, nil
	case KindString:
		return String(frei0r.GoString(*(*uintptr)(unsafe.Pointer(&wire[0])))), nil
	}
	return nil, fmt.Errorf("param: unsupported kind %s", k)
}
