package frei0r

import "unsafe"

// PluginInfo mirrors f0r_plugin_info_t. Char pointers are kept as
// uintptr; the plugin owns the strings they point at, so they must be
// copied out with GoString before the library is unloaded.
type PluginInfo struct {
	Name          uintptr // const char*
	Author        uintptr // const char*
	PluginType    int32
	ColorModel    int32
	Frei0rVersion int32
	MajorVersion  int32
	MinorVersion  int32
	NumParams     int32
	Explanation   uintptr // const char*
}

// ParamInfo mirrors f0r_param_info_t.
type ParamInfo struct {
	Name        uintptr // const char*
	Type        int32
	Explanation uintptr // const char*
}

// Parameter wire forms. Bool and double travel as a single f0r_param_double;
// a string travels as one char* slot (f0r_param_string).
type (
	// ParamColorValue mirrors f0r_param_color_t.
	ParamColorValue struct {
		R, G, B float32
	}

	// ParamPositionValue mirrors f0r_param_position_t.
	ParamPositionValue struct {
		X, Y float64
	}
)

// Wire sizes of the parameter transport forms, in bytes.
const (
	SizeofDouble   = 8
	SizeofColor    = int(unsafe.Sizeof(ParamColorValue{}))
	SizeofPosition = int(unsafe.Sizeof(ParamPositionValue{}))
	SizeofString   = int(unsafe.Sizeof(uintptr(0)))
)

// GoString copies a NUL-terminated C string into a Go string. A nil
// pointer yields "".
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}
