// Package frei0r declares the raw frei0r 1.2 plugin ABI: the entry
// points every plugin shared object exports, the C struct layouts used
// to transport plugin and parameter metadata, and the wire forms of
// parameter values.
//
// Nothing in this package calls into native code. It only pins down
// byte-for-byte layouts so the higher-level packages can hand
// unsafe.Pointer views of these structs across the ABI boundary.
package frei0r

// ABI version this host speaks. Plugins report the frei0r version they
// were built against in PluginInfo.Frei0rVersion.
const (
	MajorVersion = 1
	MinorVersion = 2
)

// Plugin type codes from frei0r.h.
const (
	PluginTypeFilter int32 = 0
	PluginTypeSource int32 = 1
	PluginTypeMixer2 int32 = 2
	PluginTypeMixer3 int32 = 3
)

// Colour model codes from frei0r.h.
const (
	ColorModelBGRA8888 int32 = 0
	ColorModelRGBA8888 int32 = 1
	ColorModelPacked32 int32 = 2
)

// Parameter type codes from frei0r.h.
const (
	ParamBool     int32 = 0
	ParamDouble   int32 = 1
	ParamColor    int32 = 2
	ParamPosition int32 = 3
	ParamString   int32 = 4
)

// Exported symbol names. Update and Update2 are optional: filters and
// sources export f0r_update, mixers export f0r_update2.
const (
	SymInit          = "f0r_init"
	SymDeinit        = "f0r_deinit"
	SymGetPluginInfo = "f0r_get_plugin_info"
	SymGetParamInfo  = "f0r_get_param_info"
	SymConstruct     = "f0r_construct"
	SymDestruct      = "f0r_destruct"
	SymSetParamValue = "f0r_set_param_value"
	SymGetParamValue = "f0r_get_param_value"
	SymUpdate        = "f0r_update"
	SymUpdate2       = "f0r_update2"
)
