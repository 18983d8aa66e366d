package frei0r

import "unsafe"

// EntryPoints is the resolved symbol table of one plugin shared
// object. The loader fills it by binding each exported f0r_* symbol;
// tests fill it with in-process Go functions standing in for a native
// plugin.
//
// Frame pointers passed to Update and Update2 address packed pixel
// buffers laid out per the plugin's declared colour model, width*height
// pixels with no row padding. Param pointers address the wire forms in
// structs.go.
type EntryPoints struct {
	Init          func() int32
	Deinit        func()
	GetPluginInfo func(info *PluginInfo)
	GetParamInfo  func(info *ParamInfo, index int32)
	Construct     func(width, height uint32) uintptr
	Destruct      func(instance uintptr)
	SetParamValue func(instance uintptr, param unsafe.Pointer, index int32)
	GetParamValue func(instance uintptr, param unsafe.Pointer, index int32)

	// Update is present on filter and source plugins, Update2 on
	// mixers. The unused one is nil.
	Update  func(instance uintptr, time float64, inframe, outframe unsafe.Pointer)
	Update2 func(instance uintptr, time float64, inframe1, inframe2, inframe3, outframe unsafe.Pointer)
}
