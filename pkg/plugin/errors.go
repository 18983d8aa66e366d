package plugin

import "errors"

// Load-time failures. Discovery treats all of these as skippable: one
// broken shared object never aborts a scan.
var (
	// ErrOpenFailed means the shared object could not be mapped at
	// all (missing file, wrong architecture, unresolved link deps).
	ErrOpenFailed = errors.New("plugin: cannot open shared object")

	// ErrMalformedPlugin means the object loaded but its ABI surface
	// is wrong: a required f0r_* symbol is missing, init failed, or
	// the reported metadata is invalid.
	ErrMalformedPlugin = errors.New("plugin: malformed plugin")

	// ErrUnsupportedColourModel means the plugin declared a colour
	// model code the host registry does not know. Unknown models are
	// refused, never silently defaulted.
	ErrUnsupportedColourModel = errors.New("plugin: unsupported colour model")
)

// Construct-time failures.
var (
	ErrInvalidDimensions     = errors.New("plugin: invalid frame dimensions")
	ErrNativeConstructFailed = errors.New("plugin: native construct failed")
)

// Runtime failures. These are programmer errors surfaced
// synchronously, never left to corrupt native state.
var (
	// ErrArityMismatch means Update was given the wrong number of
	// input frames, or no output frame, for the plugin's type.
	ErrArityMismatch = errors.New("plugin: frame arity mismatch")

	// ErrUseAfterDestroy means an operation reached an instance whose
	// native handle has already been destructed.
	ErrUseAfterDestroy = errors.New("plugin: instance used after destroy")

	// ErrClosed means Construct was called on a closed descriptor.
	ErrClosed = errors.New("plugin: plugin closed")

	// ErrUnknownParam means a parameter name or index does not exist
	// in the plugin's schema.
	ErrUnknownParam = errors.New("plugin: unknown parameter")
)
