package secpcurves

import "errors"

// Sentinel errors for the boundary layer.
var (
	// ErrInvalidCurve is returned by New for any name outside the ten
	// supported curves.
	ErrInvalidCurve = errors.New("secpcurves: invalid curve name")
	// ErrSignFailed is returned by Sign when the ephemeral scalar produces
	// a degenerate r=0 or s=0.
	ErrSignFailed = errors.New("secpcurves: signing failed")
	// ErrInvalidArgument marks an out-of-range caller-supplied scalar.
	// The engine never returns this directly, since oversized scalars are
	// silently masked, but it is kept as a named sentinel for callers
	// that add their own pre-validation.
	ErrInvalidArgument = errors.New("secpcurves: invalid argument")
	// ErrInternal marks an algorithmic impossibility (e.g. inverting
	// zero) that normal inputs never trigger.
	ErrInternal = errors.New("secpcurves: internal error")
)
