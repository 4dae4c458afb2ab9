package dpi

import "errors"

var (
	// ErrUnsupportedPlatform is returned when the display server cannot report
	// per-monitor DPI. Callers fall back to the toolkit baseline.
	ErrUnsupportedPlatform = errors.New("per-monitor DPI is not supported on this display server")

	// ErrNoMatchingMonitor means no candidate rectangle landed on a monitor
	// with the target DPI. The window stays where it is.
	ErrNoMatchingMonitor = errors.New("no monitor matches the target DPI")

	// ErrNoChange means the baseline is uninitialized or already equals the target.
	ErrNoChange = errors.New("no DPI change to apply")
)
