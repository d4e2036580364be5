// Package config holds the small set of knobs that actually reach this
// module's surface. It is deliberately tiny next to a full Sass compiler's
// options struct, but follows the same shape: nested enums carrying their
// own String() method rather than bare ints or strings.
package config

// OutputStyle controls how internal/selprint lays out its output.
type OutputStyle uint8

const (
	OutputStyleExpanded OutputStyle = iota
	OutputStyleCompressed
)

func (s OutputStyle) String() string {
	switch s {
	case OutputStyleExpanded:
		return "expanded"
	case OutputStyleCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// Options is the configuration threaded from the CLI down into the parser,
// extension store, and printer.
type Options struct {
	OutputStyle OutputStyle

	// Quiet suppresses non-fatal logger.Msg warnings (bogus selectors,
	// normalized vendor prefixes, nearing the endless-extend bound).
	// Hard failures (*selector.Error) are never suppressed.
	Quiet bool

	// LoadPaths is a configuration field only: nothing in this module
	// reads it and the CLI has no flag that sets it. Filesystem import
	// resolution is out of scope for this module.
	LoadPaths []string
}

// DefaultOptions returns the Options a bare invocation should use.
func DefaultOptions() Options {
	return Options{OutputStyle: OutputStyleExpanded}
}
