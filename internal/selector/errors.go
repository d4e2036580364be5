package selector

import (
	"fmt"

	"github.com/gosass/selector/internal/logger"
)

// Kind distinguishes the handful of ways selector construction, resolution,
// or extension can fail (spec.md §7). internal/selparse reports its own
// syntax errors through the logger as it parses, but still returns them to
// its caller wrapped as InvalidSelectorArgument, the kind a malformed
// built-in argument also raises.
type Kind uint8

const (
	// TopLevelParent is raised when `&` appears in a selector with no
	// enclosing rule to resolve it against.
	TopLevelParent Kind = iota

	// InvalidParent is raised when the parent selector cannot be fused
	// into a child's `&` compound: the parent's last component ends in a
	// combinator, or the parent has no components (spec.md §4.3).
	InvalidParent

	// UnsatisfiedExtend is raised when `@extend` names a placeholder or
	// selector that does not appear anywhere in the stylesheet being
	// compiled and the extend is not marked optional.
	UnsatisfiedExtend

	// ExtendAcrossMedia is raised when an extension and the rule it would
	// extend live under incompatible, non-nested `@media` contexts
	// (spec.md §4.7).
	ExtendAcrossMedia

	// EndlessExtend is raised when the extension store detects a complex
	// selector whose alternative set is still growing after the bound in
	// spec.md §5 is exceeded — almost always a mutually recursive
	// `@extend` pair.
	EndlessExtend

	// InvalidSelectorArgument is raised by Compound.Validate and
	// by the parser for selectors that are syntactically well-formed but
	// semantically impossible (two type selectors, a pseudo-element not
	// in final position, an empty compound).
	InvalidSelectorArgument

	// CompoundRequired is raised when an operation that only makes sense
	// against a single compound selector (the target of selector-extend
	// or selector-replace) is given a complex selector with more than one
	// component.
	CompoundRequired
)

func (k Kind) String() string {
	switch k {
	case TopLevelParent:
		return "top-level-parent"
	case InvalidParent:
		return "invalid-parent"
	case UnsatisfiedExtend:
		return "unsatisfied-extend"
	case ExtendAcrossMedia:
		return "extend-across-media"
	case EndlessExtend:
		return "endless-extend"
	case InvalidSelectorArgument:
		return "invalid-selector-argument"
	case CompoundRequired:
		return "compound-required"
	default:
		return "unknown"
	}
}

// Error is the typed error every algorithm in this package returns instead
// of a bare fmt.Errorf, so that callers (the evaluator, ultimately the CLI)
// can distinguish "this Sass is invalid" from "this is a bug in the
// compiler" and report a trace through the stylesheet instead of just a Go
// stack (spec.md §7, §9).
type Error struct {
	Kind  Kind
	Text  string
	Trace []logger.Range
}

func (e *Error) Error() string {
	return e.Text
}

// WithTrace returns a copy of e with an additional range appended to the
// back-trace, innermost first — used as an error climbs back out through
// nested `&` resolution or extend rewriting.
func (e *Error) WithTrace(r logger.Range) *Error {
	trace := append(append([]logger.Range{}, e.Trace...), r)
	return &Error{Kind: e.Kind, Text: e.Text, Trace: trace}
}

// Is supports errors.Is(err, selector.TopLevelParent) style matching by
// comparing Kind, ignoring Text and Trace.
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	return ok && o.Kind == e.Kind
}

// newf builds an *Error with a formatted message, used by the algorithm
// files where the text depends on the offending selector's own String().
func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Text: fmt.Sprintf(format, args...)}
}
