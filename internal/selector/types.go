// Package selector implements the selector algebra subsystem of a Sass-to-CSS
// compiler: an immutable data model for CSS selectors plus the algorithms
// that resolve `&` parent references, decide superselector relationships,
// unify two selectors into their intersection, and weave ancestor chains
// together. The package never parses text and never writes output; see
// internal/selparse and internal/selprint for those external collaborators.
package selector

import "github.com/gosass/selector/internal/helpers"

// Simple is a tagged variant over the six kinds of atomic selector. It is the
// pattern-matching replacement for the deep class hierarchy the original
// implementation used: a single interface with a handful of concrete struct
// implementations, switched over with a type switch instead of dynamic_cast.
type Simple interface {
	isSimple()
	Equal(other Simple) bool
	Hash() uint32
	String() string
}

// Type is an element-name matcher, e.g. `div` or `svg|rect` or `*`.
type Type struct {
	Name                 string
	NamespacePrefix      string
	HasNamespace         bool
	NamespaceIsUniversal bool
}

func (Type) isSimple() {}

func (t Type) Equal(other Simple) bool {
	o, ok := other.(Type)
	return ok && o == t
}

func (t Type) Hash() uint32 {
	h := helpers.HashCombineString(1, t.Name)
	h = helpers.HashCombineString(h, t.NamespacePrefix)
	h = helpers.HashCombine(h, boolHash(t.HasNamespace))
	return helpers.HashCombine(h, boolHash(t.NamespaceIsUniversal))
}

func (t Type) String() string {
	s := t.Name
	if t.HasNamespace {
		prefix := t.NamespacePrefix
		if t.NamespaceIsUniversal {
			prefix = "*"
		}
		s = prefix + "|" + s
	}
	return s
}

// IsUniversal reports whether this type selector is the universal `*`.
func (t Type) IsUniversal() bool {
	return t.Name == "*"
}

// Id is an ID selector, e.g. `#main`.
type Id struct {
	Name string
}

func (Id) isSimple() {}

func (s Id) Equal(other Simple) bool {
	o, ok := other.(Id)
	return ok && o.Name == s.Name
}

func (s Id) Hash() uint32 {
	return helpers.HashCombineString(2, s.Name)
}

func (s Id) String() string { return "#" + s.Name }

// Class is a class selector, e.g. `.btn`.
type Class struct {
	Name string
}

func (Class) isSimple() {}

func (s Class) Equal(other Simple) bool {
	o, ok := other.(Class)
	return ok && o.Name == s.Name
}

func (s Class) Hash() uint32 {
	return helpers.HashCombineString(3, s.Name)
}

func (s Class) String() string { return "." + s.Name }

// Placeholder is a Sass `%name` selector. It matches nothing and is removed
// before emit; placeholders whose name begins with `-` or `_` are
// module-private and never cross a module boundary during cross-module
// extend (internal/extend's addExtensions).
type Placeholder struct {
	Name string
}

func (Placeholder) isSimple() {}

func (s Placeholder) Equal(other Simple) bool {
	o, ok := other.(Placeholder)
	return ok && o.Name == s.Name
}

func (s Placeholder) Hash() uint32 {
	return helpers.HashCombineString(4, s.Name)
}

func (s Placeholder) String() string { return "%" + s.Name }

// IsPrivate reports whether this placeholder is module-private.
func (s Placeholder) IsPrivate() bool {
	return len(s.Name) > 0 && (s.Name[0] == '-' || s.Name[0] == '_')
}

// AttrOp is the attribute-selector matcher operator.
type AttrOp string

const (
	AttrOpNone         AttrOp = ""
	AttrOpEqual        AttrOp = "="
	AttrOpIncludes     AttrOp = "~="
	AttrOpDashMatch    AttrOp = "|="
	AttrOpPrefixMatch  AttrOp = "^="
	AttrOpSuffixMatch  AttrOp = "$="
	AttrOpSubstring    AttrOp = "*="
)

// CaseModifier is the optional `i`/`s` attribute-selector case flag.
type CaseModifier byte

const (
	CaseModifierNone         CaseModifier = 0
	CaseModifierInsensitive  CaseModifier = 'i'
	CaseModifierSensitive    CaseModifier = 's'
)

// Attribute is an attribute selector, e.g. `[href^="https://" i]`.
type Attribute struct {
	NamespacePrefix   string
	HasNamespace      bool
	Name              string
	Op                AttrOp
	Value             string
	ValueIsIdentifier bool
	CaseModifier      CaseModifier
}

func (Attribute) isSimple() {}

func (a Attribute) Equal(other Simple) bool {
	o, ok := other.(Attribute)
	return ok && o == a
}

func (a Attribute) Hash() uint32 {
	h := helpers.HashCombineString(5, a.Name)
	h = helpers.HashCombineString(h, a.NamespacePrefix)
	h = helpers.HashCombineString(h, string(a.Op))
	h = helpers.HashCombineString(h, a.Value)
	h = helpers.HashCombine(h, boolHash(a.ValueIsIdentifier))
	return helpers.HashCombine(h, uint32(a.CaseModifier))
}

func (a Attribute) String() string {
	s := "["
	if a.HasNamespace {
		s += a.NamespacePrefix + "|"
	}
	s += a.Name
	if a.Op != AttrOpNone {
		s += string(a.Op)
		if a.ValueIsIdentifier {
			s += a.Value
		} else {
			s += "\"" + a.Value + "\""
		}
	}
	if a.CaseModifier != CaseModifierNone {
		s += " " + string(rune(a.CaseModifier))
	}
	return s + "]"
}

// PseudoKind distinguishes pseudo-classes (`:hover`) from pseudo-elements
// (`::before`).
type PseudoKind uint8

const (
	PseudoClass PseudoKind = iota
	PseudoElement
)

// Pseudo is a pseudo-class or pseudo-element, optionally carrying a string
// argument (`:lang(en)`) or an inner SelectorList (`:not(.a, .b)`).
type Pseudo struct {
	Name       string
	Normalized string // Name stripped of a leading vendor prefix such as "-webkit-"
	Kind       PseudoKind
	HasArg     bool
	Arg        string
	Inner      *List // nil unless this pseudo takes a selector-list argument
}

func (Pseudo) isSimple() {}

func (p Pseudo) Equal(other Simple) bool {
	o, ok := other.(Pseudo)
	if !ok || o.Name != p.Name || o.Kind != p.Kind || o.HasArg != p.HasArg || o.Arg != p.Arg {
		return false
	}
	if (o.Inner == nil) != (p.Inner == nil) {
		return false
	}
	if o.Inner == nil {
		return true
	}
	return o.Inner.Equal(p.Inner)
}

func (p Pseudo) Hash() uint32 {
	h := helpers.HashCombineString(6, p.Name)
	h = helpers.HashCombine(h, uint32(p.Kind))
	if p.HasArg {
		h = helpers.HashCombineString(h, p.Arg)
	}
	if p.Inner != nil {
		h = helpers.HashCombine(h, p.Inner.Hash())
	}
	return h
}

func (p Pseudo) String() string {
	prefix := ":"
	if p.Kind == PseudoElement {
		prefix = "::"
	}
	s := prefix + p.Name
	if p.Inner != nil {
		s += "(" + p.Inner.String() + ")"
	} else if p.HasArg {
		s += "(" + p.Arg + ")"
	}
	return s
}

// WithSelector returns a copy of this pseudo with its inner selector list
// replaced. It is the only mutator for the inner list, matching the
// "constructors are the only public mutators" rule for the whole data model.
func (p Pseudo) WithSelector(inner *List) Pseudo {
	p.Inner = inner
	return p
}

func boolHash(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// vendorPrefixes lists the vendor prefixes normalize() strips, matching the
// set CSS implementations actually emit.
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

func normalizePseudoName(name string) string {
	for _, prefix := range vendorPrefixes {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			return name[len(prefix):]
		}
	}
	return name
}

// NewPseudo constructs a Pseudo, computing Normalized from Name.
func NewPseudo(name string, kind PseudoKind, hasArg bool, arg string, inner *List) Pseudo {
	return Pseudo{
		Name:       name,
		Normalized: normalizePseudoName(name),
		Kind:       kind,
		HasArg:     hasArg,
		Arg:        arg,
		Inner:      inner,
	}
}

// relevantInnerListNames is the set of pseudo-class names whose argument is
// itself interpreted as a relevant selector list (spec.md §4.4's
// `:matches`/`:is`/`:where`/`:any`); pseudoElementLikeInnerListNames holds
// those whose argument is read structurally (`:has`, `:host`,
// `:host-context`, `::slotted`). `:not` (logically negated) is in neither.
var pseudoElementLikeInnerListNames = map[string]bool{
	"has": true, "host": true, "host-context": true, "slotted": true,
}

var relevantInnerListNames = map[string]bool{
	"matches": true, "is": true, "where": true, "any": true,
}
