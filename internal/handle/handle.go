// Package handle provides an opaque, zero-value-invalid 32-bit index used to
// reference a registered SelectorList without the extension store holding a
// real pointer into caller-owned memory. addSelector returns one of these
// instead of a pointer (see spec.md §9's "have addSelector return an opaque
// registration handle" design note); the store keeps the live list in its own
// arena and the caller fetches the current (possibly rewritten) list back
// through the handle.
package handle

// List stores a 32-bit index where the zero value is an invalid handle. This
// is a better alternative to storing a pointer since it has the same
// properties but takes up less space and survives a GC-oblivious memory
// layout without an extra pointer traversal.
type List struct {
	flippedBits uint32
}

func MakeList(index uint32) List {
	return List{flippedBits: ^index}
}

func (h List) IsValid() bool {
	return h.flippedBits != 0
}

func (h List) Index() uint32 {
	return ^h.flippedBits
}
