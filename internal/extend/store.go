package extend

import (
	"github.com/gosass/selector/internal/handle"
	"github.com/gosass/selector/internal/selector"
)

// endlessExtendBound mirrors the source's 500-alternatives-per-complex
// recursion guard (spec.md §4.7, §5): once a single complex selector's
// rewrite accumulates more alternatives than this, the cascade is assumed
// to be mutually recursive and the store raises EndlessExtend instead of
// spinning forever.
const endlessExtendBound = 500

// trimAbove is the cap past which the trimming pass is skipped entirely to
// bound its O(n²) cost (spec.md §4.7 step 4).
const trimAbove = 100

// Store is the per-stylesheet-module incremental extension registry
// (spec.md §4.7). The zero value is not usable; construct with New.
type Store struct {
	mode Mode

	byTarget   map[string]map[string]Extension // target simple key -> extender complex key -> Extension
	byExtender map[string][]Extension          // extender simple key -> extensions whose extender mentions it

	// extensionOrder records (target key, extender key) pairs in the order
	// each was first registered, so operations that must walk every
	// registered extension (CheckForUnsatisfiedExtends) produce a result
	// that is a deterministic function of registration order rather than of
	// Go's randomized map iteration (spec.md §8 property 9, §5).
	extensionOrder []extensionKey

	sourceSpecificity map[string]selector.Specificity // simple key -> specificity of the complex that introduced it

	lists         []*selector.List           // arena indexed by handle.List
	mediaByHandle []*selector.MediaContext   // media context each live list was registered under
	selectors     map[string]map[uint32]bool // target simple key -> set of list-handle indices mentioning it

	originals map[string]bool // complex key -> true if it was in the source, not produced by extension
}

// extensionKey identifies one (target, extender) registration in byTarget.
type extensionKey struct {
	target   string
	extender string
}

// New constructs an empty Store in the given mode.
func New(mode Mode) *Store {
	return &Store{
		mode:              mode,
		byTarget:          make(map[string]map[string]Extension),
		byExtender:        make(map[string][]Extension),
		sourceSpecificity: make(map[string]selector.Specificity),
		selectors:         make(map[string]map[uint32]bool),
		originals:         make(map[string]bool),
	}
}

// Get returns the live list currently registered under h.
func (s *Store) Get(h handle.List) *selector.List {
	if !h.IsValid() || int(h.Index()) >= len(s.lists) {
		return nil
	}
	return s.lists[h.Index()]
}

// AddSelector registers a freshly-parsed list under the given media context
// (spec.md §4.7 op 1): every original complex is recorded so trimming can
// never drop it, every simple it mentions (including inside pseudo inner
// lists) is indexed, and if any existing extension already applies the list
// is rewritten before the handle is returned.
func (s *Store) AddSelector(list *selector.List, media *selector.MediaContext) (handle.List, error) {
	idx := uint32(len(s.lists))
	s.lists = append(s.lists, list)
	s.mediaByHandle = append(s.mediaByHandle, media)
	h := handle.MakeList(idx)

	for _, c := range list.Complexes {
		s.originals[complexKey(c)] = true
		s.recordSourceSpecificity(c)
	}
	s.indexSelectors(h, list)

	rewritten, err := s.extendListNow(list, media)
	if err != nil {
		return handle.List{}, err
	}
	if rewritten != list {
		s.lists[idx] = rewritten
		s.indexSelectors(h, rewritten)
	}
	return h, nil
}

func (s *Store) recordSourceSpecificity(c selector.Complex) {
	spec := c.MaxSpecificity()
	for _, comp := range c.Components {
		for _, simple := range comp.Compound.Simples {
			k := simpleKey(simple)
			if existing, ok := s.sourceSpecificity[k]; !ok || spec.Compare(existing) < 0 {
				s.sourceSpecificity[k] = spec
			}
			recordInnerSimples(simple, spec, s.sourceSpecificity)
		}
	}
}

func recordInnerSimples(s selector.Simple, spec selector.Specificity, into map[string]selector.Specificity) {
	p, ok := s.(selector.Pseudo)
	if !ok || p.Inner == nil {
		return
	}
	for _, c := range p.Inner.Complexes {
		for _, comp := range c.Components {
			for _, inner := range comp.Compound.Simples {
				k := simpleKey(inner)
				if existing, ok := into[k]; !ok || spec.Compare(existing) < 0 {
					into[k] = spec
				}
				recordInnerSimples(inner, spec, into)
			}
		}
	}
}

func (s *Store) indexSelectors(h handle.List, list *selector.List) {
	for _, c := range list.Complexes {
		for _, comp := range c.Components {
			for _, simple := range comp.Compound.Simples {
				s.indexSimple(simple, h)
			}
		}
	}
}

func (s *Store) indexSimple(simple selector.Simple, h handle.List) {
	k := simpleKey(simple)
	if s.selectors[k] == nil {
		s.selectors[k] = make(map[uint32]bool)
	}
	s.selectors[k][h.Index()] = true
	if p, ok := simple.(selector.Pseudo); ok && p.Inner != nil {
		for _, c := range p.Inner.Complexes {
			for _, comp := range c.Components {
				for _, inner := range comp.Compound.Simples {
					s.indexSimple(inner, h)
				}
			}
		}
	}
}

// AddExtension registers `extenderList` as extending `target` (spec.md
// §4.7 op 2). It cascades into any extension whose own extender mentions
// target, and rewrites every live list that currently mentions target.
func (s *Store) AddExtension(extenderList *selector.List, target selector.Simple, media *selector.MediaContext, optional bool) error {
	targetKey := simpleKey(target)
	if s.byTarget[targetKey] == nil {
		s.byTarget[targetKey] = make(map[string]Extension)
	}

	newExtensions := make([]Extension, 0, len(extenderList.Complexes))
	for _, complex := range extenderList.Complexes {
		ext := Extension{
			Extender:   complex,
			Target:     target,
			Media:      media,
			IsOptional: optional,
			IsOriginal: s.originals[complexKey(complex)],
		}
		ek := complexKey(complex)
		if existing, ok := s.byTarget[targetKey][ek]; ok {
			merged, err := existing.merge(ext)
			if err != nil {
				return err
			}
			ext = merged
		} else {
			s.extensionOrder = append(s.extensionOrder, extensionKey{target: targetKey, extender: ek})
		}
		s.byTarget[targetKey][ek] = ext
		newExtensions = append(newExtensions, ext)

		for _, comp := range complex.Components {
			for _, simple := range comp.Compound.Simples {
				sk := simpleKey(simple)
				s.byExtender[sk] = append(s.byExtender[sk], ext)
			}
		}
	}

	if err := s.extendExistingExtensions(target, newExtensions); err != nil {
		return err
	}
	return s.extendExistingSelectors(target)
}

// extendExistingExtensions re-expands every registered extension whose
// extender mentions target against the newly-registered extensions, so
// transitive cascades (`A extends B`, then `B extends C`) propagate
// (spec.md §4.7 op 2, `_extendExistingExtensions`).
func (s *Store) extendExistingExtensions(target selector.Simple, newExtensions []Extension) error {
	affected := s.byExtender[simpleKey(target)]
	if len(affected) == 0 {
		return nil
	}
	for _, affectedExt := range affected {
		rewritten, err := s.extendComplex(affectedExt.Extender, affectedExt.Media)
		if err != nil {
			return err
		}
		for _, rc := range rewritten.Complexes {
			if rc.Equal(affectedExt.Extender) {
				continue
			}
			if err := s.AddExtension(selector.WrapComplex(rc), affectedExt.Target, affectedExt.Media, affectedExt.IsOptional); err != nil {
				return err
			}
		}
	}
	return nil
}

// extendExistingSelectors re-runs extendList against every live list that
// mentions target, updating the store's arena entry in place (spec.md
// §4.7 op 2, `_extendExistingSelectors`).
func (s *Store) extendExistingSelectors(target selector.Simple) error {
	handles := s.selectors[simpleKey(target)]
	for idx := range handles {
		list := s.lists[idx]
		media := s.mediaByHandle[idx]
		rewritten, err := s.extendListNow(list, media)
		if err != nil {
			return err
		}
		if rewritten != list {
			s.lists[idx] = rewritten
			s.indexSelectors(handle.MakeList(idx), rewritten)
		}
	}
	return nil
}

// CheckForUnsatisfiedExtends returns a non-optional registered extension
// whose target is not present in any live selector, or nil if all are
// satisfied (spec.md §4.7 op 5). Walks extensionOrder rather than the
// byTarget map directly so the result is a deterministic function of
// registration order, not of Go's randomized map iteration (spec.md §8
// property 9).
func (s *Store) CheckForUnsatisfiedExtends() *Extension {
	for _, key := range s.extensionOrder {
		if len(s.selectors[key.target]) > 0 {
			continue
		}
		ext, ok := s.byTarget[key.target][key.extender]
		if !ok {
			continue
		}
		if !ext.IsOptional {
			e := ext
			return &e
		}
	}
	return nil
}
