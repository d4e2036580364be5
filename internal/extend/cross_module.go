package extend

import "github.com/gosass/selector/internal/selector"

// AddExtensions merges peer extension stores — the ones `@use`/`@forward`
// expose from modules this stylesheet loads — into s, honoring that
// private placeholders (names beginning `-`/`_`) never cross a module
// boundary, then re-extends local extensions and live selectors against
// the newly merged set (spec.md §4.7 op 6).
func (s *Store) AddExtensions(peers []*Store) error {
	touchedTargets := make(map[string]selector.Simple)

	for _, peer := range peers {
		for targetKey, exts := range peer.byTarget {
			for _, ext := range exts {
				if isPrivatePlaceholder(ext.Target) {
					continue
				}
				if s.byTarget[targetKey] == nil {
					s.byTarget[targetKey] = make(map[string]Extension)
				}
				ek := complexKey(ext.Extender)
				if existing, ok := s.byTarget[targetKey][ek]; ok {
					merged, err := existing.merge(ext)
					if err != nil {
						return err
					}
					s.byTarget[targetKey][ek] = merged
				} else {
					s.byTarget[targetKey][ek] = ext
					s.extensionOrder = append(s.extensionOrder, extensionKey{target: targetKey, extender: ek})
					touchedTargets[targetKey] = ext.Target
				}
				for _, comp := range ext.Extender.Components {
					for _, simple := range comp.Compound.Simples {
						if isPrivatePlaceholder(simple) {
							continue
						}
						sk := simpleKey(simple)
						s.byExtender[sk] = append(s.byExtender[sk], ext)
					}
				}
			}
		}
		for k, spec := range peer.sourceSpecificity {
			if existing, ok := s.sourceSpecificity[k]; !ok || spec.Compare(existing) < 0 {
				s.sourceSpecificity[k] = spec
			}
		}
	}

	for _, target := range touchedTargets {
		if err := s.extendExistingExtensions(target, nil); err != nil {
			return err
		}
		if err := s.extendExistingSelectors(target); err != nil {
			return err
		}
	}
	return nil
}

func isPrivatePlaceholder(s selector.Simple) bool {
	p, ok := s.(selector.Placeholder)
	return ok && p.IsPrivate()
}
