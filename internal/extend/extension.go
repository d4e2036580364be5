// Package extend implements the incremental `@extend` extension store:
// selector lists are registered once as they're parsed, extension rules
// accumulate as the evaluator walks `@extend` statements, and every
// registered list is rewritten in place as new extensions arrive so that
// emit always sees the fully-extended result (spec.md §4.7).
package extend

import (
	"github.com/gosass/selector/internal/selector"
)

// Mode selects how a target's own compound participates in the rewritten
// alternatives: Normal keeps it as one alternative alongside the extenders,
// Replace omits it entirely, Targets omits it only when every target simple
// it contains was matched by some registered extension.
type Mode uint8

const (
	Normal Mode = iota
	Replace
	Targets
)

// Extension bundles one `@extend` registration: which complex selector
// extends which simple selector, under what media context, and whether it
// is optional (`@extend .foo !optional`) or original (the extender complex
// is also a literal style-rule selector somewhere, not purely synthetic —
// spec.md §4.7).
type Extension struct {
	Extender   selector.Complex
	Target     selector.Simple
	Media      *selector.MediaContext
	IsOptional bool
	IsOriginal bool
}

// merge combines two registrations of the same extender/target pair:
// IsOptional is AND'd (either side requiring satisfaction makes the merged
// registration required), IsOriginal is OR'd.
func (e Extension) merge(other Extension) (Extension, error) {
	if !e.Media.Compatible(other.Media) {
		if e.IsOptional && other.IsOptional {
			// both optional: keep the narrower (first-registered) context
			return Extension{
				Extender: e.Extender, Target: e.Target, Media: e.Media,
				IsOptional: true, IsOriginal: e.IsOriginal || other.IsOriginal,
			}, nil
		}
		return Extension{}, &selector.Error{
			Kind: selector.ExtendAcrossMedia,
			Text: "You may not @extend selectors across media queries.",
		}
	}
	return Extension{
		Extender:   e.Extender,
		Target:     e.Target,
		Media:      e.Media,
		IsOptional: e.IsOptional && other.IsOptional,
		IsOriginal: e.IsOriginal || other.IsOriginal,
	}, nil
}

func simpleKey(s selector.Simple) string {
	return s.String()
}

func complexKey(c selector.Complex) string {
	return c.String()
}
