package ecs

// Aspect is an immutable filter over an entity's component set. An aspect
// matches an entity when every required component is present, no excluded
// component is present and, if a one-of set was given, at least one of its
// components is present.
//
// The zero Aspect is the empty aspect: it matches nothing. Systems bound to
// it never receive entities.
type Aspect struct {
	required map[Component]struct{}
	excluded map[Component]struct{}
	oneOf    map[Component]struct{}

	// matchable is false for the empty aspect, including the zero value.
	matchable bool
}

// NewAspect builds an aspect from three component name lists, any of which
// may be nil. Duplicate names are folded by set semantics and the input
// slices are not retained.
//
// Degenerate inputs are normalized rather than rejected: with no required
// and no one-of names the result is the empty aspect; a name that is both
// required and excluded collapses the whole aspect to empty; a one-of name
// that is also required makes the one-of test redundant and clears the
// entire one-of set; a one-of name that is excluded is dropped from the
// one-of set.
func NewAspect(required, excluded, oneOf []Component) Aspect {
	if len(required) == 0 && len(oneOf) == 0 {
		return Aspect{}
	}

	a := Aspect{
		required:  make(map[Component]struct{}, len(required)),
		excluded:  make(map[Component]struct{}, len(excluded)),
		oneOf:     make(map[Component]struct{}, len(oneOf)),
		matchable: true,
	}
	for _, name := range excluded {
		a.excluded[name] = struct{}{}
	}
	for _, name := range required {
		if _, forbidden := a.excluded[name]; forbidden {
			// Mandatory and forbidden at once: nothing can ever match.
			return Aspect{}
		}
		a.required[name] = struct{}{}
	}

	redundant := false
	for _, name := range oneOf {
		if _, ok := a.required[name]; ok {
			redundant = true
			break
		}
	}
	if !redundant {
		for _, name := range oneOf {
			if _, forbidden := a.excluded[name]; forbidden {
				// An excluded component can never satisfy the one-of test.
				continue
			}
			a.oneOf[name] = struct{}{}
		}
	}

	return a
}

// Requires returns an aspect matching entities that carry every named
// component. With no names it returns the empty aspect.
func Requires(names ...Component) Aspect {
	return NewAspect(names, nil, nil)
}

// Without derives an aspect that additionally rejects entities carrying any
// of the named components. The receiver is unchanged. Deriving from the
// empty aspect starts over from only the added names.
func (a Aspect) Without(names ...Component) Aspect {
	return NewAspect(setToList(a.required), append(setToList(a.excluded), names...), setToList(a.oneOf))
}

// WithAny derives an aspect that additionally requires at least one of the
// named components. The receiver is unchanged. Deriving from the empty
// aspect starts over from only the added names.
func (a Aspect) WithAny(names ...Component) Aspect {
	return NewAspect(setToList(a.required), setToList(a.excluded), append(setToList(a.oneOf), names...))
}

// Compose conjoins aspects: the unions of the inputs' required, excluded and
// one-of sets are rebuilt through NewAspect, so the usual normalization
// applies. If any input is the empty aspect the result is the empty aspect,
// without inspecting the remaining inputs. With no arguments Compose returns
// the empty aspect.
func Compose(aspects ...Aspect) Aspect {
	var required, excluded, oneOf []Component
	for _, a := range aspects {
		if !a.matchable {
			return Aspect{}
		}
		required = append(required, setToList(a.required)...)
		excluded = append(excluded, setToList(a.excluded)...)
		oneOf = append(oneOf, setToList(a.oneOf)...)
	}
	return NewAspect(required, excluded, oneOf)
}

// Matches reports whether the entity's components satisfy the aspect.
// Evaluation short-circuits and has no side effects.
func (a Aspect) Matches(src ComponentSource, e Entity) bool {
	if !a.matchable {
		return false
	}
	for name := range a.required {
		if !src.HasComponent(e, name) {
			return false
		}
	}
	for name := range a.excluded {
		if src.HasComponent(e, name) {
			return false
		}
	}
	if len(a.oneOf) > 0 {
		for name := range a.oneOf {
			if src.HasComponent(e, name) {
				return true
			}
		}
		return false
	}
	return true
}

// IsEmpty reports whether the aspect matches nothing.
func (a Aspect) IsEmpty() bool {
	return !a.matchable
}

func setToList(set map[Component]struct{}) []Component {
	if len(set) == 0 {
		return nil
	}
	names := make([]Component, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}
