// SPDX-License-Identifier: MIT

// Package filter projects tracked entities into representations that a
// metric can compare.
//
// A Filter is the only way the consistency engine looks inside an entity.
// The built-in filters work on any entity implementing Observable and
// differ solely in which sub-state they project:
//
//	NewAll      plans and beliefs
//	NewBeliefs  beliefs only
//	NewPlans    plans / goals only
//
// Each may be scoped to a set of paths; a literal is kept when one of the
// scoping paths is a segment prefix of its own path ("first" keeps
// "first/sub1" but not "firstly").
//
// Filters must be deterministic for a fixed entity state: no hidden
// randomness, no dependence on map iteration order.
package filter

import (
	"slices"
	"strings"
)

// Representation is the canonical multiset of terms a Filter produces.
// Order carries no meaning; duplicates encode multiplicity.
type Representation []string

// NewRepresentation returns a sorted copy of terms.
func NewRepresentation(terms ...string) Representation {
	r := slices.Clone(terms)
	slices.Sort(r)

	return Representation(r)
}

// FromLiterals renders literals canonically into a sorted Representation.
func FromLiterals(lits ...Literal) Representation {
	r := make(Representation, 0, len(lits))
	for _, l := range lits {
		r = append(r, l.String())
	}
	slices.Sort(r)

	return r
}

// TermSeparator joins terms in Canonical. Terms must not contain it.
const TermSeparator = "\x00"

// Canonical serializes the representation as its sorted terms joined by
// TermSeparator. Two representations share a serialization exactly when they
// hold the same multiset.
func (r Representation) Canonical() string {
	return strings.Join(slices.Sorted(slices.Values(r)), TermSeparator)
}

// Filter projects an entity into a Representation.
type Filter[E any] interface {
	Apply(entity E) Representation
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc[E any] func(entity E) Representation

// Apply calls f(entity).
func (f FilterFunc[E]) Apply(entity E) Representation { return f(entity) }

// Observable is the state contract of entities the built-in filters understand.
// Implementations must return snapshots that callers may keep.
type Observable interface {
	Beliefs() []Literal
	Plans() []Literal
}

// scope restricts literals to a set of path prefixes.
type scope struct {
	paths [][]string // segment lists; empty = unrestricted
}

func newScope(paths []string) scope {
	s := scope{}
	for _, p := range paths {
		if segs := splitPath(p); len(segs) > 0 {
			s.paths = append(s.paths, segs)
		}
	}

	return s
}

// admits reports whether l lies under one of the scoping paths.
func (s scope) admits(l Literal) bool {
	if len(s.paths) == 0 {
		return true
	}
	segs := l.Segments()
	for _, p := range s.paths {
		if len(p) <= len(segs) && slices.Equal(p, segs[:len(p)]) {
			return true
		}
	}

	return false
}

func (s scope) project(lits []Literal, into []Literal) []Literal {
	for _, l := range lits {
		if s.admits(l) {
			into = append(into, l)
		}
	}

	return into
}

// All projects plans and beliefs.
type All[E Observable] struct{ scope }

// NewAll builds an All filter scoped to paths (none = everything).
func NewAll[E Observable](paths ...string) All[E] {
	return All[E]{newScope(paths)}
}

// Apply implements Filter.
func (f All[E]) Apply(entity E) Representation {
	lits := f.project(entity.Plans(), nil)

	return FromLiterals(f.project(entity.Beliefs(), lits)...)
}

// Beliefs projects beliefs only.
type Beliefs[E Observable] struct{ scope }

// NewBeliefs builds a Beliefs filter scoped to paths (none = everything).
func NewBeliefs[E Observable](paths ...string) Beliefs[E] {
	return Beliefs[E]{newScope(paths)}
}

// Apply implements Filter.
func (f Beliefs[E]) Apply(entity E) Representation {
	return FromLiterals(f.project(entity.Beliefs(), nil)...)
}

// Plans projects plans and goals only.
type Plans[E Observable] struct{ scope }

// NewPlans builds a Plans filter scoped to paths (none = everything).
func NewPlans[E Observable](paths ...string) Plans[E] {
	return Plans[E]{newScope(paths)}
}

// Apply implements Filter.
func (f Plans[E]) Apply(entity E) Representation {
	return FromLiterals(f.project(entity.Plans(), nil)...)
}
