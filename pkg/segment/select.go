package segment

import "iter"

// Predicate tests a segment.
type Predicate func(*Segment) bool

// IsKind returns a predicate matching any of the given kinds.
func IsKind(kinds ...Kind) Predicate {
	return func(s *Segment) bool { return s.Is(kinds...) }
}

// IsMeta matches formatting-only segments.
func IsMeta(s *Segment) bool { return s.IsMeta() }

// Not negates p.
func Not(p Predicate) Predicate {
	return func(s *Segment) bool { return !p(s) }
}

// Select scans the siblings that follow start within its parent, in order.
//
// Siblings satisfying include are yielded. The scan ends at the first
// sibling satisfying stopAt, which is not yielded even if it also satisfies
// include. A nil include matches everything; a nil stopAt never stops. The
// sequence is lazy and can be ranged over any number of times.
func Select(start *Segment, include, stopAt Predicate) iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		parent := start.Parent()
		if parent == nil {
			return
		}
		for i := start.Index() + 1; i < parent.Len(); i++ {
			sib := parent.Child(i)
			if stopAt != nil && stopAt(sib) {
				return
			}
			if include != nil && !include(sib) {
				continue
			}
			if !yield(sib) {
				return
			}
		}
	}
}
