package segment

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ID addresses a segment within the arena of its Tree.
type ID int32

// NoID is the ID of a segment that does not belong to any tree.
const NoID ID = -1

// Segment is an immutable node of a SQL syntax tree.
//
// Leaves carry raw text; branches carry ordered children whose order is
// source order. A segment obtains its ID, parent and index when it is
// copied into a Tree; until then it is "unattached".
type Segment struct {
	id       ID
	kind     Kind
	raw      string
	pos      token.Position
	parent   *Segment
	index    int
	children []*Segment
}

// NewLeaf creates an unattached leaf segment.
func NewLeaf(kind Kind, raw string, pos token.Position) *Segment {
	return &Segment{id: NoID, kind: kind, raw: raw, pos: pos, index: -1}
}

// NewBranch creates an unattached branch segment. Its position is the
// position of its first child.
func NewBranch(kind Kind, children ...*Segment) *Segment {
	s := &Segment{id: NoID, kind: kind, index: -1, children: slices.Clone(children)}
	if len(children) > 0 {
		s.pos = children[0].pos
	}
	return s
}

// ID returns the arena ID, or NoID for unattached segments.
func (s *Segment) ID() ID { return s.id }

// Kind returns the segment type.
func (s *Segment) Kind() Kind { return s.kind }

// Pos returns the position marker.
func (s *Segment) Pos() token.Position { return s.pos }

// Parent returns the enclosing segment, or nil for a root or unattached segment.
func (s *Segment) Parent() *Segment { return s.parent }

// Index returns the zero-based position within the parent's children, or -1.
func (s *Segment) Index() int { return s.index }

// Is reports whether the segment is any of the given kinds.
func (s *Segment) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, s.kind)
}

// IsMeta reports whether the segment only carries formatting.
func (s *Segment) IsMeta() bool { return s.kind.IsMeta() }

// IsCode reports whether the segment carries SQL meaning.
func (s *Segment) IsCode() bool { return s.kind.IsCode() }

// Len returns the number of children.
func (s *Segment) Len() int { return len(s.children) }

// Child returns the i-th child.
func (s *Segment) Child(i int) *Segment { return s.children[i] }

// Children returns a copy of the child list.
func (s *Segment) Children() []*Segment { return slices.Clone(s.children) }

// All iterates over the children in order.
func (s *Segment) All() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for _, c := range s.children {
			if !yield(c) {
				return
			}
		}
	}
}

// First returns the first child of any of the given kinds, or nil.
func (s *Segment) First(kinds ...Kind) *Segment {
	for _, c := range s.children {
		if c.Is(kinds...) {
			return c
		}
	}
	return nil
}

// FirstCode returns the first child that carries SQL meaning, or nil.
func (s *Segment) FirstCode() *Segment {
	for _, c := range s.children {
		if c.IsCode() {
			return c
		}
	}
	return nil
}

// Raw returns the source text covered by the segment.
func (s *Segment) Raw() string {
	if len(s.children) == 0 {
		return s.raw
	}
	var b strings.Builder
	s.writeRaw(&b)
	return b.String()
}

func (s *Segment) writeRaw(b *strings.Builder) {
	if len(s.children) == 0 {
		b.WriteString(s.raw)
		return
	}
	for _, c := range s.children {
		c.writeRaw(b)
	}
}

// Span returns the range from the segment's position to the end of its text.
func (s *Segment) Span() token.Span {
	return token.Span{Start: s.pos, End: s.pos.Advance(s.Raw())}
}

// Leaves iterates over the leaf segments below s in document order.
func (s *Segment) Leaves() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		s.walk(func(seg *Segment) bool {
			if len(seg.children) > 0 || seg.kind.IsBranch() {
				return true
			}
			return yield(seg)
		})
	}
}

// Walk iterates over s and every descendant in document (pre-)order.
func (s *Segment) Walk() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		s.walk(yield)
	}
}

func (s *Segment) walk(visit func(*Segment) bool) bool {
	if !visit(s) {
		return false
	}
	for _, c := range s.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether s strictly encloses other.
func (s *Segment) IsAncestorOf(other *Segment) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == s {
			return true
		}
	}
	return false
}

// String renders the segment for debugging, e.g. keyword("select").
func (s *Segment) String() string {
	if len(s.children) == 0 {
		return fmt.Sprintf("%s(%q)", s.kind, s.raw)
	}
	return fmt.Sprintf("%s[%d]", s.kind, len(s.children))
}
