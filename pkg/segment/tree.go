package segment

import (
	"iter"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Tree is an immutable snapshot of a parsed document.
//
// Segments live in an arena addressed by ID; IDs are assigned in document
// order, so comparing IDs compares source order.
type Tree struct {
	root  *Segment
	arena []*Segment
}

// NewTree copies root and everything below it into a new tree. The input
// segments are not modified and can be reused, e.g. as fix replacements
// that refer to segments of another tree.
func NewTree(root *Segment) *Tree {
	t := &Tree{}
	t.root = t.adopt(root, nil, 0, nil)
	return t
}

// NewTreeAt is like NewTree but recomputes every position marker by walking
// the raw text from start. It is used to materialize corrected trees.
func NewTreeAt(root *Segment, start token.Position) *Tree {
	t := &Tree{}
	cursor := start
	t.root = t.adopt(root, nil, 0, &cursor)
	return t
}

func (t *Tree) adopt(src, parent *Segment, index int, cursor *token.Position) *Segment {
	c := &Segment{
		id:     ID(len(t.arena)),
		kind:   src.kind,
		raw:    src.raw,
		pos:    src.pos,
		parent: parent,
		index:  index,
	}
	if parent == nil {
		c.index = -1
	}
	if cursor != nil {
		c.pos = *cursor
	}
	t.arena = append(t.arena, c)

	if len(src.children) == 0 {
		if cursor != nil {
			*cursor = cursor.Advance(src.raw)
		}
		return c
	}
	c.children = make([]*Segment, len(src.children))
	for i, child := range src.children {
		c.children[i] = t.adopt(child, c, i, cursor)
	}
	return c
}

// Root returns the root segment.
func (t *Tree) Root() *Segment { return t.root }

// Len returns the number of segments in the tree.
func (t *Tree) Len() int { return len(t.arena) }

// Get returns the segment with the given ID, or nil.
func (t *Tree) Get(id ID) *Segment {
	if id < 0 || int(id) >= len(t.arena) {
		return nil
	}
	return t.arena[id]
}

// Contains reports whether seg is a segment of this tree.
func (t *Tree) Contains(seg *Segment) bool {
	return seg != nil && t.Get(seg.id) == seg
}

// Raw returns the full source text of the tree.
func (t *Tree) Raw() string { return t.root.Raw() }

// Walk iterates over every segment in document order.
func (t *Tree) Walk() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for _, s := range t.arena {
			if !yield(s) {
				return
			}
		}
	}
}
