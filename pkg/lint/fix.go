package lint

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// ErrInvalidFix is returned by Result.Validate.
var ErrInvalidFix = errors.New("invalid fix")

// FixKind is the operation a Fix performs on its anchor.
type FixKind uint8

// Fix kinds.
const (
	// FixEdit replaces the anchor with Segments.
	FixEdit FixKind = iota
	// FixDelete removes the anchor.
	FixDelete
	// FixCreateBefore inserts Segments immediately before the anchor.
	FixCreateBefore
	// FixCreateAfter inserts Segments immediately after the anchor.
	FixCreateAfter
)

func (k FixKind) String() string {
	switch k {
	case FixEdit:
		return "edit"
	case FixDelete:
		return "delete"
	case FixCreateBefore:
		return "create_before"
	case FixCreateAfter:
		return "create_after"
	default:
		return fmt.Sprintf("fix(%d)", uint8(k))
	}
}

// Fix is a declarative structural edit anchored to a segment of the tree
// that was evaluated.
//
// Segments may mix synthetic segments with segments of the anchor's tree;
// the latter are relocated, not copied.
type Fix struct {
	Kind     FixKind
	Anchor   *segment.Segment
	Segments []*segment.Segment
}

// EditFix replaces anchor with replacement.
func EditFix(anchor *segment.Segment, replacement ...*segment.Segment) Fix {
	return Fix{Kind: FixEdit, Anchor: anchor, Segments: replacement}
}

// DeleteFix removes anchor.
func DeleteFix(anchor *segment.Segment) Fix {
	return Fix{Kind: FixDelete, Anchor: anchor}
}

// CreateBeforeFix inserts segs before anchor.
func CreateBeforeFix(anchor *segment.Segment, segs ...*segment.Segment) Fix {
	return Fix{Kind: FixCreateBefore, Anchor: anchor, Segments: segs}
}

// CreateAfterFix inserts segs after anchor.
func CreateAfterFix(anchor *segment.Segment, segs ...*segment.Segment) Fix {
	return Fix{Kind: FixCreateAfter, Anchor: anchor, Segments: segs}
}

// Result is the outcome of a rule that found a violation: the segment to
// report, the fixes that correct it and a description.
//
// Fixes of one result are applied together or not at all. A result without
// fixes is a plain diagnostic.
type Result struct {
	Anchor      *segment.Segment
	Fixes       []Fix
	Description string
}

// Validate checks that the fixes can be applied to tree without ambiguity:
// every anchor belongs to tree, anchors are pairwise distinct, no anchor
// encloses another, and the root is never an anchor.
func (r *Result) Validate(tree *segment.Tree) error {
	for i, f := range r.Fixes {
		if f.Anchor == nil {
			return fmt.Errorf("%w: fix %d (%s) has no anchor", ErrInvalidFix, i, f.Kind)
		}
		if !tree.Contains(f.Anchor) {
			return fmt.Errorf("%w: fix %d (%s) anchor %s is not part of the tree", ErrInvalidFix, i, f.Kind, f.Anchor)
		}
		if f.Anchor == tree.Root() {
			return fmt.Errorf("%w: fix %d (%s) is anchored at the root", ErrInvalidFix, i, f.Kind)
		}
		if (f.Kind == FixCreateBefore || f.Kind == FixCreateAfter) && len(f.Segments) == 0 {
			return fmt.Errorf("%w: fix %d (%s) inserts nothing", ErrInvalidFix, i, f.Kind)
		}
		for j := range i {
			other := r.Fixes[j].Anchor
			switch {
			case other == f.Anchor:
				return fmt.Errorf("%w: fixes %d and %d share anchor %s", ErrInvalidFix, j, i, f.Anchor)
			case other.IsAncestorOf(f.Anchor), f.Anchor.IsAncestorOf(other):
				return fmt.Errorf("%w: fixes %d and %d have overlapping anchors", ErrInvalidFix, j, i)
			}
		}
	}
	return nil
}
