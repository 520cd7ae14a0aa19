package fix

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ErrStaleAnchor is reported for a fix that references a segment which is
// not part of the tree being fixed.
var ErrStaleAnchor = errors.New("fix references a segment outside the tree")

// AppliedFix records a successfully applied result.
type AppliedFix struct {
	RuleID      string
	Description string
	Pos         token.Position // position of the result anchor before the fix
	EditCount   int
}

// SkippedFix captures a result that was not applied, with a reason.
type SkippedFix struct {
	RuleID      string
	Description string
	Reason      string
	Err         error
	Deferred    bool // conflicts with an applied fix; retry on the corrected tree
}

// ApplyResult aggregates the corrected tree, applied and skipped results.
type ApplyResult struct {
	Tree    *segment.Tree
	Applied []AppliedFix
	Skipped []SkippedFix
}

// Apply materializes the fixes of violations into a new tree.
//
// Violations are considered in order. The fixes of one result are applied
// together or not at all. A result is skipped when it is invalid, when it
// references a segment that is not in tree, or when it touches a segment
// already claimed by an earlier accepted result; conflicting results are
// marked Deferred. Violations that are not fixable are ignored.
//
// tree is never modified. When nothing applies, the result holds the
// original tree and ErrNoFixes is returned.
func Apply(tree *segment.Tree, violations []lint.Violation) (*ApplyResult, error) {
	result := &ApplyResult{
		Tree:    tree,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if tree == nil {
		return result, fmt.Errorf("fix: tree is nil")
	}

	ops := make(map[segment.ID]lint.Fix)
	var claimed []*segment.Segment

	for _, v := range violations {
		if !v.Fixable || v.Result == nil || len(v.Result.Fixes) == 0 {
			continue
		}
		res := v.Result
		skip := func(reason string, err error, deferred bool) {
			result.Skipped = append(result.Skipped, SkippedFix{
				RuleID:      v.RuleID,
				Description: res.Description,
				Reason:      reason,
				Err:         err,
				Deferred:    deferred,
			})
		}

		touched, err := touchedSegments(tree, res)
		if err != nil {
			skip("stale anchor", err, false)
			continue
		}
		if err := res.Validate(tree); err != nil {
			skip("invalid fix", err, false)
			continue
		}
		if conflicts(claimed, touched) {
			skip("conflicts with an earlier fix", nil, true)
			continue
		}

		claimed = append(claimed, touched...)
		for _, f := range res.Fixes {
			ops[f.Anchor.ID()] = f
		}
		var pos token.Position
		if res.Anchor != nil {
			pos = res.Anchor.Pos()
		}
		result.Applied = append(result.Applied, AppliedFix{
			RuleID:      v.RuleID,
			Description: res.Description,
			Pos:         pos,
			EditCount:   len(res.Fixes),
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	root := rebuild(tree.Root(), ops)
	result.Tree = segment.NewTreeAt(root[0], token.Start)
	return result, nil
}

// touchedSegments returns every segment of tree a result reads or writes:
// fix anchors and relocated replacement segments. Synthetic segments are
// not part of any tree and are ignored.
func touchedSegments(tree *segment.Tree, res *lint.Result) ([]*segment.Segment, error) {
	var out []*segment.Segment
	for i, f := range res.Fixes {
		if f.Anchor == nil || !tree.Contains(f.Anchor) {
			return nil, fmt.Errorf("%w: anchor of fix %d (%s)", ErrStaleAnchor, i, f.Kind)
		}
		out = append(out, f.Anchor)
		for _, s := range f.Segments {
			if s.ID() == segment.NoID {
				continue
			}
			if !tree.Contains(s) {
				return nil, fmt.Errorf("%w: relocated segment %s in fix %d", ErrStaleAnchor, s, i)
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// conflicts reports whether any segment in touched is, encloses or is
// enclosed by a claimed segment.
func conflicts(claimed, touched []*segment.Segment) bool {
	for _, t := range touched {
		for _, c := range claimed {
			if t == c || t.IsAncestorOf(c) || c.IsAncestorOf(t) {
				return true
			}
		}
	}
	return false
}

// rebuild returns the segments that replace s in the corrected tree.
// Unchanged leaves are reused; NewTreeAt copies them.
func rebuild(s *segment.Segment, ops map[segment.ID]lint.Fix) []*segment.Segment {
	var self []*segment.Segment
	op, ok := ops[s.ID()]
	switch {
	case ok && op.Kind == lint.FixDelete:
	case ok && op.Kind == lint.FixEdit:
		self = op.Segments
	case s.Len() == 0:
		self = []*segment.Segment{s}
	default:
		children := make([]*segment.Segment, 0, s.Len())
		for c := range s.All() {
			children = append(children, rebuild(c, ops)...)
		}
		self = []*segment.Segment{segment.NewBranch(s.Kind(), children...)}
	}

	if !ok {
		return self
	}
	switch op.Kind {
	case lint.FixCreateBefore:
		return append(append([]*segment.Segment{}, op.Segments...), self...)
	case lint.FixCreateAfter:
		return append(self, op.Segments...)
	default:
		return self
	}
}
