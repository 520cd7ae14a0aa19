package segment

import "github.com/leapstack-labs/leaplint/pkg/token"

// Synthetic segments are built by rules rather than parsed from source.
// They are ordinary unattached leaves. Their position marker is copied from
// a reference segment and names the nearest original location only; it is
// not a byte range of the new text and need not be unique.

// NewWhitespace creates a whitespace leaf with the given text.
func NewWhitespace(raw string, pos token.Position) *Segment {
	return NewLeaf(KindWhitespace, raw, pos)
}

// NewNewline creates a line break leaf.
func NewNewline(pos token.Position) *Segment {
	return NewLeaf(KindNewline, "\n", pos)
}

// NewKeyword creates a keyword leaf.
func NewKeyword(raw string, pos token.Position) *Segment {
	return NewLeaf(KindKeyword, raw, pos)
}
