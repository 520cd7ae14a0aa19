// Package segment models SQL source as an immutable tree of typed segments.
//
// Every byte of the source belongs to exactly one leaf, so concatenating the
// leaves of a tree reproduces the source text. Whitespace and line breaks are
// leaves of their own ("meta" segments), which lets layout rules reason about
// sibling order directly.
//
// Trees are snapshots: rules read them, and corrections are expressed as fix
// descriptors that a separate apply stage turns into a new Tree.
//
//	tree := segment.NewTree(segment.NewBranch(segment.KindSelectClause,
//		segment.NewLeaf(segment.KindKeyword, "select", token.Start),
//		segment.NewWhitespace(" ", token.Start),
//		segment.NewLeaf(segment.KindIdentifier, "a", token.Start),
//	))
//	for ws := range segment.Select(kw, segment.IsKind(segment.KindWhitespace), nil) {
//		...
//	}
package segment
