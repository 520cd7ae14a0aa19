package parser

import (
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Parse lexes and groups src into a segment tree rooted at a file segment.
//
// Statements are split at top-level semicolons and each statement is cut
// into clauses at top-level clause keywords. A parenthesized body starting
// with SELECT or WITH becomes a bracketed segment holding a nested
// statement, grouped the same way. SELECT and FROM clauses get further
// structure (modifier, from elements, table references and aliases);
// everything else stays flat. Concatenating the leaves of the result
// always yields src.
func Parse(src string) (*segment.Tree, error) {
	leaves, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	if err := checkParens(leaves); err != nil {
		return nil, err
	}

	var children []*segment.Segment
	for _, stmt := range splitStatements(leaves) {
		lead, body, trail := trimNonCode(stmt)
		children = append(children, lead...)
		if len(body) > 0 {
			children = append(children, parseStatement(body))
		}
		children = append(children, trail...)
	}
	return segment.NewTree(segment.NewBranch(segment.KindFile, children...)), nil
}

// checkParens verifies that parentheses are balanced.
func checkParens(leaves []*segment.Segment) error {
	var open []*segment.Segment
	for _, l := range leaves {
		switch {
		case isSymbol(l, "("):
			open = append(open, l)
		case isSymbol(l, ")"):
			if len(open) == 0 {
				return &ParseError{Pos: l.Pos(), Message: ErrUnbalancedClose}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return &ParseError{Pos: open[len(open)-1].Pos(), Message: ErrUnbalancedOpen}
	}
	return nil
}

// splitStatements cuts the leaves after each top-level semicolon. The
// semicolon stays with the statement it terminates.
func splitStatements(leaves []*segment.Segment) [][]*segment.Segment {
	var out [][]*segment.Segment
	depth, start := 0, 0
	for i, l := range leaves {
		depth += parenDelta(l)
		if depth == 0 && isSymbol(l, ";") {
			out = append(out, leaves[start:i+1])
			start = i + 1
		}
	}
	if start < len(leaves) {
		out = append(out, leaves[start:])
	}
	return out
}

// trimNonCode splits off leading and trailing formatting and comments.
func trimNonCode(segs []*segment.Segment) (lead, body, trail []*segment.Segment) {
	i := 0
	for i < len(segs) && !segs[i].IsCode() {
		i++
	}
	j := len(segs)
	for j > i && !segs[j-1].IsCode() {
		j--
	}
	return segs[:i], segs[i:j], segs[j:]
}

// groupSubqueries replaces each parenthesized query in toks with a
// bracketed segment. Other parentheses stay flat; their contents are still
// searched.
func groupSubqueries(toks []*segment.Segment) []*segment.Segment {
	out := make([]*segment.Segment, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if !isSymbol(toks[i], "(") {
			out = append(out, toks[i])
			continue
		}
		end := matchParen(toks, i)
		lead, body, trail := trimNonCode(toks[i+1 : end])
		if !startsQuery(body) {
			out = append(out, toks[i])
			continue
		}
		children := []*segment.Segment{toks[i]}
		children = append(children, lead...)
		children = append(children, parseStatement(body))
		children = append(children, trail...)
		children = append(children, toks[end])
		out = append(out, segment.NewBranch(segment.KindBracketed, children...))
		i = end
	}
	return out
}

func startsQuery(body []*segment.Segment) bool {
	if len(body) == 0 || !body[0].Is(segment.KindKeyword) {
		return false
	}
	switch token.Lookup(body[0].Raw()) {
	case token.SELECT, token.WITH:
		return true
	}
	return false
}

func parseStatement(body []*segment.Segment) *segment.Segment {
	body = groupSubqueries(body)
	var children, clause []*segment.Segment
	flush := func() {
		if len(clause) == 0 {
			return
		}
		c, trail := buildClause(clause)
		children = append(children, c)
		children = append(children, trail...)
		clause = nil
	}

	depth := 0
	for _, l := range body {
		top := depth == 0
		depth += parenDelta(l)
		if top {
			switch {
			case isSymbol(l, ";"):
				flush()
				children = append(children, l)
				continue
			case l.Is(segment.KindKeyword) && token.IsClauseStart(token.Lookup(l.Raw())):
				flush()
				clause = append(clause, l)
				continue
			}
		}
		if len(clause) == 0 {
			// Tokens before the first clause keyword (WITH ..., VALUES, ...)
			// stay directly under the statement.
			children = append(children, l)
			continue
		}
		clause = append(clause, l)
	}
	flush()
	return segment.NewBranch(segment.KindStatement, children...)
}

// buildClause groups a clause and returns its trailing formatting and
// comments separately, so they sit between clauses in the statement.
func buildClause(toks []*segment.Segment) (*segment.Segment, []*segment.Segment) {
	_, body, trail := trimNonCode(toks)
	switch token.Lookup(body[0].Raw()) {
	case token.SELECT:
		return buildSelect(body), trail
	case token.FROM:
		return buildFrom(body), trail
	default:
		return segment.NewBranch(segment.KindClause, body...), trail
	}
}

// buildSelect wraps a leading DISTINCT or ALL in a modifier segment.
func buildSelect(toks []*segment.Segment) *segment.Segment {
	children := make([]*segment.Segment, 0, len(toks))
	children = append(children, toks[0])
	wrapped := false
	for _, l := range toks[1:] {
		if !wrapped && l.IsCode() {
			wrapped = true
			if l.Is(segment.KindKeyword) && token.IsSelectModifier(token.Lookup(l.Raw())) {
				l = segment.NewBranch(segment.KindSelectModifier, l)
			}
		}
		children = append(children, l)
	}
	return segment.NewBranch(segment.KindSelectClause, children...)
}

// buildFrom groups the FROM clause into from expression elements. An
// element starts after FROM, after a comma and after a JOIN keyword.
func buildFrom(toks []*segment.Segment) *segment.Segment {
	children := []*segment.Segment{toks[0]}
	expect := true
	i := 1
	for i < len(toks) {
		l := toks[i]
		if expect && (l.Is(segment.KindIdentifier) || l.Is(segment.KindBracketed) || isSymbol(l, "(")) {
			elem, next := fromElement(toks, i)
			children = append(children, elem)
			i = next
			expect = false
			continue
		}
		switch {
		case l.Is(segment.KindComma):
			expect = true
		case l.Is(segment.KindKeyword) && token.Lookup(l.Raw()) == token.JOIN:
			expect = true
		case l.IsCode() && !l.Is(segment.KindKeyword):
			expect = false
		}
		children = append(children, l)
		i++
	}
	return segment.NewBranch(segment.KindFromClause, children...)
}

// fromElement parses a table reference, subquery or other parenthesized
// expression starting at toks[i], followed by an optional alias. It returns
// the element and the index of the first token after it.
func fromElement(toks []*segment.Segment, i int) (*segment.Segment, int) {
	var children []*segment.Segment
	switch {
	case toks[i].Is(segment.KindBracketed):
		children = append(children, toks[i])
		i++
	case isSymbol(toks[i], "("):
		end := matchParen(toks, i)
		children = append(children, toks[i:end+1]...)
		i = end + 1
	default:
		end := i + 1
		for end+1 < len(toks) && isSymbol(toks[end], ".") && toks[end+1].Is(segment.KindIdentifier) {
			end += 2
		}
		children = append(children, segment.NewBranch(segment.KindTableReference, toks[i:end]...))
		i = end
	}

	// Alias: [meta] [AS meta] identifier
	j := skipMeta(toks, i)
	if j >= len(toks) {
		return segment.NewBranch(segment.KindFromExpressionElement, children...), i
	}
	if toks[j].Is(segment.KindKeyword) && token.Lookup(toks[j].Raw()) == token.AS {
		k := skipMeta(toks, j+1)
		if k < len(toks) && toks[k].Is(segment.KindIdentifier) {
			children = append(children, toks[i:j]...)
			children = append(children, segment.NewBranch(segment.KindAliasExpression, toks[j:k+1]...))
			return segment.NewBranch(segment.KindFromExpressionElement, children...), k + 1
		}
	}
	if toks[j].Is(segment.KindIdentifier) {
		children = append(children, toks[i:j]...)
		children = append(children, segment.NewBranch(segment.KindAliasExpression, toks[j]))
		return segment.NewBranch(segment.KindFromExpressionElement, children...), j + 1
	}
	return segment.NewBranch(segment.KindFromExpressionElement, children...), i
}

func matchParen(toks []*segment.Segment, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		depth += parenDelta(toks[i])
		if depth == 0 {
			return i
		}
	}
	return len(toks) - 1
}

func skipMeta(toks []*segment.Segment, i int) int {
	for i < len(toks) && toks[i].IsMeta() {
		i++
	}
	return i
}

func parenDelta(l *segment.Segment) int {
	switch {
	case isSymbol(l, "("):
		return 1
	case isSymbol(l, ")"):
		return -1
	default:
		return 0
	}
}

func isSymbol(l *segment.Segment, raw string) bool {
	return l.Is(segment.KindSymbol) && l.Raw() == raw
}
