package segment

import "fmt"

// Kind is the closed set of segment types produced by the parser.
//
// Classifiers below switch over every Kind explicitly; TestKindsClassified
// fails when a new Kind is added without a name.
type Kind uint8

// Segment kinds.
const (
	// Branch kinds
	KindFile Kind = iota
	KindStatement
	KindSelectClause
	KindSelectModifier
	KindFromClause
	KindFromExpressionElement
	KindTableReference
	KindAliasExpression
	KindClause    // any other top-level clause (WHERE, GROUP BY, ...)
	KindBracketed // parenthesized subquery: "(" statement ")"

	// Leaf kinds
	KindKeyword
	KindIdentifier
	KindLiteral
	KindComma
	KindSymbol
	KindComment
	KindWhitespace
	KindNewline

	kindCount
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindStatement:
		return "statement"
	case KindSelectClause:
		return "select_clause"
	case KindSelectModifier:
		return "select_clause_modifier"
	case KindFromClause:
		return "from_clause"
	case KindFromExpressionElement:
		return "from_expression_element"
	case KindTableReference:
		return "table_reference"
	case KindAliasExpression:
		return "alias_expression"
	case KindClause:
		return "clause"
	case KindBracketed:
		return "bracketed"
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindLiteral:
		return "literal"
	case KindComma:
		return "comma"
	case KindSymbol:
		return "symbol"
	case KindComment:
		return "comment"
	case KindWhitespace:
		return "whitespace"
	case KindNewline:
		return "newline"
	case kindCount:
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsMeta reports whether segments of this kind only carry formatting.
func (k Kind) IsMeta() bool {
	switch k {
	case KindWhitespace, KindNewline:
		return true
	case KindFile, KindStatement, KindSelectClause, KindSelectModifier, KindFromClause,
		KindFromExpressionElement, KindTableReference, KindAliasExpression, KindClause, KindBracketed,
		KindKeyword, KindIdentifier, KindLiteral, KindComma, KindSymbol, KindComment, kindCount:
	}
	return false
}

// IsBranch reports whether segments of this kind hold children rather than raw text.
func (k Kind) IsBranch() bool {
	switch k {
	case KindFile, KindStatement, KindSelectClause, KindSelectModifier, KindFromClause,
		KindFromExpressionElement, KindTableReference, KindAliasExpression, KindClause, KindBracketed:
		return true
	case KindKeyword, KindIdentifier, KindLiteral, KindComma, KindSymbol, KindComment,
		KindWhitespace, KindNewline, kindCount:
	}
	return false
}

// IsCode reports whether the kind carries SQL meaning (not formatting or comments).
func (k Kind) IsCode() bool {
	return !k.IsMeta() && k != KindComment
}
