package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString     = "unterminated string literal"
	ErrUnterminatedIdentifier = "unterminated quoted identifier"
	ErrUnterminatedComment    = "unterminated block comment"
	ErrUnbalancedOpen         = "unclosed parenthesis"
	ErrUnbalancedClose        = "unexpected closing parenthesis"
)
