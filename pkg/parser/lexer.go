package parser

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// multiCharSymbols are operators lexed as a single symbol segment.
// Longer entries must come first.
var multiCharSymbols = []string{"::", "<=", ">=", "<>", "!=", "||", "->", "=>"}

// Lexer splits SQL source into leaf segments. Every byte of the input ends
// up in exactly one leaf, so concatenating the leaves reproduces the input.
type Lexer struct {
	input string
	pos   int // current byte offset
	cur   token.Position
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, cur: token.Start}
}

// Tokenize lexes the whole input.
func (l *Lexer) Tokenize() ([]*segment.Segment, error) {
	var out []*segment.Segment
	for l.pos < len(l.input) {
		seg, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

func (l *Lexer) next() (*segment.Segment, error) {
	ch := l.input[l.pos]
	rest := l.input[l.pos:]

	switch {
	case ch == '\n':
		return l.emit(segment.KindNewline, 1), nil
	case ch == '\r' && strings.HasPrefix(rest, "\r\n"):
		return l.emit(segment.KindNewline, 2), nil
	case isSpace(ch):
		n := 0
		for n < len(rest) && isSpace(rest[n]) && !strings.HasPrefix(rest[n:], "\r\n") {
			n++
		}
		return l.emit(segment.KindWhitespace, n), nil
	case strings.HasPrefix(rest, "--"):
		n := strings.IndexAny(rest, "\r\n")
		if n < 0 {
			n = len(rest)
		}
		return l.emit(segment.KindComment, n), nil
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			return nil, l.errorf(ErrUnterminatedComment)
		}
		return l.emit(segment.KindComment, end+4), nil
	case ch == '\'':
		n, ok := quoted(rest, '\'')
		if !ok {
			return nil, l.errorf(ErrUnterminatedString)
		}
		return l.emit(segment.KindLiteral, n), nil
	case ch == '"' || ch == '`':
		n, ok := quoted(rest, ch)
		if !ok {
			return nil, l.errorf(ErrUnterminatedIdentifier)
		}
		return l.emit(segment.KindIdentifier, n), nil
	case isDigit(ch) || (ch == '.' && len(rest) > 1 && isDigit(rest[1])):
		return l.emit(segment.KindLiteral, numberLen(rest)), nil
	case isIdentStart(ch):
		n := 1
		for n < len(rest) && isIdentPart(rest[n]) {
			n++
		}
		if token.IsKeyword(token.Lookup(rest[:n])) {
			return l.emit(segment.KindKeyword, n), nil
		}
		return l.emit(segment.KindIdentifier, n), nil
	case ch == ',':
		return l.emit(segment.KindComma, 1), nil
	}

	for _, sym := range multiCharSymbols {
		if strings.HasPrefix(rest, sym) {
			return l.emit(segment.KindSymbol, len(sym)), nil
		}
	}
	return l.emit(segment.KindSymbol, 1), nil
}

// emit consumes n bytes as a leaf of the given kind.
func (l *Lexer) emit(kind segment.Kind, n int) *segment.Segment {
	raw := l.input[l.pos : l.pos+n]
	seg := segment.NewLeaf(kind, raw, l.cur)
	l.pos += n
	l.cur = l.cur.Advance(raw)
	return seg
}

func (l *Lexer) errorf(msg string) *LexError {
	return &LexError{Pos: l.cur, Message: msg}
}

// quoted returns the length of a quoted run starting at s[0] == q.
// A doubled quote character escapes itself.
func quoted(s string, q byte) (int, bool) {
	for i := 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1, true
	}
	return 0, false
}

func numberLen(s string) int {
	n := 0
	for n < len(s) && (isDigit(s[n]) || s[n] == '.') {
		n++
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}
		if m < len(s) && isDigit(s[m]) {
			for m < len(s) && isDigit(s[m]) {
				m++
			}
			n = m
		}
	}
	return n
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart treats every non-ASCII byte as a letter so multi-byte
// identifiers stay in one segment.
func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}
