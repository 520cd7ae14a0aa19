package token

// Position represents a location in the source code.
type Position struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
	Offset int `json:"offset"` // 0-based byte offset
}

// Start is the position of the first byte of a document.
var Start = Position{Line: 1, Column: 1, Offset: 0}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position immediately after text, assuming text
// begins at p. A newline moves to column 1 of the next line.
func (p Position) Advance(text string) Position {
	for i := 0; i < len(text); i++ {
		p.Offset++
		if text[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

// Span represents a range in source code.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Overlaps reports whether two half-open spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start.Offset < o.End.Offset && o.Start.Offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
