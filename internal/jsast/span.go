package jsast

import "strconv"

// Location is a 1-indexed line/column position within a source file.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Span is a half-open [Start, End) source range. The parser records one on
// every node unconditionally; the extractor never needs source ranges to
// compute capabilities.
type Span struct {
	Start Location
	End   Location
}

func NewSpan(start, end Location) Span {
	return Span{Start: start, End: end}
}
