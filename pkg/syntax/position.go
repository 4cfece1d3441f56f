package syntax

import "strings"

// Position is a zero-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// PositionOf converts a byte offset of source to a Position. Offsets past
// the end map to the end of the source.
func PositionOf(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	before := source[:offset]
	line := strings.Count(before, "\n")
	return Position{Line: line, Column: offset - (strings.LastIndexByte(before, '\n') + 1)}
}

// OffsetOf converts a Position to a byte offset of source. Columns past
// the end of a line clamp to the line end; lines past the end of the source
// yield -1.
func OffsetOf(source string, pos Position) int {
	if pos.Line < 0 || pos.Column < 0 {
		return -1
	}
	start := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(source[start:], '\n')
		if nl < 0 {
			return -1
		}
		start += nl + 1
	}
	end := strings.IndexByte(source[start:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += start
	}
	if start+pos.Column > end {
		return end
	}
	return start + pos.Column
}
