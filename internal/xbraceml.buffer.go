package internal

import (
	"bytes"
	"fmt"
	"slices"
)

// Position represents a location in the buffer
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf(PositionFmt, p.Line, p.Column)
}

// Buffer is the mutable text being converted.
// Any Replace invalidates every offset at or after its start.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer holding a copy of source.
func NewBuffer(source string) *Buffer {
	return &Buffer{data: []byte(source)}
}

// Len returns the current length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// At returns the byte at offset i.
func (b *Buffer) At(i int) byte {
	return b.data[i]
}

// HasTokenAt reports whether token starts at offset i.
func (b *Buffer) HasTokenAt(i int, token string) bool {
	return i >= 0 && i+len(token) <= len(b.data) && string(b.data[i:i+len(token)]) == token
}

// IndexFrom returns the absolute offset of the first token at or after from, or -1.
func (b *Buffer) IndexFrom(from int, token string) int {
	if from < 0 || from > len(b.data) {
		return -1
	}
	idx := bytes.Index(b.data[from:], []byte(token))
	if idx < 0 {
		return -1
	}
	return from + idx
}

// Slice returns a copy of the bytes in [start, end).
func (b *Buffer) Slice(start, end int) string {
	return string(b.data[start:end])
}

// Replace splices repl over [start, end) and returns the offset of the
// first byte after the inserted text.
func (b *Buffer) Replace(start, end int, repl string) int {
	b.data = slices.Replace(b.data, start, end, []byte(repl)...)
	return start + len(repl)
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.data)
}

// Position computes line and column for offset.
func (b *Buffer) Position(offset int) Position {
	if offset > len(b.data) {
		offset = len(b.data)
	}
	return calculatePosition(b.data[:offset])
}

// LineFrom returns the text from offset up to the end of its line.
func (b *Buffer) LineFrom(offset int) string {
	if offset >= len(b.data) {
		return ""
	}
	rest := b.data[offset:]
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return string(bytes.TrimSuffix(rest, []byte{'\r'}))
}

// calculatePosition calculates the Position (line, column, offset) for a given prefix.
func calculatePosition(prefix []byte) Position {
	pos := Position{
		Offset: len(prefix),
		Line:   1,
		Column: 1,
	}

	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	return pos
}
