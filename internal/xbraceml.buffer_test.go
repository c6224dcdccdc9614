package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Replace(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		start, end int
		repl       string
		want       string
		wantNext   int
	}{
		{"grow", "a}b", 1, 2, "</x>", "a</x>b", 5},
		{"shrink", `x\$o{}y`, 1, 6, "{", "x{y", 2},
		{"delete", `a\%b`, 1, 3, "", "ab", 1},
		{"same length", `\b{}`, 0, 1, "<", "<b{}", 1},
		{"append at end", "ab", 2, 2, "c", "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.source)
			next := buf.Replace(tt.start, tt.end, tt.repl)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, len(tt.want), buf.Len())
		})
	}
}

func TestBuffer_Tokens(t *testing.T) {
	buf := NewBuffer(`ab\%cd\%`)

	assert.True(t, buf.HasTokenAt(2, VerbatimToken))
	assert.False(t, buf.HasTokenAt(3, VerbatimToken))
	assert.False(t, buf.HasTokenAt(7, VerbatimToken), "token cut off by end of buffer")
	assert.False(t, buf.HasTokenAt(-1, VerbatimToken))

	assert.Equal(t, 2, buf.IndexFrom(0, VerbatimToken))
	assert.Equal(t, 2, buf.IndexFrom(2, VerbatimToken))
	assert.Equal(t, 6, buf.IndexFrom(3, VerbatimToken))
	assert.Equal(t, -1, buf.IndexFrom(7, VerbatimToken))
	assert.Equal(t, -1, buf.IndexFrom(100, VerbatimToken))
}

func TestBuffer_Position(t *testing.T) {
	buf := NewBuffer("first\nsecond}\r\nthird")

	pos := buf.Position(0)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, pos)

	pos = buf.Position(12)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 7, pos.Column)
	assert.Equal(t, "line 2, column 7", pos.String())

	pos = buf.Position(1000)
	assert.Equal(t, buf.Len(), pos.Offset)
}

func TestBuffer_LineFrom(t *testing.T) {
	buf := NewBuffer("first\nsecond}\r\nthird")

	assert.Equal(t, "first", buf.LineFrom(0))
	assert.Equal(t, "}", buf.LineFrom(12))
	assert.Equal(t, "third", buf.LineFrom(15))
	assert.Equal(t, "", buf.LineFrom(buf.Len()))
}
