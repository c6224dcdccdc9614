package internal

import (
	"strings"
)

// Element is the parse-time record of one element's offsets in the buffer.
// Start is the marker, BodyStart the body open delimiter, End the body close delimiter.
type Element struct {
	Start     int
	BodyStart int
	End       int
}

// NewElement creates an open element whose marker sits at start.
func NewElement(start int) Element {
	return Element{
		Start:     start,
		BodyStart: Unset,
		End:       Unset,
	}
}

// HasBody reports whether the body open delimiter has been seen.
func (e Element) HasBody() bool {
	return e.BodyStart != Unset
}

// IsClosed reports whether the body close delimiter has been seen.
func (e Element) IsClosed() bool {
	return e.End != Unset
}

// ElementFields holds the text extracted from a closed element.
type ElementFields struct {
	Name       string
	Attributes string
	Content    string
}

// HasAttribute reports whether token appears among the whitespace-separated attributes.
func (f ElementFields) HasAttribute(token string) bool {
	for _, field := range strings.Fields(f.Attributes) {
		if field == token {
			return true
		}
	}
	return false
}

// ExtractFields reads name, attributes and content of a closed element from buf.
//
// The name is the run of non-whitespace bytes after the marker, ending at the
// first whitespace byte or the body start. Exactly one separating whitespace
// byte is skipped before the attributes.
func ExtractFields(buf *Buffer, e Element) ElementFields {
	var fields ElementFields

	nameStart := e.Start + 1
	nameEnd := nameStart
	for nameEnd < e.BodyStart && !isASCIISpace(buf.At(nameEnd)) {
		nameEnd++
	}
	fields.Name = buf.Slice(nameStart, nameEnd)

	if nameEnd+1 < e.BodyStart {
		fields.Attributes = buf.Slice(nameEnd+1, e.BodyStart)
	}

	if e.BodyStart+1 < e.End {
		fields.Content = buf.Slice(e.BodyStart+1, e.End)
	}

	return fields
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
