package xbraceml

import (
	"fmt"

	"github.com/itsatony/go-xbraceml/internal"
)

// Position represents a location in the document being converted
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf(PositionFormat, p.Line, p.Column)
}

func positionFrom(p internal.Position) Position {
	return Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// WarningKind classifies a structural warning.
type WarningKind string

// Warning kinds
const (
	WarningKindVerbatim        WarningKind = WarningKind(internal.WarningKindVerbatim)
	WarningKindStrayBodyOpen   WarningKind = WarningKind(internal.WarningKindStrayBodyOpen)
	WarningKindUnmatchedClose  WarningKind = WarningKind(internal.WarningKindUnmatchedClose)
	WarningKindCloseBeforeBody WarningKind = WarningKind(internal.WarningKindCloseBeforeBody)
	WarningKindUnclosedElement WarningKind = WarningKind(internal.WarningKindUnclosedElement)
	WarningKindIncludeRead     WarningKind = WarningKind(internal.WarningKindIncludeRead)
)

// Warning is a non-fatal finding raised during conversion or checking.
// The offending text is kept in the output as literal text.
type Warning struct {
	Kind     WarningKind
	Message  string
	Position Position
	Excerpt  string // Text from the position to the end of its line
	Path     string // Include path, for include warnings
	Cause    error  // Underlying error, for include warnings
}

// String returns a one-line description of the warning.
func (w Warning) String() string {
	msg := w.Position.String() + ": " + w.Message
	if w.Path != "" {
		msg += ": " + w.Path
	}
	if w.Excerpt != "" {
		msg += ": " + w.Excerpt
	}
	return msg
}

func warningFrom(w internal.Warning) Warning {
	return Warning{
		Kind:     WarningKind(w.Kind),
		Message:  w.Message,
		Position: positionFrom(w.Position),
		Excerpt:  w.Excerpt,
		Path:     w.Path,
		Cause:    w.Cause,
	}
}

// CheckResult contains the structural warnings found by Engine.Check.
type CheckResult struct {
	warnings []Warning
}

// Warnings returns all warnings in document order.
func (r *CheckResult) Warnings() []Warning {
	return r.warnings
}

// HasWarnings returns true if any warning was found.
func (r *CheckResult) HasWarnings() bool {
	return len(r.warnings) > 0
}

// Count returns the number of warnings.
func (r *CheckResult) Count() int {
	return len(r.warnings)
}
