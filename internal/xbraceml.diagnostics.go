package internal

import (
	"go.uber.org/zap"
)

// Warning is a non-fatal structural finding. Positions refer to the buffer
// as it was when the warning was raised, after any earlier rewrites.
type Warning struct {
	Kind     WarningKind
	Message  string
	Position Position
	Excerpt  string
	Path     string // set for include warnings
	Cause    error
}

// WarningSink receives warnings as they are raised.
type WarningSink func(Warning)

// newWarning builds a warning located at offset in buf.
func newWarning(buf *Buffer, kind WarningKind, message string, offset int) Warning {
	return Warning{
		Kind:     kind,
		Message:  message,
		Position: buf.Position(offset),
		Excerpt:  buf.LineFrom(offset),
	}
}

// logWarning writes a warning to the logger at warn level.
func logWarning(logger *zap.Logger, w Warning) {
	fields := []zap.Field{
		zap.String(LogFieldKind, string(w.Kind)),
		zap.Int(LogFieldOffset, w.Position.Offset),
		zap.Int(LogFieldLine, w.Position.Line),
		zap.Int(LogFieldColumn, w.Position.Column),
		zap.String(LogFieldExcerpt, w.Excerpt),
	}
	if w.Path != "" {
		fields = append(fields, zap.String(LogFieldPath, w.Path))
	}
	if w.Cause != nil {
		fields = append(fields, zap.Error(w.Cause))
	}
	logger.Warn(w.Message, fields...)
}

// collector accumulates warnings for a structural check.
type collector struct {
	warnings []Warning
}

func (c *collector) add(w Warning) {
	c.warnings = append(c.warnings, w)
}
