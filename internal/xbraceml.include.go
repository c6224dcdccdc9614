package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// include returns the replacement text for a $i element: the file named by
// the element content, converted first when the process attribute is set.
// A file that cannot be read becomes empty text and a warning.
func (c *Converter) include(ctx context.Context, buf *Buffer, e Element, fields ElementFields, depth int) (string, error) {
	path := c.resolveIncludePath(strings.TrimSpace(fields.Content))
	process := fields.HasAttribute(IncludeAttrProcess)

	data, err := os.ReadFile(path)
	if err != nil {
		w := newWarning(buf, WarningKindIncludeRead, WarnMsgIncludeReadFailed, e.Start)
		w.Path = path
		w.Cause = err
		c.report(w)
		return "", nil
	}

	c.logger.Debug(LogMsgIncludeResolved,
		zap.String(LogFieldPath, path),
		zap.Bool(LogFieldProcess, process),
		zap.Int(LogFieldDepth, depth),
	)

	if !process {
		return string(data), nil
	}

	if c.config.MaxIncludeDepth > 0 && depth >= c.config.MaxIncludeDepth {
		return "", NewIncludeDepthError(path, depth+1, buf.Position(e.Start))
	}
	return c.convert(ctx, string(data), depth+1)
}

// resolveIncludePath joins relative paths onto the include root.
func (c *Converter) resolveIncludePath(path string) string {
	if c.config.IncludeRoot == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.config.IncludeRoot, path)
}
