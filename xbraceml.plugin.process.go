package xbraceml

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"
)

// ProcessPlugin is a Plugin backed by an external program.
//
// Each element is rendered by a fresh process: the request
// "name\r\n\r\nattributes\r\n\r\ncontent" is written to its stdin, stdin is
// closed, and everything it prints on stdout becomes the replacement text.
type ProcessPlugin struct {
	target   string
	elements []string
	logger   *zap.Logger
}

// NewProcessPlugin creates a handle for target claiming the given element
// names. Empty names are dropped; a handle must claim at least one name.
func NewProcessPlugin(target string, elements []string, logger *zap.Logger) (*ProcessPlugin, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, cuserr.NewValidationError(ErrCodeDiscovery, ErrMsgEmptyTarget)
	}
	names := normalizeElements(elements)
	if len(names) == 0 {
		return nil, NewNoElementsError(target)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessPlugin{
		target:   target,
		elements: names,
		logger:   logger,
	}, nil
}

// Target returns the program the plugin runs.
func (p *ProcessPlugin) Target() string {
	return p.target
}

// Elements returns the claimed element names in discovery order.
func (p *ProcessPlugin) Elements() []string {
	return append([]string(nil), p.elements...)
}

// Handles reports whether name is claimed.
func (p *ProcessPlugin) Handles(name string) bool {
	return claims(p.elements, name)
}

// Execute runs the plugin once for a single element.
func (p *ProcessPlugin) Execute(ctx context.Context, name, attributes, content string) (string, error) {
	cmd := exec.CommandContext(ctx, p.target)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", NewPluginError(p.target, name, err)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", NewPluginError(p.target, name, err)
	}

	writeErr := writeRequest(stdin, name, attributes, content)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", NewPluginError(p.target, name, ctxErr)
	}

	if stderr.Len() > 0 {
		p.logger.Warn(LogMsgPluginStderr,
			zap.String(LogFieldTarget, p.target),
			zap.String(LogFieldElement, name),
			zap.String(LogFieldStderr, stderrTail(stderr.Bytes())))
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		p.logger.Warn(LogMsgPluginExitStatus,
			zap.String(LogFieldTarget, p.target),
			zap.String(LogFieldElement, name),
			zap.Int(LogFieldExitCode, exitErr.ExitCode()))
	default:
		return "", NewPluginError(p.target, name, waitErr)
	}

	// A plugin that exits before reading the whole request breaks the pipe.
	for _, err := range []error{writeErr, closeErr} {
		if err != nil {
			return "", NewPluginError(p.target, name, err)
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", NewPluginOutputError(p.target, name)
	}
	return stdout.String(), nil
}

// writeRequest writes the three request fields separated by PluginSeparator.
func writeRequest(w io.Writer, name, attributes, content string) error {
	var req strings.Builder
	req.Grow(len(name) + len(attributes) + len(content) + 2*len(PluginSeparator))
	req.WriteString(name)
	req.WriteString(PluginSeparator)
	req.WriteString(attributes)
	req.WriteString(PluginSeparator)
	req.WriteString(content)

	_, err := io.WriteString(w, req.String())
	return err
}

func stderrTail(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > stderrTailLimit {
		b = b[len(b)-stderrTailLimit:]
	}
	return strings.ToValidUTF8(string(b), "�")
}

// DiscoverPlugin asks target which elements it renders by running
// "target elements" and splitting its stdout on whitespace.
// Any failure is returned as an error.
func DiscoverPlugin(ctx context.Context, target string, logger *zap.Logger) (*ProcessPlugin, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, cuserr.NewValidationError(ErrCodeDiscovery, ErrMsgEmptyTarget)
	}

	out, err := exec.CommandContext(ctx, target, PluginArgElements).Output()
	if err != nil {
		return nil, NewDiscoveryError(target, err)
	}
	if !utf8.Valid(out) {
		return nil, cuserr.NewValidationError(ErrCodeDiscovery, ErrMsgPluginOutputInvalid).
			WithMetadata(MetaKeyTarget, target)
	}

	plugin, err := NewProcessPlugin(target, strings.Fields(string(out)), logger)
	if err != nil {
		return nil, err
	}

	logger.Debug(LogMsgPluginDiscovered,
		zap.String(LogFieldTarget, target),
		zap.Strings(LogFieldElements, plugin.elements))
	return plugin, nil
}

// DiscoverPlugins resolves path into plugin handles.
//
// A directory contributes every regular file directly inside it, or
// symlinked into it, in name order; candidates that fail discovery are logged and skipped. A file is
// discovered by its absolute path and anything else is treated as a command
// name looked up in PATH. In those two modes a failure is returned.
func DiscoverPlugins(ctx context.Context, path string, logger *zap.Logger) ([]*ProcessPlugin, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, statErr := os.Stat(path)
	switch {
	case statErr == nil && info.IsDir():
		return discoverDirectory(ctx, path, logger)
	case statErr == nil:
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, NewDiscoveryError(path, err)
		}
		path = abs
	}

	plugin, err := DiscoverPlugin(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	return []*ProcessPlugin{plugin}, nil
}

func discoverDirectory(ctx context.Context, dir string, logger *zap.Logger) ([]*ProcessPlugin, error) {
	logger.Debug(LogMsgDiscoveryDirectoryStart, zap.String(LogFieldPath, dir))

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewDiscoveryError(dir, err)
	}
	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, NewDiscoveryError(dir, err)
	}

	plugins := make([]*ProcessPlugin, 0, len(entries))
	for _, entry := range entries {
		target := filepath.Join(abs, entry.Name())
		// Symlinks count when they resolve to a regular file.
		info, err := os.Stat(target)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		plugin, err := DiscoverPlugin(ctx, target, logger)
		if err != nil {
			if ctx.Err() != nil {
				return nil, NewDiscoveryError(dir, ctx.Err())
			}
			logger.Warn(LogMsgPluginSkipped,
				zap.String(LogFieldTarget, target),
				zap.Error(err))
			continue
		}
		plugins = append(plugins, plugin)
	}
	return plugins, nil
}
