package xbraceml

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	longEmpty              bool
	disableSpecialElements bool
	maxIncludeDepth        int
	includeRoot            string
	plugins                []Plugin
	warningHandler         func(Warning)
	logger                 *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

// WithLongEmpty renders empty elements as <name></name> instead of <name/>.
// Default: false
func WithLongEmpty(enabled bool) Option {
	return func(c *engineConfig) {
		c.longEmpty = enabled
	}
}

// WithSpecialElements enables or disables the reserved $-elements
// ($, $o, $c, $s, $i). When disabled those names reach plugins and the
// generic renderer like any other name.
// Default: true
func WithSpecialElements(enabled bool) Option {
	return func(c *engineConfig) {
		c.disableSpecialElements = !enabled
	}
}

// WithPlugins appends plugins. Earlier plugins win when several claim a name.
func WithPlugins(plugins ...Plugin) Option {
	return func(c *engineConfig) {
		c.plugins = append(c.plugins, plugins...)
	}
}

// WithMaxIncludeDepth sets the maximum nesting of processed includes.
// Use 0 for unlimited depth.
// Default: 64
func WithMaxIncludeDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxIncludeDepth = depth
	}
}

// WithIncludeRoot sets the directory relative include paths are resolved against.
// Default: "" (the working directory)
func WithIncludeRoot(dir string) Option {
	return func(c *engineConfig) {
		c.includeRoot = dir
	}
}

// WithWarningHandler registers a callback for structural warnings raised
// during Convert. Warnings are logged either way.
func WithWarningHandler(handler func(Warning)) Option {
	return func(c *engineConfig) {
		c.warningHandler = handler
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
