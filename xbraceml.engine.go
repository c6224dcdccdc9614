package xbraceml

import (
	"context"
	"strconv"

	"github.com/itsatony/go-xbraceml/internal"
	"go.uber.org/zap"
)

// Engine converts brace markup into tag markup.
// It is immutable after New and safe for concurrent use; every Convert call
// owns its own buffer.
type Engine struct {
	converter *internal.Converter
	registry  *internal.Registry
	config    *engineConfig
	logger    *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.maxIncludeDepth < 0 {
		return nil, NewInvalidOptionError(OptionNameMaxIncludeDepth, strconv.Itoa(config.maxIncludeDepth))
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := internal.NewRegistry(logger)
	for _, plugin := range config.plugins {
		if plugin == nil {
			return nil, NewInvalidOptionError(OptionNamePlugins, ErrMsgNilPlugin)
		}
		if err := registry.Register(plugin); err != nil {
			return nil, err
		}
	}

	var sink internal.WarningSink
	if config.warningHandler != nil {
		handler := config.warningHandler
		sink = func(w internal.Warning) {
			handler(warningFrom(w))
		}
	}

	converterConfig := internal.ConverterConfig{
		LongEmpty:              config.longEmpty,
		DisableSpecialElements: config.disableSpecialElements,
		MaxIncludeDepth:        config.maxIncludeDepth,
		IncludeRoot:            config.includeRoot,
	}
	converter := internal.NewConverter(converterConfig, registry, sink, logger)

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldPlugins, registry.Count()))

	return &Engine{
		converter: converter,
		registry:  registry,
		config:    config,
		logger:    logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Convert converts source and returns the tag markup.
// Structural problems are reported as warnings and never fail the conversion;
// plugin failures and include depth overruns do.
func (e *Engine) Convert(ctx context.Context, source string) (string, error) {
	out, err := e.converter.Convert(ctx, source)
	if err != nil {
		return "", convertError(err)
	}
	return out, nil
}

// Check scans source for structural warnings without running plugins,
// reading includes, or rendering anything.
func (e *Engine) Check(source string) *CheckResult {
	found := e.converter.Check(source)

	result := &CheckResult{
		warnings: make([]Warning, 0, len(found)),
	}
	for _, w := range found {
		result.warnings = append(result.warnings, warningFrom(w))
	}
	return result
}

// Plugins returns the registered plugins in precedence order.
func (e *Engine) Plugins() []Plugin {
	out := make([]Plugin, len(e.config.plugins))
	copy(out, e.config.plugins)
	return out
}
