package internal

import (
	"context"

	"go.uber.org/zap"
)

// ConverterConfig holds conversion options. It is never mutated after the
// converter is created and is shared by nested include conversions.
type ConverterConfig struct {
	LongEmpty              bool   // Render empty elements as <name></name>
	DisableSpecialElements bool   // Treat $-names like any other name
	MaxIncludeDepth        int    // Maximum processed include nesting (0 = unlimited)
	IncludeRoot            string // Base directory for relative include paths
}

// DefaultConverterConfig returns the default converter configuration.
func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		MaxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

// Converter drives the scanner and dispatcher over a buffer.
type Converter struct {
	config   ConverterConfig
	registry *Registry
	sink     WarningSink
	logger   *zap.Logger
}

// NewConverter creates a converter. A nil registry means no plugins and a nil
// sink means warnings are only logged.
func NewConverter(config ConverterConfig, registry *Registry, sink WarningSink, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry(logger)
	}
	logger.Debug(LogMsgConverterCreated, zap.Int(LogFieldPlugins, registry.Count()))

	return &Converter{
		config:   config,
		registry: registry,
		sink:     sink,
		logger:   logger,
	}
}

// Config returns the converter configuration.
func (c *Converter) Config() ConverterConfig {
	return c.config
}

// Convert converts source and returns the rendered output.
func (c *Converter) Convert(ctx context.Context, source string) (string, error) {
	return c.convert(ctx, source, 0)
}

// convert is the recursive driver; depth counts processed includes.
func (c *Converter) convert(ctx context.Context, source string, depth int) (string, error) {
	c.logger.Debug(LogMsgConvertStart,
		zap.Int(LogFieldSource, len(source)),
		zap.Int(LogFieldDepth, depth),
	)

	buf := NewBuffer(source)
	dispatch := func(e Element) (int, error) {
		return c.dispatch(ctx, buf, e, depth)
	}
	if err := scan(ctx, buf, dispatch, c.report); err != nil {
		return "", err
	}

	c.logger.Debug(LogMsgConvertEnd,
		zap.Int(LogFieldOutput, buf.Len()),
		zap.Int(LogFieldDepth, depth),
	)
	return buf.String(), nil
}

// Check scans source for structural warnings without rendering anything.
// Plugins are not run and includes are not read.
func (c *Converter) Check(source string) []Warning {
	c.logger.Debug(LogMsgCheckStart, zap.Int(LogFieldSource, len(source)))

	var found collector
	buf := NewBuffer(source)
	skip := func(e Element) (int, error) {
		return e.End + 1, nil
	}
	if err := scan(context.Background(), buf, skip, found.add); err != nil {
		c.logger.Debug(LogMsgCheckScanFailed, zap.Error(err))
	}

	c.logger.Debug(LogMsgCheckEnd, zap.Int(LogFieldWarnings, len(found.warnings)))
	return found.warnings
}

// report logs a warning and forwards it to the sink.
func (c *Converter) report(w Warning) {
	logWarning(c.logger, w)
	if c.sink != nil {
		c.sink(w)
	}
}
