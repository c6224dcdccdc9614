package main

import (
	"context"
	"io"
	"strings"

	"github.com/itsatony/go-xbraceml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// settings holds the conversion options after layering flags, environment
// and configuration file.
type settings struct {
	longEmpty       bool
	disableSpecial  bool
	maxIncludeDepth int
	includeRoot     string
	plugins         []string
	verbose         bool
	quiet           bool
}

// newFlagSet creates a flag set that reports errors to the caller only.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages
	fs.SortFlags = false
	return fs
}

// addEngineFlags registers the options shared by convert and watch.
func addEngineFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagLongEmpty, FlagLongEmptyShort, false, "")
	fs.BoolP(FlagDisableSpecial, FlagDisableSpecialShort, false, "")
	fs.Int(FlagMaxIncludeDepth, xbraceml.DefaultMaxIncludeDepth, "")
	fs.String(FlagIncludeRoot, "", "")
	addPluginFlags(fs)
	addLogFlags(fs)
}

// addPluginFlags registers the options needed to discover plugins.
func addPluginFlags(fs *pflag.FlagSet) {
	fs.StringSliceP(FlagPlugin, FlagPluginShort, nil, "")
	fs.StringP(FlagConfig, FlagConfigShort, "", "")
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagVerbose, FlagVerboseShort, false, "")
	fs.BoolP(FlagQuiet, FlagQuietShort, false, "")
}

// loadSettings resolves every option with the precedence
// flag > XBRACEML_* environment > configuration file > default.
// Flags the command did not register fall back to the lower layers.
func loadSettings(fs *pflag.FlagSet) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	// Configuration file values sit between the environment and the flag defaults.
	v.SetDefault(FlagMaxIncludeDepth, xbraceml.DefaultMaxIncludeDepth)
	if path := v.GetString(FlagConfig); path != "" {
		cfg, err := xbraceml.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		v.SetDefault(FlagLongEmpty, cfg.LongEmpty)
		v.SetDefault(FlagDisableSpecial, cfg.DisableSpecialElements)
		v.SetDefault(FlagMaxIncludeDepth, cfg.MaxIncludeDepth)
		v.SetDefault(FlagIncludeRoot, cfg.IncludeRoot)
		v.SetDefault(FlagPlugin, cfg.Plugins)
	}

	return &settings{
		longEmpty:       v.GetBool(FlagLongEmpty),
		disableSpecial:  v.GetBool(FlagDisableSpecial),
		maxIncludeDepth: v.GetInt(FlagMaxIncludeDepth),
		includeRoot:     v.GetString(FlagIncludeRoot),
		plugins:         v.GetStringSlice(FlagPlugin),
		verbose:         v.GetBool(FlagVerbose),
		quiet:           v.GetBool(FlagQuiet),
	}, nil
}

// config converts the settings into the library configuration.
func (s *settings) config() *xbraceml.Config {
	return &xbraceml.Config{
		LongEmpty:              s.longEmpty,
		DisableSpecialElements: s.disableSpecial,
		MaxIncludeDepth:        s.maxIncludeDepth,
		IncludeRoot:            s.includeRoot,
		Plugins:                s.plugins,
	}
}

// newEngine discovers the configured plugins and builds an engine.
func (s *settings) newEngine(ctx context.Context, logger *zap.Logger) (*xbraceml.Engine, error) {
	opts, err := s.config().Options(ctx, logger)
	if err != nil {
		return nil, err
	}
	return xbraceml.New(opts...)
}

// newLogger builds the console logger the CLI writes diagnostics with.
func newLogger(stderr io.Writer, s *settings) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case s.quiet:
		level = zapcore.ErrorLevel
	case s.verbose:
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core)
}
