package xbraceml

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the engine options.
type Config struct {
	LongEmpty              bool     `yaml:"long_empty" json:"long_empty"`
	DisableSpecialElements bool     `yaml:"disable_special_elements" json:"disable_special_elements"`
	MaxIncludeDepth        int      `yaml:"max_include_depth" json:"max_include_depth"`
	IncludeRoot            string   `yaml:"include_root,omitempty" json:"include_root,omitempty"`
	Plugins                []string `yaml:"plugins,omitempty" json:"plugins,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		MaxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

// ParseConfig parses YAML configuration. Keys not listed in Config are
// rejected; an empty document yields DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError(ErrMsgConfigParseFailed, "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a configuration file. A relative
// include_root, and plugin entries written as relative paths, are resolved
// against the directory holding the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigReadFailed, path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, withConfigPath(err, path)
	}

	dir := filepath.Dir(path)
	if cfg.IncludeRoot != "" && !filepath.IsAbs(cfg.IncludeRoot) {
		cfg.IncludeRoot = filepath.Join(dir, cfg.IncludeRoot)
	}
	for i, plugin := range cfg.Plugins {
		if isRelativePath(plugin) {
			cfg.Plugins[i] = filepath.Join(dir, plugin)
		}
	}
	return cfg, nil
}

// Validate checks option ranges.
func (c *Config) Validate() error {
	if c.MaxIncludeDepth < 0 {
		return NewInvalidOptionError(OptionNameMaxIncludeDepth, strconv.Itoa(c.MaxIncludeDepth))
	}
	for _, plugin := range c.Plugins {
		if strings.TrimSpace(plugin) == "" {
			return NewInvalidOptionError(OptionNamePlugins, plugin)
		}
	}
	return nil
}

// Options discovers the configured plugins, in order, and returns the
// engine options the configuration describes.
func (c *Config) Options(ctx context.Context, logger *zap.Logger) ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []Option{
		WithLongEmpty(c.LongEmpty),
		WithSpecialElements(!c.DisableSpecialElements),
		WithMaxIncludeDepth(c.MaxIncludeDepth),
		WithIncludeRoot(c.IncludeRoot),
		WithLogger(logger),
	}

	discovered := 0
	for _, path := range c.Plugins {
		found, err := DiscoverPlugins(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		for _, plugin := range found {
			opts = append(opts, WithPlugins(plugin))
		}
		discovered += len(found)
	}

	logger.Debug(LogMsgConfigLoaded, zap.Int(LogFieldPlugins, discovered))
	return opts, nil
}

// isRelativePath reports entries that name a path rather than a command:
// relative and containing a separator, such as "./plugins" or "bin/tool".
func isRelativePath(entry string) bool {
	if filepath.IsAbs(entry) {
		return false
	}
	return strings.ContainsRune(entry, '/') || strings.ContainsRune(entry, filepath.Separator)
}

// withConfigPath records the file name on a parse or validation error.
func withConfigPath(err error, path string) error {
	var custom *cuserr.CustomError
	if errors.As(err, &custom) {
		return custom.WithMetadata(MetaKeyPath, path)
	}
	return err
}
