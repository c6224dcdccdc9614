package xbraceml

import (
	"github.com/itsatony/go-xbraceml/internal"
)

// Default configuration values
const (
	// DefaultMaxIncludeDepth bounds processed include nesting so a file that
	// includes itself fails with an error instead of exhausting the stack.
	DefaultMaxIncludeDepth = internal.DefaultMaxIncludeDepth
)

// Plugin protocol constants
const (
	// PluginArgElements is the single argument of the discovery call.
	PluginArgElements = "elements"
	// PluginSeparator separates name, attributes and content on plugin stdin.
	PluginSeparator = "\r\n\r\n"
)

// Special element names, recognized unless disabled with WithSpecialElements(false)
const (
	SpecialNameComment = internal.SpecialNameComment
	SpecialNameOpen    = internal.SpecialNameOpen
	SpecialNameClose   = internal.SpecialNameClose
	SpecialNameMarker  = internal.SpecialNameMarker
	SpecialNameInclude = internal.SpecialNameInclude
)

// IncludeAttrProcess is the $i attribute that converts included text before splicing.
const IncludeAttrProcess = internal.IncludeAttrProcess

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyTarget  = "target"
	MetaKeyElement = "element"
	MetaKeyPath    = "path"
	MetaKeyDepth   = "depth"
	MetaKeyLine    = "line"
	MetaKeyColumn  = "column"
	MetaKeyOffset  = "offset"
	MetaKeyOption  = "option"
	MetaKeyValue   = "value"
)

// Log messages
const (
	LogMsgEngineCreated           = "engine created"
	LogMsgPluginDiscovered        = "plugin discovered"
	LogMsgPluginSkipped           = "plugin candidate skipped"
	LogMsgPluginStderr            = "plugin wrote to stderr"
	LogMsgPluginExitStatus        = "plugin exited with non-zero status"
	LogMsgDiscoveryDirectoryStart = "scanning plugin directory"
	LogMsgConfigLoaded            = "configuration loaded"
)

// Log field names
const (
	LogFieldTarget   = "target"
	LogFieldElement  = "element"
	LogFieldElements = "elements"
	LogFieldPath     = "path"
	LogFieldPlugins  = "plugin_count"
	LogFieldStderr   = "stderr"
	LogFieldExitCode = "exit_code"
)

// PositionFormat renders a Position as "line L, column C".
const PositionFormat = internal.PositionFmt

// stderrTailLimit caps how much plugin stderr is logged.
const stderrTailLimit = 2048

// Option names used in error metadata and configuration files
const (
	OptionNameMaxIncludeDepth = "max_include_depth"
	OptionNamePlugins         = "plugins"
)
