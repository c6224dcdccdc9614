package main

// Command names
const (
	CmdNameConvert = "convert"
	CmdNameCheck   = "check"
	CmdNamePlugins = "plugins"
	CmdNameWatch   = "watch"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagLongEmpty       = "long-empty"
	FlagDisableSpecial  = "disable-special-elements"
	FlagPlugin          = "plugin"
	FlagConfig          = "config"
	FlagMaxIncludeDepth = "max-include-depth"
	FlagIncludeRoot     = "include-root"
	FlagVerbose         = "verbose"
	FlagQuiet           = "quiet"
	FlagFormat          = "format"
	FlagStrictMode      = "strict"
)

// Flag names - short form
const (
	FlagLongEmptyShort      = "l"
	FlagDisableSpecialShort = "d"
	FlagPluginShort         = "p"
	FlagConfigShort         = "c"
	FlagVerboseShort        = "v"
	FlagQuietShort          = "q"
	FlagFormatShort         = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// EnvPrefix prefixes environment overrides, e.g. XBRACEML_LONG_EMPTY=true.
const EnvPrefix = "XBRACEML"

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess       = 0
	ExitCodeError         = 1
	ExitCodeUsageError    = 2
	ExitCodeWarningsFound = 3
	ExitCodeInputError    = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand     = "unknown command"
	ErrMsgInvalidArguments   = "invalid arguments"
	ErrMsgMissingSource      = "source required"
	ErrMsgTooManyArguments   = "too many arguments"
	ErrMsgWatchNeedsFile     = "watch needs a source file, not stdin"
	ErrMsgReadFileFailed     = "failed to read file"
	ErrMsgWriteOutputFailed  = "failed to write output"
	ErrMsgConfigFailed       = "failed to load configuration"
	ErrMsgDiscoveryFailed    = "plugin discovery failed"
	ErrMsgEngineFailed       = "failed to create engine"
	ErrMsgConvertFailed      = "conversion failed"
	ErrMsgInvalidFormat      = "invalid output format"
	ErrMsgWatchFailed        = "failed to watch source"
	ErrMsgWatchSameFile      = "destination would overwrite the watched source"
	ErrMsgJSONMarshalFailed  = "failed to marshal JSON"
	ErrMsgNoPluginsRequested = "no plugin targets given"
)

// Log messages
const (
	LogMsgWatchStarted   = "watching source for changes"
	LogMsgWatchEvent     = "source changed"
	LogMsgWatchConverted = "source converted"
	LogMsgWatchFailed    = "conversion after change failed"
	LogMsgWatchError     = "watcher error"
)

// Log field names
const (
	LogFieldSource      = "source"
	LogFieldDestination = "destination"
	LogFieldEvent       = "event"
)

// Help text templates
const (
	HelpMainUsage = `xbraceml - Brace markup to tag markup converter

Usage:
    xbraceml <command> [options]

Commands:
    convert     Convert a document
    check       Report structural warnings without converting
    plugins     Discover plugins and list the elements they claim
    watch       Convert a document again whenever it changes
    version     Show version information
    help        Show help for a command

Use "xbraceml help <command>" for more information about a command.`

	HelpConvertUsage = `Convert a document

Usage:
    xbraceml convert [options] <source> [destination]

Source and destination may be "-" for stdin and stdout (default destination: stdout).

Options:
    -l, --long-empty                Render empty elements as <name></name>
    -d, --disable-special-elements  Treat $-names like any other element
    -p, --plugin <path>             Plugin program, directory or command (repeatable)
    -c, --config <file>             YAML configuration file
        --max-include-depth <n>     Maximum processed include nesting, 0 for unlimited (default: 64)
        --include-root <dir>        Directory relative include paths resolve against
    -v, --verbose                   Log debug output to stderr
    -q, --quiet                     Log errors only

Every option can also be set with an XBRACEML_ environment variable,
e.g. XBRACEML_LONG_EMPTY=true or XBRACEML_PLUGIN=./plugins.

Examples:
    xbraceml convert page.xb page.html
    xbraceml convert -p ./plugins page.xb page.html
    cat page.xb | xbraceml convert -l - -`

	HelpCheckUsage = `Report structural warnings without converting

Usage:
    xbraceml check [options] <source>

Options:
    -F, --format <format>   Output format: text, json (default: text)
        --strict            Exit with status 3 when warnings are found
    -c, --config <file>     YAML configuration file

Examples:
    xbraceml check page.xb
    xbraceml check --strict -F json page.xb`

	HelpPluginsUsage = `Discover plugins and list the elements they claim

Usage:
    xbraceml plugins [options]

Options:
    -p, --plugin <path>     Plugin program, directory or command (repeatable)
    -c, --config <file>     YAML configuration file
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    xbraceml plugins -p ./plugins`

	HelpWatchUsage = `Convert a document again whenever it changes

Usage:
    xbraceml watch [options] <source> [destination]

Takes the same options as convert. Runs until interrupted.

Examples:
    xbraceml watch -p ./plugins page.xb page.html`

	HelpVersionUsage = `Show version information

Usage:
    xbraceml version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    xbraceml help [command]

Commands:
    convert     Show help for convert command
    check       Show help for check command
    plugins     Show help for plugins command
    watch       Show help for watch command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "xbraceml version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Check output format templates
const (
	CheckTextClean         = "No structural warnings"
	CheckTextHeader        = "Structural warnings:"
	CheckTextWarningFormat = "  [%s] %s at line %d, column %d: %s"
	CheckTextSummary       = "%d warning(s)"
)

// Plugins output format templates
const (
	PluginsTextNone   = "No plugins found"
	PluginsTextFormat = "%s: %s"
)

// CLI metadata
const (
	CLIName        = "xbraceml"
	CLIDescription = "Brace markup to tag markup converter"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
