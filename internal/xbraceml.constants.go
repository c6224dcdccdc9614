package internal

// Structural bytes of the brace markup
const (
	MarkerChar    byte = '\\'
	BodyOpenChar  byte = '{'
	BodyCloseChar byte = '}'
)

// VerbatimToken is deleted from the buffer wherever it appears, in pairs.
const VerbatimToken = `\%`

// Unset marks an element offset that has not been seen yet.
const Unset = -1

// Special element names, recognized unless special elements are disabled
const (
	SpecialNameComment = "$"
	SpecialNameOpen    = "$o"
	SpecialNameClose   = "$c"
	SpecialNameMarker  = "$s"
	SpecialNameInclude = "$i"
)

// Literal replacements for special elements
const (
	LiteralOpen    = "{"
	LiteralClose   = "}"
	LiteralMarker  = `\`
	LiteralComment = ""
)

// IncludeAttrProcess converts included text before it is spliced in.
const IncludeAttrProcess = "process"

// Tag symbols written by the generic renderer
const (
	TagOpen       = "<"
	TagEnd        = ">"
	TagSelfClose  = "/"
	TagCloseStart = "</"
)

// Default limits
const (
	DefaultMaxIncludeDepth = 64
	initialStackCapacity   = 16
)

// WarningKind classifies a structural warning
type WarningKind string

// Warning kinds
const (
	WarningKindVerbatim        WarningKind = "unterminated_verbatim"
	WarningKindStrayBodyOpen   WarningKind = "stray_body_open"
	WarningKindUnmatchedClose  WarningKind = "unmatched_body_close"
	WarningKindCloseBeforeBody WarningKind = "close_before_body"
	WarningKindUnclosedElement WarningKind = "unclosed_element"
	WarningKindIncludeRead     WarningKind = "include_read_failed"
)

// Warning messages
const (
	WarnMsgUnterminatedVerbatim = "unterminated verbatim marker"
	WarnMsgStrayBodyOpen        = "body open that does not start a body"
	WarnMsgUnmatchedClose       = "body close but no element is left"
	WarnMsgCloseBeforeBody      = "body close before the element body started"
	WarnMsgUnclosedElement      = "element is never closed"
	WarnMsgIncludeReadFailed    = "include read failed, substituting empty text"
)

// Error messages
const (
	ErrMsgNilPlugin             = "plugin cannot be nil"
	ErrMsgPluginFailed          = "plugin execution failed"
	ErrMsgIncludeDepthExceeded  = "maximum include depth exceeded"
	ErrMsgConversionInterrupted = "conversion interrupted"
)

// Log messages
const (
	LogMsgConverterCreated   = "converter created"
	LogMsgConvertStart       = "starting conversion"
	LogMsgConvertEnd         = "conversion complete"
	LogMsgPluginInvoked      = "plugin invoked"
	LogMsgPluginComplete     = "plugin complete"
	LogMsgIncludeResolved    = "include resolved"
	LogMsgRegistryCreated    = "plugin registry created"
	LogMsgPluginRegistered   = "plugin registered"
	LogMsgPluginShadowed     = "element already claimed by an earlier plugin - first-match-wins"
	LogMsgCheckStart         = "starting structural check"
	LogMsgCheckEnd           = "structural check complete"
	LogMsgCheckScanFailed    = "structural check stopped early"
	LogMsgSpecialElement     = "special element rendered"
	LogMsgGenericElement     = "generic element rendered"
	LogMsgElementDispatching = "dispatching element"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldOutput   = "output_length"
	LogFieldKind     = "kind"
	LogFieldOffset   = "offset"
	LogFieldLine     = "line"
	LogFieldColumn   = "column"
	LogFieldExcerpt  = "excerpt"
	LogFieldElement  = "element"
	LogFieldPath     = "path"
	LogFieldDepth    = "depth"
	LogFieldDuration = "duration"
	LogFieldPlugins  = "plugin_count"
	LogFieldWarnings = "warning_count"
	LogFieldProcess  = "process"
)

// Format strings
const (
	ErrFmtElementMessage = "%s: %s"
	ErrFmtPathDepth      = "%s: %s (depth %d)"
	PositionFmt          = "line %d, column %d"
)
