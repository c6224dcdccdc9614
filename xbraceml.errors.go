package xbraceml

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-xbraceml/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Plugin errors
	ErrMsgPluginFailed        = "plugin execution failed"
	ErrMsgPluginOutputInvalid = "plugin output is not valid UTF-8"
	ErrMsgElementFailed       = "element rendering failed"

	// Discovery errors
	ErrMsgDiscoveryFailed = "plugin discovery failed"
	ErrMsgNoElements      = "plugin claims no elements"
	ErrMsgEmptyTarget     = "plugin target cannot be empty"

	// Include errors
	ErrMsgIncludeDepthExceeded = "maximum include depth exceeded"

	// Conversion errors
	ErrMsgConvertFailed         = "conversion failed"
	ErrMsgConversionInterrupted = "conversion interrupted"

	// Configuration errors
	ErrMsgConfigReadFailed  = "failed to read configuration"
	ErrMsgConfigParseFailed = "failed to parse configuration"
	ErrMsgInvalidOption     = "invalid option value"
	ErrMsgNilPlugin         = "plugin cannot be nil"
)

// Error code constants for categorization
const (
	ErrCodePlugin    = "XBRACEML_PLUGIN"
	ErrCodeDiscovery = "XBRACEML_DISCOVERY"
	ErrCodeInclude   = "XBRACEML_INCLUDE"
	ErrCodeConvert   = "XBRACEML_CONVERT"
	ErrCodeConfig    = "XBRACEML_CONFIG"
)

// NewPluginError creates an error for a failed plugin process
func NewPluginError(target, element string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodePlugin, ErrMsgPluginFailed).
		WithMetadata(MetaKeyTarget, target).
		WithMetadata(MetaKeyElement, element)
}

// NewPluginOutputError creates an error for plugin output that is not UTF-8
func NewPluginOutputError(target, element string) error {
	return cuserr.NewValidationError(ErrCodePlugin, ErrMsgPluginOutputInvalid).
		WithMetadata(MetaKeyTarget, target).
		WithMetadata(MetaKeyElement, element)
}

// NewElementError creates an error locating a rendering failure in the document
func NewElementError(element string, pos Position, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodePlugin, ErrMsgElementFailed).
		WithMetadata(MetaKeyElement, element).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewDiscoveryError creates an error for a plugin that could not be queried
func NewDiscoveryError(target string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeDiscovery, ErrMsgDiscoveryFailed).
		WithMetadata(MetaKeyTarget, target)
}

// NewNoElementsError creates an error for a plugin that claims nothing
func NewNoElementsError(target string) error {
	return cuserr.NewValidationError(ErrCodeDiscovery, ErrMsgNoElements).
		WithMetadata(MetaKeyTarget, target)
}

// NewIncludeDepthError creates an error for include nesting beyond the limit
func NewIncludeDepthError(path string, depth int, pos Position) error {
	return cuserr.NewValidationError(ErrCodeInclude, ErrMsgIncludeDepthExceeded).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth)).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewInterruptedError creates an error for a conversion stopped by its context
func NewInterruptedError(pos Position, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConvert, ErrMsgConversionInterrupted).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewConfigError creates a configuration error
func NewConfigError(msg string, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.WithMetadata(MetaKeyPath, path)
}

// NewInvalidOptionError creates an error for an out-of-range option
func NewInvalidOptionError(option, value string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidOption).
		WithMetadata(MetaKeyOption, option).
		WithMetadata(MetaKeyValue, value)
}

// convertError maps engine errors onto the public error values.
func convertError(err error) error {
	var (
		depthErr    *internal.IncludeDepthError
		interrupted *internal.InterruptedError
		dispatchErr *internal.DispatchError
	)

	switch {
	case errors.As(err, &depthErr):
		return NewIncludeDepthError(depthErr.Path, depthErr.Depth, positionFrom(depthErr.Position))
	case errors.As(err, &interrupted):
		return NewInterruptedError(positionFrom(interrupted.Position), interrupted.Cause)
	case errors.As(err, &dispatchErr):
		return NewElementError(dispatchErr.Element, positionFrom(dispatchErr.Position), dispatchErr.Cause)
	default:
		return cuserr.WrapStdError(err, ErrCodeConvert, ErrMsgConvertFailed)
	}
}
