package internal

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// dispatch rewrites the span of a closed element in place and returns the
// offset of the first byte after the rewrite. Order: special elements,
// plugins (first match wins), generic tag rendering.
func (c *Converter) dispatch(ctx context.Context, buf *Buffer, e Element, depth int) (int, error) {
	fields := ExtractFields(buf, e)
	c.logger.Debug(LogMsgElementDispatching,
		zap.String(LogFieldElement, fields.Name),
		zap.Int(LogFieldOffset, e.Start),
	)

	if !c.config.DisableSpecialElements {
		if next, handled, err := c.dispatchSpecial(ctx, buf, e, fields, depth); handled {
			return next, err
		}
	}

	if plugin, ok := c.registry.Lookup(fields.Name); ok {
		return c.dispatchPlugin(ctx, buf, e, fields, plugin)
	}

	return c.renderGeneric(buf, e, fields), nil
}

// dispatchSpecial handles the reserved $-names. handled is false when the
// name is not special.
func (c *Converter) dispatchSpecial(ctx context.Context, buf *Buffer, e Element, fields ElementFields, depth int) (next int, handled bool, err error) {
	var replacement string

	switch fields.Name {
	case SpecialNameOpen:
		replacement = LiteralOpen
	case SpecialNameClose:
		replacement = LiteralClose
	case SpecialNameMarker:
		replacement = LiteralMarker
	case SpecialNameComment:
		replacement = LiteralComment
	case SpecialNameInclude:
		replacement, err = c.include(ctx, buf, e, fields, depth)
		if err != nil {
			return 0, true, err
		}
	default:
		return 0, false, nil
	}

	c.logger.Debug(LogMsgSpecialElement, zap.String(LogFieldElement, fields.Name))
	return buf.Replace(e.Start, e.End+1, replacement), true, nil
}

// dispatchPlugin replaces the element span with the plugin's output.
func (c *Converter) dispatchPlugin(ctx context.Context, buf *Buffer, e Element, fields ElementFields, plugin Plugin) (int, error) {
	c.logger.Debug(LogMsgPluginInvoked,
		zap.String(LogFieldElement, fields.Name),
		zap.Int(LogFieldOffset, e.Start),
	)
	started := time.Now()

	output, err := plugin.Execute(ctx, fields.Name, fields.Attributes, fields.Content)
	if err != nil {
		return 0, NewDispatchError(ErrMsgPluginFailed, fields.Name, buf.Position(e.Start), err)
	}

	c.logger.Debug(LogMsgPluginComplete,
		zap.String(LogFieldElement, fields.Name),
		zap.Duration(LogFieldDuration, time.Since(started)),
	)
	return buf.Replace(e.Start, e.End+1, output), nil
}

// renderGeneric turns the element into a tag by overwriting its three
// structural bytes. Name and attribute bytes stay where they are, so
// attributes are never re-emitted, only left in place.
func (c *Converter) renderGeneric(buf *Buffer, e Element, fields ElementFields) int {
	c.logger.Debug(LogMsgGenericElement, zap.String(LogFieldElement, fields.Name))

	buf.Replace(e.Start, e.Start+1, TagOpen)
	if fields.Content == "" && !c.config.LongEmpty {
		buf.Replace(e.BodyStart, e.BodyStart+1, TagSelfClose)
		return buf.Replace(e.End, e.End+1, TagEnd)
	}

	buf.Replace(e.BodyStart, e.BodyStart+1, TagEnd)
	return buf.Replace(e.End, e.End+1, TagCloseStart+fields.Name+TagEnd)
}
