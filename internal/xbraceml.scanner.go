package internal

import (
	"context"
)

// dispatchFunc renders a closed element and returns the offset of the first
// byte the scanner has not processed yet.
type dispatchFunc func(e Element) (int, error)

// scan makes a single left-to-right pass over buf, keeping a stack of open
// elements. Each element is dispatched when its body closes, innermost first.
// Stray delimiters are reported through warn and left in place as text.
func scan(ctx context.Context, buf *Buffer, dispatch dispatchFunc, warn WarningSink) error {
	stack := make([]Element, 0, initialStackCapacity)

	i := 0
	for i < buf.Len() {
		switch buf.At(i) {
		case MarkerChar:
			if buf.HasTokenAt(i, VerbatimToken) {
				// Both markers are deleted; the text between them is scanned as usual.
				buf.Replace(i, i+len(VerbatimToken), "")
				if next := buf.IndexFrom(i, VerbatimToken); next >= 0 {
					buf.Replace(next, next+len(VerbatimToken), "")
				} else {
					warn(newWarning(buf, WarningKindVerbatim, WarnMsgUnterminatedVerbatim, i))
				}
				continue
			}
			stack = append(stack, NewElement(i))

		case BodyOpenChar:
			if len(stack) == 0 {
				warn(newWarning(buf, WarningKindStrayBodyOpen, WarnMsgStrayBodyOpen, i))
				break
			}
			top := &stack[len(stack)-1]
			if top.HasBody() {
				warn(newWarning(buf, WarningKindStrayBodyOpen, WarnMsgStrayBodyOpen, i))
				break
			}
			top.BodyStart = i

		case BodyCloseChar:
			if len(stack) == 0 {
				warn(newWarning(buf, WarningKindUnmatchedClose, WarnMsgUnmatchedClose, i))
				break
			}
			top := &stack[len(stack)-1]
			if !top.HasBody() {
				warn(newWarning(buf, WarningKindCloseBeforeBody, WarnMsgCloseBeforeBody, i))
				break
			}
			if err := ctx.Err(); err != nil {
				return NewInterruptedError(buf.Position(i), err)
			}
			top.End = i
			next, err := dispatch(*top)
			if err != nil {
				return err
			}
			stack = stack[:len(stack)-1]
			i = next
			continue
		}
		i++
	}

	// Offsets of still-open elements precede every rewrite, so they are valid here.
	for _, e := range stack {
		warn(newWarning(buf, WarningKindUnclosedElement, WarnMsgUnclosedElement, e.Start))
	}
	return nil
}
