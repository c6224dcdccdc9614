package xbraceml

import (
	"context"
	"strings"
)

// Plugin renders element names it claims. The engine asks plugins in
// registration order and uses the first one whose Handles returns true.
type Plugin interface {
	// Handles reports whether the plugin renders elements called name.
	Handles(name string) bool

	// Execute renders one element. The returned text replaces the whole
	// element, marker to closing delimiter, and is not scanned again.
	// Any error aborts the conversion.
	Execute(ctx context.Context, name, attributes, content string) (string, error)
}

// RenderFunc renders one element in-process.
type RenderFunc func(ctx context.Context, name, attributes, content string) (string, error)

// StaticPlugin is an in-process Plugin backed by a RenderFunc.
type StaticPlugin struct {
	elements []string
	render   RenderFunc
}

// NewStaticPlugin creates a plugin that renders the given element names with fn.
func NewStaticPlugin(fn RenderFunc, elements ...string) *StaticPlugin {
	return &StaticPlugin{
		elements: normalizeElements(elements),
		render:   fn,
	}
}

// Elements returns the claimed element names.
func (p *StaticPlugin) Elements() []string {
	return append([]string(nil), p.elements...)
}

// Handles reports whether name is claimed.
func (p *StaticPlugin) Handles(name string) bool {
	return claims(p.elements, name)
}

// Execute runs the render function.
func (p *StaticPlugin) Execute(ctx context.Context, name, attributes, content string) (string, error) {
	return p.render(ctx, name, attributes, content)
}

// claims is the membership test shared by plugin implementations:
// exact, case-sensitive, ignoring surrounding whitespace.
func claims(elements []string, name string) bool {
	name = strings.TrimSpace(name)
	for _, element := range elements {
		if strings.TrimSpace(element) == name {
			return true
		}
	}
	return false
}

// normalizeElements trims names and drops empty ones.
func normalizeElements(elements []string) []string {
	out := make([]string, 0, len(elements))
	for _, element := range elements {
		if element = strings.TrimSpace(element); element != "" {
			out = append(out, element)
		}
	}
	return out
}
