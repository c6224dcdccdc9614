package internal

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Plugin mirrors the public Plugin interface for internal use.
type Plugin interface {
	Handles(name string) bool
	Execute(ctx context.Context, name, attributes, content string) (string, error)
}

// ElementLister is implemented by plugins that can report the names they claim.
type ElementLister interface {
	Elements() []string
}

// Registry is an ordered plugin collection with first-match-wins lookup.
// It is thread-safe for concurrent read/write access.
type Registry struct {
	plugins []Plugin
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewRegistry creates a new plugin registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry{
		plugins: make([]Plugin, 0),
		logger:  logger,
	}
}

// Register appends a plugin. Plugins registered earlier take precedence
// for names claimed by more than one plugin.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return NewRegistryError(ErrMsgNilPlugin)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lister, ok := plugin.(ElementLister); ok {
		for _, name := range lister.Elements() {
			for _, existing := range r.plugins {
				if existing.Handles(name) {
					r.logger.Debug(LogMsgPluginShadowed, zap.String(LogFieldElement, name))
					break
				}
			}
		}
	}

	r.plugins = append(r.plugins, plugin)
	r.logger.Debug(LogMsgPluginRegistered, zap.Int(LogFieldPlugins, len(r.plugins)))
	return nil
}

// Lookup returns the first registered plugin that handles name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, plugin := range r.plugins {
		if plugin.Handles(name) {
			return plugin, true
		}
	}
	return nil, false
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message string) *RegistryError {
	return &RegistryError{Message: message}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	return e.Message
}
