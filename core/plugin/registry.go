package plugin

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/huangsam/codequal/internal/contract"
)

// Registry maps language ids to plugins. It is built once and never mutated.
type Registry struct {
	plugins map[string]*Plugin
}

// NewRegistry builds a registry from the given plugins.
// It panics on a duplicate or empty id, since that is a programming error.
func NewRegistry(plugins ...*Plugin) *Registry {
	r := &Registry{plugins: make(map[string]*Plugin, len(plugins))}
	for _, p := range plugins {
		id := strings.ToLower(p.ID)
		if id == "" {
			panic("plugin: empty language id")
		}
		if _, ok := r.plugins[id]; ok {
			panic(fmt.Sprintf("plugin: duplicate language id %q", id))
		}
		r.plugins[id] = p
	}
	return r
}

// Default returns the process-wide registry of built-in plugins.
var Default = sync.OnceValue(func() *Registry {
	return NewRegistry(Ruby(), Go())
})

// Lookup returns the plugin registered for id.
// Unknown ids fail with contract.ErrUnsupportedLanguage.
func (r *Registry) Lookup(id string) (*Plugin, error) {
	p, ok := r.plugins[strings.ToLower(id)]
	if !ok {
		return nil, contract.UnsupportedLanguageError(id)
	}
	return p, nil
}

// IDs returns the registered language ids in sorted order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.plugins))
}

// List returns the registered plugins sorted by id.
func (r *Registry) List() []*Plugin {
	ids := r.IDs()
	out := make([]*Plugin, len(ids))
	for i, id := range ids {
		out[i] = r.plugins[id]
	}
	return out
}
