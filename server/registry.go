package server

import (
	"fmt"
	"sync"
)

// Kind distinguishes the two registrable endpoint kinds.
type Kind string

const (
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
)

// Registry is the server's registration table: every tool and resource is
// recorded here before it is handed to the protocol runtime. Names are
// unique per kind; a duplicate registration is an error, which aborts
// startup.
type Registry struct {
	entries map[Kind]map[string]*Entry
	order   map[Kind][]string
	mu      sync.RWMutex
}

// Entry describes one registered tool or resource.
type Entry struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"` // tool name, or resource URI
	Description string `json:"description,omitempty"`
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Kind]map[string]*Entry),
		order:   make(map[Kind][]string),
	}
}

// Register records a name for a kind. It fails if the name is already
// registered for that kind.
func (r *Registry) Register(kind Kind, name, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("cannot register %s with empty name", kind)
	}

	if r.entries[kind] == nil {
		r.entries[kind] = make(map[string]*Entry)
	}
	if _, exists := r.entries[kind][name]; exists {
		return fmt.Errorf("%s name collision: %s already registered", kind, name)
	}

	r.entries[kind][name] = &Entry{Kind: kind, Name: name, Description: description}
	r.order[kind] = append(r.order[kind], name)
	return nil
}

// Lookup returns the entry for a name, or nil if unregistered.
func (r *Registry) Lookup(kind Kind, name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.entries[kind][name]
}

// List returns the registered names of a kind in registration order.
func (r *Registry) List(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order[kind]))
	copy(names, r.order[kind])
	return names
}

// Count returns the number of registered names for a kind.
func (r *Registry) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[kind])
}
