package capability

import (
	"slices"
	"strings"
	"sync"

	apperrors "automation/internal/shared/errors"
)

// Registry maps capability names to implementations.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[string]Capability
}

// NewRegistry returns a registry holding the given capabilities.
func NewRegistry(capabilities ...Capability) (*Registry, error) {
	r := &Registry{capabilities: make(map[string]Capability, len(capabilities))}
	for _, c := range capabilities {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c under c.Name(). Names must be non-empty and unique.
func (r *Registry) Register(c Capability) error {
	if c == nil {
		return apperrors.InvalidConfig("capability is nil")
	}
	name := strings.TrimSpace(c.Name())
	if name == "" {
		return apperrors.InvalidConfig("capability name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.capabilities[name]; exists {
		return apperrors.InvalidConfig("capability already registered: %s", name)
	}
	r.capabilities[name] = c
	return nil
}

// Get returns the capability registered under name.
func (r *Registry) Get(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.capabilities[name]; ok {
		return c, nil
	}
	return nil, apperrors.InvalidConfig("no capability registered for executor '%s'", name)
}

// Names lists registered capability names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
