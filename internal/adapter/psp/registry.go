package psp

import (
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
)

// Registry is the immutable adapter lookup built once at startup.
// Iteration order matches registration order, which keeps routing
// tie-breaks stable across calls.
type Registry struct {
	byName map[string]ports.PSPAdapter
	order  []ports.PSPAdapter
}

// NewRegistry indexes the given adapters. Adapter names must be unique.
func NewRegistry(adapters ...ports.PSPAdapter) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]ports.PSPAdapter, len(adapters)),
		order:  make([]ports.PSPAdapter, 0, len(adapters)),
	}
	for _, a := range adapters {
		name := a.AdapterName()
		if name == "" {
			return nil, fmt.Errorf("adapter with empty name")
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate adapter name %q", name)
		}
		r.byName[name] = a
		r.order = append(r.order, a)
	}
	return r, nil
}

// ByName resolves one adapter by its stable identity.
func (r *Registry) ByName(adapterName string) (ports.PSPAdapter, bool) {
	a, ok := r.byName[adapterName]
	return a, ok
}

// ByType returns every adapter serving the provider type, in registration
// order.
func (r *Registry) ByType(providerType domain.ProviderType) []ports.PSPAdapter {
	var out []ports.PSPAdapter
	for _, a := range r.order {
		if a.ProviderType() == providerType {
			out = append(out, a)
		}
	}
	return out
}

// All returns every registered adapter in registration order.
func (r *Registry) All() []ports.PSPAdapter {
	out := make([]ports.PSPAdapter, len(r.order))
	copy(out, r.order)
	return out
}
