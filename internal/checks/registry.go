package checks

import "fmt"

// Registry is a simple, ordered, in-memory check registry. Checks run in
// registration order, which fixes the display order of their findings.
// Register panics on duplicate check IDs to catch wiring mistakes at startup.
type Registry struct {
	checks []Check
	index  map[string]struct{}
}

// NewRegistry returns an empty registry ready for check registration.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// Register adds check to the registry. Panics if the same ID is registered twice.
func (r *Registry) Register(check Check) {
	if _, exists := r.index[check.ID()]; exists {
		panic(fmt.Sprintf("duplicate check ID: %q", check.ID()))
	}
	r.checks = append(r.checks, check)
	r.index[check.ID()] = struct{}{}
}

// RegisterAll registers every check in order.
func (r *Registry) RegisterAll(checks []Check) {
	for _, c := range checks {
		r.Register(c)
	}
}

// All returns all registered checks in registration order.
func (r *Registry) All() []Check {
	return r.checks
}
