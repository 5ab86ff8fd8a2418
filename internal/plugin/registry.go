package plugin

import "fmt"

// Registry maps plugin names to implementations. It is populated once
// at startup and treated as read-only afterwards; lookups are not
// synchronized because the pipeline is single-threaded.
type Registry struct {
	plugins map[string]Plugin
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin under its canonical name. Registering the
// same name twice is a programming error and panics.
func (r *Registry) Register(p Plugin) {
	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		panic(fmt.Sprintf("plugin %q already registered", name))
	}
	r.plugins[name] = p
	r.order = append(r.order, name)
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (Plugin, error) {
	p, ok := r.plugins[name]
	if !ok {
		return nil, &UnknownPluginError{Name: name}
	}
	return p, nil
}

// Names returns plugin names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
