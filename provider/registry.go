package provider

// Registry resolves provider names to adapters. Content is fixed at
// construction, adding a provider means adding one adapter here.
type Registry interface {
	//Lookup returns the adapter registered under name or a NotFoundError
	//carrying the supported names
	Lookup(name string) (Adapter, error)
	//SupportedNames returns the registered names in registration order
	SupportedNames() []string
}

type registry struct {
	adapters map[string]Adapter
	names    []string
}

func NewRegistry(adapters ...Adapter) Registry {
	r := &registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, ok := r.adapters[a.Name()]; ok {
			continue
		}
		r.adapters[a.Name()] = a
		r.names = append(r.names, a.Name())
	}
	return r
}

// NewDefaultRegistry registers the three simulated providers.
func NewDefaultRegistry() Registry {
	return NewRegistry(NewMimsms(), NewTwilio(), NewSmpp())
}

func (r *registry) Lookup(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Supported: r.SupportedNames()}
	}
	return a, nil
}

func (r *registry) SupportedNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
