package entitymeta

import (
	"fmt"

	"biomed-graphql/internal/qerr"
)

// Registry is an immutable set of entity descriptors keyed by entity name.
type Registry struct {
	entities map[string]*Entity
}

// NewRegistry builds a registry from the given descriptors and validates
// that every relation points at a registered entity and that declared
// columns are consistent. Validation failures are fatal at startup.
func NewRegistry(entities ...Entity) (*Registry, error) {
	r := &Registry{entities: make(map[string]*Entity, len(entities))}
	for i := range entities {
		e := entities[i]
		if e.Name == "" || e.Table == "" || e.IdentityColumn == "" {
			return nil, fmt.Errorf("entity %d: name, table and identity column are required", i)
		}
		if _, dup := r.entities[e.Name]; dup {
			return nil, fmt.Errorf("entity %q registered twice", e.Name)
		}
		e.index()
		r.entities[e.Name] = &e
	}
	for _, e := range r.entities {
		for _, rel := range e.Relations {
			target, ok := r.entities[rel.Target]
			if !ok {
				return nil, fmt.Errorf("entity %q: relation %q targets unregistered entity %q",
					e.Name, rel.Name, rel.Target)
			}
			if rel.Kind == ManyToMany && rel.JunctionTable == "" {
				return nil, fmt.Errorf("entity %q: many-to-many relation %q has no junction table",
					e.Name, rel.Name)
			}
			if rel.RemoteColumn == "" || rel.LocalColumn == "" {
				return nil, fmt.Errorf("entity %q: relation %q is missing join columns",
					e.Name, rel.Name)
			}
			_ = target
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error; it is meant for
// static registries whose validity is a build-time property.
func MustNewRegistry(entities ...Entity) *Registry {
	r, err := NewRegistry(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

// Describe returns the descriptor for the named entity type. Unknown names
// are a ConfigurationError: the caller asked about a type that does not
// exist, which no amount of data can fix.
func (r *Registry) Describe(name string) (*Entity, error) {
	e, ok := r.entities[name]
	if !ok {
		return nil, qerr.NewConfigurationError("entity", "unknown entity type %q", name)
	}
	return e, nil
}

// Names returns the registered entity names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entities))
	for n := range r.entities {
		names = append(names, n)
	}
	return names
}
