// Package entitymeta holds the static schema metadata registry: for each
// queryable entity, its table, identity column, scalar columns, and typed
// relations to other entities. The registry is built once at startup and is
// read-only afterwards, so lookups need no locking.
package entitymeta

// RelationKind classifies how two entities are joined.
type RelationKind int

const (
	OneToOne RelationKind = iota
	ManyToOne
	OneToMany
	ManyToMany
)

func (k RelationKind) String() string {
	switch k {
	case OneToOne:
		return "one-to-one"
	case ManyToOne:
		return "many-to-one"
	case OneToMany:
		return "one-to-many"
	case ManyToMany:
		return "many-to-many"
	}
	return "unknown"
}

// Relation describes a named edge from one entity to another.
//
// For OneToOne/OneToMany edges the remote table carries the foreign key:
// LocalColumn on the local table equals RemoteColumn on the target table.
// For ManyToOne edges the local table carries it. ManyToMany edges go
// through JunctionTable, matching JunctionLocalColumn against LocalColumn
// and JunctionRemoteColumn against RemoteColumn.
type Relation struct {
	Name   string
	Target string
	Kind   RelationKind

	LocalColumn  string
	RemoteColumn string

	JunctionTable        string
	JunctionLocalColumn  string
	JunctionRemoteColumn string
}

// Entity describes one queryable entity type.
type Entity struct {
	Name           string
	Table          string
	IdentityColumn string
	ScalarColumns  []string
	Relations      []Relation

	scalars   map[string]struct{}
	relations map[string]*Relation
}

// HasScalar reports whether column is one of the entity's scalar columns.
// The identity column always qualifies.
func (e *Entity) HasScalar(column string) bool {
	if column == e.IdentityColumn {
		return true
	}
	_, ok := e.scalars[column]
	return ok
}

// Relation returns the named relation, if the entity declares it.
func (e *Entity) Relation(name string) (*Relation, bool) {
	r, ok := e.relations[name]
	return r, ok
}

func (e *Entity) index() {
	e.scalars = make(map[string]struct{}, len(e.ScalarColumns))
	for _, c := range e.ScalarColumns {
		e.scalars[c] = struct{}{}
	}
	e.relations = make(map[string]*Relation, len(e.Relations))
	for i := range e.Relations {
		e.relations[e.Relations[i].Name] = &e.Relations[i]
	}
}
