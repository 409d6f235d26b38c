package planner

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/naming"
	"biomed-graphql/internal/qerr"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// OrderSpec is a caller-supplied ordering request. Field may be camelCase
// (as it arrives from GraphQL) or a raw column name.
type OrderSpec struct {
	Field     string
	Direction Direction
}

// Resolve validates the spec against the entity's scalar columns and
// returns a qualified ORDER BY term. Ordering by a column outside the
// whitelist is a ConfigurationError: accepting arbitrary expressions here
// would turn ordering into an injection surface.
func (o OrderSpec) Resolve(entity *entitymeta.Entity) (string, error) {
	column := naming.ToColumnName(strings.TrimSpace(o.Field))
	if column == "" {
		return "", qerr.NewConfigurationError("orderBy", "order field is required")
	}
	if !entity.HasScalar(column) {
		return "", qerr.NewConfigurationError("orderBy",
			"entity %s has no sortable column %q", entity.Name, column)
	}

	dir := o.Direction
	if dir == "" {
		dir = Ascending
	}
	if dir != Ascending && dir != Descending {
		return "", qerr.NewConfigurationError("orderBy", "invalid direction %q", o.Direction)
	}
	return entity.Table + "." + column + " " + string(dir), nil
}

// PageSpec is limit/offset pagination, applied after all filtering.
type PageSpec struct {
	Limit  *uint64
	Offset *uint64
}

// Apply attaches LIMIT and OFFSET to the builder. Absent values leave the
// query unpaginated on that axis.
func (p PageSpec) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if p.Limit != nil {
		b = b.Limit(*p.Limit)
	}
	if p.Offset != nil {
		b = b.Offset(*p.Offset)
	}
	return b
}

// Uint64 returns a pointer to v, for building page specs.
func Uint64(v uint64) *uint64 { return &v }
