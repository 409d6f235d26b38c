package planner

import (
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/qerr"
)

// MaxProjectionDepth bounds relation nesting. Legitimate queries in this
// schema are at most a handful of levels deep; anything beyond the cap is a
// malformed or adversarial request.
const MaxProjectionDepth = 16

// ProjectionPlan is the minimal set of columns to fetch for one entity,
// plus one nested plan per requested relation. The identity column is
// always first in Columns; the remaining columns follow the entity's
// declared scalar order, so equal requests produce equal plans.
type ProjectionPlan struct {
	Entity    *entitymeta.Entity
	Columns   []string
	Relations []RelationPlan
}

// RelationPlan pairs a relation descriptor with the projection to apply to
// the related entity's rows.
type RelationPlan struct {
	Relation *entitymeta.Relation
	Target   *ProjectionPlan
}

// Project resolves a FieldRequest against the registry into a
// ProjectionPlan.
//
// A nil request selects every scalar column; an empty request selects the
// identity column only. Requested names the entity does not declare are
// dropped silently: the projection is a total function of the request, and
// a stale client asking for a removed column still gets a usable plan.
// When a relation is requested, the columns both sides need to join the
// rows back together are added even if the caller did not ask for them.
func Project(reg *entitymeta.Registry, entityName string, req *FieldRequest) (*ProjectionPlan, error) {
	return project(reg, entityName, req, 0)
}

func project(reg *entitymeta.Registry, entityName string, req *FieldRequest, depth int) (*ProjectionPlan, error) {
	if depth > MaxProjectionDepth {
		return nil, qerr.NewConfigurationError("projection",
			"relation nesting exceeds maximum depth %d", MaxProjectionDepth)
	}

	entity, err := reg.Describe(entityName)
	if err != nil {
		return nil, err
	}

	plan := &ProjectionPlan{Entity: entity}

	selected := map[string]struct{}{entity.IdentityColumn: {}}
	if req == nil {
		for _, col := range entity.ScalarColumns {
			selected[col] = struct{}{}
		}
	} else {
		for _, name := range req.Fields {
			if entity.HasScalar(name) {
				selected[name] = struct{}{}
			}
		}
	}

	if req != nil {
		// Declared relation order keeps sibling plans deterministic.
		for i := range entity.Relations {
			rel := &entity.Relations[i]
			nested, ok := req.Relations[rel.Name]
			if !ok {
				continue
			}
			selected[rel.LocalColumn] = struct{}{}
			target, err := project(reg, rel.Target, nested, depth+1)
			if err != nil {
				return nil, err
			}
			target.ensureColumn(rel.RemoteColumn)
			plan.Relations = append(plan.Relations, RelationPlan{Relation: rel, Target: target})
		}
	}

	plan.Columns = append(plan.Columns, entity.IdentityColumn)
	for _, col := range entity.ScalarColumns {
		if col == entity.IdentityColumn {
			continue
		}
		if _, ok := selected[col]; ok {
			plan.Columns = append(plan.Columns, col)
		}
	}
	return plan, nil
}

// ensureColumn appends column to the plan if the entity declares it and the
// plan does not already carry it.
func (p *ProjectionPlan) ensureColumn(column string) {
	if !p.Entity.HasScalar(column) {
		return
	}
	for _, c := range p.Columns {
		if c == column {
			return
		}
	}
	p.Columns = append(p.Columns, column)
}

// QualifiedColumns returns the plan's columns prefixed with the entity's
// table name, ready for a SELECT with joins.
func (p *ProjectionPlan) QualifiedColumns() []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = p.Entity.Table + "." + c
	}
	return out
}
