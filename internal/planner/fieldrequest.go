// Package planner turns GraphQL requests into SQL. It is pure: the planner
// never touches the database, it only produces squirrel builders that the
// executor runs. Planning has three stages: the field-request front end
// (GraphQL AST -> FieldRequest), projection (FieldRequest -> ProjectionPlan),
// and composition (filters, ordering, pagination, aggregation -> SQL).
package planner

import (
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/naming"

	"github.com/graphql-go/graphql/language/ast"
)

// FieldRequest is a recursive description of the fields a caller asked for.
// Names are column names (snake_case); Relations nest one request per
// requested relation. A nil FieldRequest means "everything"; an empty one
// means "identity only".
type FieldRequest struct {
	Fields    []string
	Relations map[string]*FieldRequest
}

// Request builds a FieldRequest from literal field names, for callers that
// are not fronted by GraphQL (internal lookups, tests).
func Request(fields ...string) *FieldRequest {
	return &FieldRequest{Fields: fields}
}

// WithRelation adds a nested request and returns the receiver for chaining.
func (r *FieldRequest) WithRelation(name string, nested *FieldRequest) *FieldRequest {
	if r.Relations == nil {
		r.Relations = make(map[string]*FieldRequest)
	}
	if nested == nil {
		nested = &FieldRequest{}
	}
	r.Relations[name] = nested
	return r
}

// FieldRequestFromSelection converts a resolved GraphQL field's selection
// set into a FieldRequest against the given entity. Fragment spreads and
// inline fragments are expanded through the fragments map. GraphQL field
// names are converted camelCase -> snake_case; names that match a declared
// relation recurse, everything else is recorded as a scalar candidate
// (projection later drops names the entity does not have).
func FieldRequestFromSelection(reg *entitymeta.Registry, entity *entitymeta.Entity, field *ast.Field, fragments map[string]ast.Definition) *FieldRequest {
	if field == nil || field.SelectionSet == nil {
		return nil
	}
	return requestFromSelections(reg, entity, field.SelectionSet.Selections, fragments)
}

func requestFromSelections(reg *entitymeta.Registry, entity *entitymeta.Entity, selections []ast.Selection, fragments map[string]ast.Definition) *FieldRequest {
	req := &FieldRequest{}

	var visit func(selections []ast.Selection)
	visit = func(selections []ast.Selection) {
		for _, selection := range selections {
			switch sel := selection.(type) {
			case *ast.Field:
				if sel.Name == nil {
					continue
				}
				name := sel.Name.Value
				if name == "__typename" {
					continue
				}
				column := naming.ToColumnName(name)
				if rel, ok := entity.Relation(column); ok {
					target, err := reg.Describe(rel.Target)
					if err != nil {
						continue
					}
					nested := FieldRequestFromSelection(reg, target, sel, fragments)
					if nested == nil {
						nested = &FieldRequest{}
					}
					req.WithRelation(column, nested)
					continue
				}
				req.Fields = append(req.Fields, column)
			case *ast.InlineFragment:
				if sel.SelectionSet != nil {
					visit(sel.SelectionSet.Selections)
				}
			case *ast.FragmentSpread:
				if fragments == nil || sel.Name == nil {
					continue
				}
				def, ok := fragments[sel.Name.Value]
				if !ok {
					continue
				}
				fragment, ok := def.(*ast.FragmentDefinition)
				if !ok || fragment.SelectionSet == nil {
					continue
				}
				visit(fragment.SelectionSet.Selections)
			}
		}
	}
	visit(selections)

	return req
}
