package resolver

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
)

// DescriptorByUI resolves one MeSH descriptor by its unique identifier
// (e.g. "D000818").
func (r *Resolver) DescriptorByUI(p graphql.ResolveParams) (interface{}, error) {
	ui, ok := stringArg(p.Args, "ui")
	if !ok || ui == "" {
		return nil, nil
	}
	plan, err := r.projectionFor(p, entitymeta.EntityDescriptor)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("descriptors").
		Where(sq.Eq{"descriptors.ui": ui}).
		Limit(1).
		PlaceholderFormat(sq.Question)

	records, err := r.fetch(p.Context, plan, b)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// DescriptorsByTreeNumberPrefix resolves the descriptors at or below a
// MeSH tree position. The match is segment-boundary aware: "C01" does not
// return descriptors under "C010". An unknown prefix yields an empty list.
func (r *Resolver) DescriptorsByTreeNumberPrefix(p graphql.ResolveParams) (interface{}, error) {
	prefix, ok := stringArg(p.Args, "treeNumberPrefix")
	if !ok || prefix == "" {
		return []map[string]any{}, nil
	}

	ids, err := r.Taxonomy.DescriptorsWithTreePrefix(p.Context, prefix)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []map[string]any{}, nil
	}

	plan, err := r.projectionFor(p, entitymeta.EntityDescriptor)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("descriptors").
		Where(sq.Eq{"descriptors.descriptor_id": ids}).
		OrderBy("descriptors.descriptor_id ASC").
		PlaceholderFormat(sq.Question)

	return r.fetch(p.Context, plan, b)
}
