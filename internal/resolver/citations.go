package resolver

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/planner"
)

// CitationByID resolves one citation by its internal id.
func (r *Resolver) CitationByID(p graphql.ResolveParams) (interface{}, error) {
	id, ok := int64Arg(p.Args, "citationId")
	if !ok {
		return nil, nil
	}
	return r.citationLookup(p, sq.Eq{"citations.citation_id": id})
}

// CitationByPMID resolves one citation by its PubMed identifier.
func (r *Resolver) CitationByPMID(p graphql.ResolveParams) (interface{}, error) {
	pmid, ok := int64Arg(p.Args, "pmid")
	if !ok {
		return nil, nil
	}
	return r.citationLookup(p, sq.Eq{"citations.pmid": pmid})
}

func (r *Resolver) citationLookup(p graphql.ResolveParams, cond sq.Sqlizer) (interface{}, error) {
	plan, err := r.projectionFor(p, entitymeta.EntityCitation)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("citations").
		Where(cond).
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

// Citations resolves the filtered, ordered, paginated citations list.
func (r *Resolver) Citations(p graphql.ResolveParams) (interface{}, error) {
	plan, err := r.projectionFor(p, entitymeta.EntityCitation)
	if err != nil {
		return nil, err
	}
	filter, err := r.citationFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeCitationSearch(plan, filter, orderArg(p.Args), pageArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.fetch(p.Context, plan, b)
}

// CitationsCount resolves the distinct count of citations matching the filter.
func (r *Resolver) CitationsCount(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.citationFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeCitationCount(filter)
	if err != nil {
		return nil, err
	}
	return r.runCount(p.Context, b)
}
