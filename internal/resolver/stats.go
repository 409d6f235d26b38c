package resolver

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/planner"
)

// Stats resolvers: grouped distinct counts over the same filters the
// search resolvers accept. Rows come back as {dimension columns...,
// entity_count}, ordered by count descending.

func limitArg(args map[string]interface{}) *uint64 {
	if limit, ok := int64Arg(args, "limit"); ok && limit >= 0 {
		return planner.Uint64(uint64(limit))
	}
	return nil
}

func (r *Resolver) runAggregate(ctx context.Context, b sq.SelectBuilder, spec planner.AggregateSpec) (interface{}, error) {
	return r.runSelect(ctx, b, spec.Columns())
}

// CountStudiesByCountry resolves study counts grouped by facility country.
func (r *Resolver) CountStudiesByCountry(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.studyFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	limit := limitArg(p.Args)
	b, err := planner.ComposeStudyCountByCountry(filter, limit)
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{"facilities.country"},
	})
}

// CountStudiesByFacility resolves study counts grouped by facility.
func (r *Resolver) CountStudiesByFacility(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.studyFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeStudyCountByFacility(filter, limitArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{
			"facilities.facility_id", "facilities.name",
			"facilities.city", "facilities.state", "facilities.country",
		},
	})
}

// CountStudiesByDescriptor resolves study counts grouped by MeSH descriptor.
func (r *Resolver) CountStudiesByDescriptor(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.studyFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeStudyCountByDescriptor(filter, limitArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{"descriptors.descriptor_id", "descriptors.ui", "descriptors.name"},
	})
}

// CountCitationsByCountry resolves citation counts grouped by affiliation country.
func (r *Resolver) CountCitationsByCountry(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.citationFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeCitationCountByCountry(filter, limitArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{"affiliations.country"},
	})
}

// CountCitationsByAffiliation resolves citation counts grouped by affiliation.
func (r *Resolver) CountCitationsByAffiliation(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.citationFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeCitationCountByAffiliation(filter, limitArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{"affiliations.affiliation_id", "affiliations.name", "affiliations.country"},
	})
}

// CountCitationsByQualifier resolves citation counts grouped by MeSH qualifier.
func (r *Resolver) CountCitationsByQualifier(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.citationFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeCitationCountByQualifier(filter, limitArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.runAggregate(p.Context, b, planner.AggregateSpec{
		Dimensions: []string{"qualifiers.qualifier_id", "qualifiers.ui", "qualifiers.name"},
	})
}
