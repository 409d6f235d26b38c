package resolver

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/planner"
)

// StudyByID resolves one study by its internal id.
func (r *Resolver) StudyByID(p graphql.ResolveParams) (interface{}, error) {
	id, ok := int64Arg(p.Args, "studyId")
	if !ok {
		return nil, nil
	}
	return r.studyLookup(p, sq.Eq{"studies.study_id": id})
}

// StudyByNCTID resolves one study by its registry identifier.
func (r *Resolver) StudyByNCTID(p graphql.ResolveParams) (interface{}, error) {
	nctID, ok := stringArg(p.Args, "nctId")
	if !ok || nctID == "" {
		return nil, nil
	}
	return r.studyLookup(p, sq.Eq{"studies.nct_id": nctID})
}

func (r *Resolver) studyLookup(p graphql.ResolveParams, cond sq.Sqlizer) (interface{}, error) {
	plan, err := r.projectionFor(p, entitymeta.EntityStudy)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("studies").
		Where(cond).
		Limit(1).
		PlaceholderFormat(sq.Question)

	records, err := r.fetch(p.Context, plan, b)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// Missing study is an empty result, not an error.
		return nil, nil
	}
	return records[0], nil
}

// Studies resolves the filtered, ordered, paginated studies list.
func (r *Resolver) Studies(p graphql.ResolveParams) (interface{}, error) {
	plan, err := r.projectionFor(p, entitymeta.EntityStudy)
	if err != nil {
		return nil, err
	}
	filter, err := r.studyFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeStudySearch(plan, filter, orderArg(p.Args), pageArg(p.Args))
	if err != nil {
		return nil, err
	}
	return r.fetch(p.Context, plan, b)
}

// StudiesCount resolves the distinct count of studies matching the filter.
func (r *Resolver) StudiesCount(p graphql.ResolveParams) (interface{}, error) {
	filter, err := r.studyFilterFromArgs(p.Context, p.Args)
	if err != nil {
		return nil, err
	}
	b, err := planner.ComposeStudyCount(filter)
	if err != nil {
		return nil, err
	}
	return r.runCount(p.Context, b)
}
