package planner

import (
	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/entitymeta"
)

// CountAlias is the output column name for aggregate counts.
const CountAlias = "entity_count"

// AggregateSpec describes one grouped distinct count. Dimensions are
// qualified columns; the first is the primary dimension and serves as the
// deterministic tie-break when counts are equal. CountColumn is the
// qualified identity column whose distinct values are counted.
type AggregateSpec struct {
	Dimensions  []string
	CountColumn string
	Limit       *uint64
}

// Columns returns the scan column names for rows the spec produces:
// the unqualified dimension names followed by CountAlias.
func (s AggregateSpec) Columns() []string {
	out := make([]string, 0, len(s.Dimensions)+1)
	for _, d := range s.Dimensions {
		out = append(out, unqualify(d))
	}
	return append(out, CountAlias)
}

func unqualify(column string) string {
	for i := len(column) - 1; i >= 0; i-- {
		if column[i] == '.' {
			return column[i+1:]
		}
	}
	return column
}

// composeAggregate builds SELECT dims..., COUNT(DISTINCT id) with the
// given predicates, grouped by every dimension, ordered by count
// descending with the primary dimension ascending as tie-break. LIMIT
// applies after grouping and ordering, so it caps groups, not rows.
func composeAggregate(from string, preds *predicateSet, spec AggregateSpec) sq.SelectBuilder {
	columns := append(append([]string{}, spec.Dimensions...),
		"COUNT(DISTINCT "+spec.CountColumn+") AS "+CountAlias)

	b := sq.Select(columns...).
		From(from).
		PlaceholderFormat(sq.Question)
	b = preds.apply(b)
	b = b.GroupBy(spec.Dimensions...).
		OrderBy(CountAlias+" DESC", spec.Dimensions[0]+" ASC")

	if spec.Limit != nil {
		b = b.Limit(*spec.Limit)
	}
	return b
}

// ComposeStudyCountByCountry counts distinct studies per facility country.
func ComposeStudyCountByCountry(f StudyFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := studyPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	preds.addJoin(joinLocations)
	preds.addJoin(joinFacilities)
	preds.addWhere(canonicalFacilityFilter())
	return composeAggregate("studies", preds, AggregateSpec{
		Dimensions:  []string{"facilities.country"},
		CountColumn: "studies.study_id",
		Limit:       limit,
	}), nil
}

// ComposeStudyCountByFacility counts distinct studies per facility.
func ComposeStudyCountByFacility(f StudyFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := studyPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	preds.addJoin(joinLocations)
	preds.addJoin(joinFacilities)
	preds.addWhere(canonicalFacilityFilter())
	return composeAggregate("studies", preds, AggregateSpec{
		Dimensions: []string{
			"facilities.facility_id", "facilities.name",
			"facilities.city", "facilities.state", "facilities.country",
		},
		CountColumn: "studies.study_id",
		Limit:       limit,
	}), nil
}

// ComposeStudyCountByDescriptor counts distinct studies per MeSH descriptor.
func ComposeStudyCountByDescriptor(f StudyFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := studyPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	preds.addJoin(entitymeta.TableStudyDescriptors + " ON " +
		entitymeta.TableStudyDescriptors + ".study_id = studies.study_id")
	preds.addJoin("descriptors ON descriptors.descriptor_id = " +
		entitymeta.TableStudyDescriptors + ".descriptor_id")
	return composeAggregate("studies", preds, AggregateSpec{
		Dimensions:  []string{"descriptors.descriptor_id", "descriptors.ui", "descriptors.name"},
		CountColumn: "studies.study_id",
		Limit:       limit,
	}), nil
}

// ComposeCitationCountByCountry counts distinct citations per affiliation country.
func ComposeCitationCountByCountry(f CitationFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := citationPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	addAffiliationJoins(preds)
	return composeAggregate("citations", preds, AggregateSpec{
		Dimensions:  []string{"affiliations.country"},
		CountColumn: "citations.citation_id",
		Limit:       limit,
	}), nil
}

// ComposeCitationCountByAffiliation counts distinct citations per affiliation.
func ComposeCitationCountByAffiliation(f CitationFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := citationPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	addAffiliationJoins(preds)
	return composeAggregate("citations", preds, AggregateSpec{
		Dimensions:  []string{"affiliations.affiliation_id", "affiliations.name", "affiliations.country"},
		CountColumn: "citations.citation_id",
		Limit:       limit,
	}), nil
}

// ComposeCitationCountByQualifier counts distinct citations per MeSH qualifier.
func ComposeCitationCountByQualifier(f CitationFilter, limit *uint64) (sq.SelectBuilder, error) {
	preds, err := citationPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	preds.addJoin(entitymeta.TableCitationDescriptorQualifiers + " ON " +
		entitymeta.TableCitationDescriptorQualifiers + ".citation_id = citations.citation_id")
	preds.addJoin("qualifiers ON qualifiers.qualifier_id = " +
		entitymeta.TableCitationDescriptorQualifiers + ".qualifier_id")
	return composeAggregate("citations", preds, AggregateSpec{
		Dimensions:  []string{"qualifiers.qualifier_id", "qualifiers.ui", "qualifiers.name"},
		CountColumn: "citations.citation_id",
		Limit:       limit,
	}), nil
}

func addAffiliationJoins(p *predicateSet) {
	p.addJoin(joinArticles)
	p.addJoin(entitymeta.TableArticleAffiliations + " ON " +
		entitymeta.TableArticleAffiliations + ".article_id = articles.article_id")
	p.addJoin("affiliations ON affiliations.affiliation_id = " +
		entitymeta.TableArticleAffiliations + ".affiliation_id")
}
