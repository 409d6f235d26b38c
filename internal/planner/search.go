package planner

import (
	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/sqlutil"
)

const (
	joinEligibilities = "eligibilities ON eligibilities.study_id = studies.study_id"
	joinLocations     = "locations ON locations.study_id = studies.study_id"
	joinFacilities    = "facilities ON facilities.facility_id = locations.facility_id"
	joinArticles      = "articles ON articles.article_id = citations.article_id"
)

// studyPredicates lowers a StudyFilter into joins and conjuncts rooted at
// the studies table.
func studyPredicates(f StudyFilter) (*predicateSet, error) {
	p := &predicateSet{}

	for _, group := range f.DescriptorGroups {
		p.addWhere(existsMembership(
			entitymeta.TableStudyDescriptors, "study_id", "studies.study_id",
			"descriptor_id", group,
		))
	}

	if len(f.StudyIDs) > 0 {
		p.addWhere(sq.Eq{"studies.study_id": f.StudyIDs})
	}

	if len(f.OverallStatuses) > 0 {
		values, err := canonicalizeEnum("overallStatuses", f.OverallStatuses, AllowedOverallStatuses)
		if err != nil {
			return nil, err
		}
		p.addWhere(sq.Eq{"studies.overall_status": values})
	}
	if len(f.Phases) > 0 {
		values, err := canonicalizeEnum("phases", f.Phases, AllowedPhases)
		if err != nil {
			return nil, err
		}
		p.addWhere(sq.Eq{"studies.phase": values})
	}
	if len(f.StudyTypes) > 0 {
		values, err := canonicalizeEnum("studyTypes", f.StudyTypes, AllowedStudyTypes)
		if err != nil {
			return nil, err
		}
		p.addWhere(sq.Eq{"studies.study_type": values})
	}

	if len(f.InterventionTypes) > 0 {
		values, err := canonicalizeEnum("interventionTypes", f.InterventionTypes, AllowedInterventionTypes)
		if err != nil {
			return nil, err
		}
		args := make([]interface{}, len(values))
		for i, v := range values {
			args[i] = v
		}
		p.addWhere(sq.Expr(
			"EXISTS (SELECT 1 FROM interventions WHERE interventions.study_id = studies.study_id"+
				" AND interventions.intervention_type IN ("+placeholderList(len(values))+"))",
			args...,
		))
	}

	if len(f.Genders) > 0 {
		values, err := canonicalizeEnum("genders", f.Genders, AllowedGenders)
		if err != nil {
			return nil, err
		}
		// A study open to either gender matches any requested gender.
		admitted := values
		if !contains(admitted, GenderAll) {
			admitted = append(append([]string{}, values...), GenderAll)
		}
		p.addJoin(joinEligibilities)
		p.addWhere(sq.Eq{"eligibilities.gender": admitted})
	}

	if f.AgeSeconds != nil && !f.AgeSeconds.IsZero() {
		p.addJoin(joinEligibilities)
		overlapFilter(p,
			"eligibilities.minimum_age_seconds",
			"eligibilities.maximum_age_seconds",
			*f.AgeSeconds,
		)
	}

	if needsFacility(f) {
		p.addJoin(joinLocations)
		p.addJoin(joinFacilities)
		p.addWhere(canonicalFacilityFilter())

		if len(f.Cities) > 0 {
			p.addWhere(sq.Eq{"facilities.city": f.Cities})
		}
		if len(f.States) > 0 {
			p.addWhere(sq.Eq{"facilities.state": f.States})
		}
		if len(f.Countries) > 0 {
			p.addWhere(sq.Eq{"facilities.country": f.Countries})
		}
		if len(f.FacilityIDs) > 0 {
			p.addWhere(sq.Eq{"facilities.facility_id": f.FacilityIDs})
		}
		if f.Geo != nil {
			p.addWhere(geoFilter(*f.Geo))
		}
	}

	if f.StartYear != nil && !f.StartYear.IsZero() {
		if f.StartYear.Beg != nil {
			p.addWhere(sq.GtOrEq{"YEAR(studies.start_date)": *f.StartYear.Beg})
		}
		if f.StartYear.End != nil {
			p.addWhere(sq.LtOrEq{"YEAR(studies.start_date)": *f.StartYear.End})
		}
	}

	return p, nil
}

// needsFacility reports whether any location-scoped parameter is present.
// The facility join is only attached when one is, so unfiltered queries
// stay single-table.
func needsFacility(f StudyFilter) bool {
	return len(f.Cities) > 0 || len(f.States) > 0 || len(f.Countries) > 0 ||
		len(f.FacilityIDs) > 0 || f.Geo != nil
}

// citationPredicates lowers a CitationFilter rooted at the citations table.
func citationPredicates(f CitationFilter) (*predicateSet, error) {
	p := &predicateSet{}

	for _, group := range f.DescriptorGroups {
		p.addWhere(existsMembership(
			entitymeta.TableCitationDescriptorQualifiers, "citation_id", "citations.citation_id",
			"descriptor_id", group,
		))
	}

	if len(f.CitationIDs) > 0 {
		p.addWhere(sq.Eq{"citations.citation_id": f.CitationIDs})
	}

	if len(f.QualifierIDs) > 0 {
		p.addWhere(existsMembership(
			entitymeta.TableCitationDescriptorQualifiers, "citation_id", "citations.citation_id",
			"qualifier_id", f.QualifierIDs,
		))
	}

	if len(f.Countries) > 0 {
		args := make([]interface{}, len(f.Countries))
		for i, c := range f.Countries {
			args[i] = c
		}
		p.addWhere(sq.Expr(
			"EXISTS (SELECT 1 FROM article_affiliations"+
				" JOIN affiliations ON affiliations.affiliation_id = article_affiliations.affiliation_id"+
				" WHERE article_affiliations.article_id = citations.article_id"+
				" AND affiliations.country IN ("+placeholderList(len(f.Countries))+"))",
			args...,
		))
	}

	if f.PublicationYear != nil && !f.PublicationYear.IsZero() {
		p.addJoin(joinArticles)
		if f.PublicationYear.Beg != nil {
			p.addWhere(sq.GtOrEq{"articles.publication_year": *f.PublicationYear.Beg})
		}
		if f.PublicationYear.End != nil {
			p.addWhere(sq.LtOrEq{"articles.publication_year": *f.PublicationYear.End})
		}
	}

	return p, nil
}

// ComposeStudySearch builds the full studies SELECT: projection columns,
// filter joins and conjuncts, deterministic ordering, then pagination.
// Rows are deduplicated by grouping on the identity column whenever a join
// could fan out.
func ComposeStudySearch(plan *ProjectionPlan, f StudyFilter, order *OrderSpec, page PageSpec) (sq.SelectBuilder, error) {
	preds, err := studyPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return composeSearch(plan, preds, order, page)
}

// ComposeCitationSearch is the citations counterpart of ComposeStudySearch.
func ComposeCitationSearch(plan *ProjectionPlan, f CitationFilter, order *OrderSpec, page PageSpec) (sq.SelectBuilder, error) {
	preds, err := citationPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return composeSearch(plan, preds, order, page)
}

func composeSearch(plan *ProjectionPlan, preds *predicateSet, order *OrderSpec, page PageSpec) (sq.SelectBuilder, error) {
	table := plan.Entity.Table
	identity := sqlutil.Qualify(table, plan.Entity.IdentityColumn)

	b := sq.Select(plan.QualifiedColumns()...).
		From(table).
		PlaceholderFormat(sq.Question)
	b = preds.apply(b)

	if preds.hasJoins() {
		b = b.GroupBy(identity)
	}

	// Ordering always ends on the identity column so that equal sort keys
	// paginate deterministically.
	if order != nil {
		term, err := order.Resolve(plan.Entity)
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		b = b.OrderBy(term, identity+" ASC")
	} else {
		b = b.OrderBy(identity + " ASC")
	}

	return page.Apply(b), nil
}

// ComposeStudyCount counts the distinct studies a filter matches.
func ComposeStudyCount(f StudyFilter) (sq.SelectBuilder, error) {
	preds, err := studyPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	b := sq.Select("COUNT(DISTINCT studies.study_id)").
		From("studies").
		PlaceholderFormat(sq.Question)
	return preds.apply(b), nil
}

// ComposeCitationCount counts the distinct citations a filter matches.
func ComposeCitationCount(f CitationFilter) (sq.SelectBuilder, error) {
	preds, err := citationPredicates(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	b := sq.Select("COUNT(DISTINCT citations.citation_id)").
		From("citations").
		PlaceholderFormat(sq.Question)
	return preds.apply(b), nil
}

func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
