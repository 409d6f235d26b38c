package planner

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/qerr"
	"biomed-graphql/internal/setutil"
	"biomed-graphql/internal/sqlutil"
)

// Enum allow-lists. Filter values are validated against these before they
// reach SQL; an out-of-list value is a ConfigurationError.
var (
	AllowedOverallStatuses = []string{
		"Active, not recruiting",
		"Approved for marketing",
		"Available",
		"Completed",
		"Enrolling by invitation",
		"No longer available",
		"Not yet recruiting",
		"Recruiting",
		"Suspended",
		"Temporarily not available",
		"Terminated",
		"Unknown status",
		"Withdrawn",
		"Withheld",
	}
	AllowedPhases = []string{
		"N/A",
		"Early Phase 1",
		"Phase 1",
		"Phase 1/Phase 2",
		"Phase 2",
		"Phase 2/Phase 3",
		"Phase 3",
		"Phase 4",
	}
	AllowedStudyTypes = []string{
		"Interventional",
		"Observational",
		"Observational [Patient Registry]",
		"Expanded Access",
	}
	AllowedInterventionTypes = []string{
		"Behavioral",
		"Biological",
		"Combination Product",
		"Device",
		"Diagnostic Test",
		"Dietary Supplement",
		"Drug",
		"Genetic",
		"Procedure",
		"Radiation",
		"Other",
	}
	AllowedGenders = []string{"All", "Female", "Male"}
)

// GenderAll matches studies open to either gender; a gender filter always
// admits it alongside the requested value.
const GenderAll = "All"

// GeoFilter restricts facilities to a great-circle disc. All three values
// are required for the filter to apply; a partially specified filter is
// ignored by construction (the pointer is simply left nil).
type GeoFilter struct {
	Longitude    float64
	Latitude     float64
	RadiusMeters float64
}

// StudyFilter is everything a studies query can filter on. Zero values mean
// "no constraint". DescriptorGroups hold closure-expanded descriptor ids:
// a study must match every group (AND across groups) through at least one
// member (OR within a group).
type StudyFilter struct {
	DescriptorGroups [][]int64

	// StudyIDs restricts the result to an explicit id set, as a saved
	// search replays its member studies. Empty means unrestricted.
	StudyIDs []int64

	OverallStatuses   []string
	Phases            []string
	StudyTypes        []string
	InterventionTypes []string
	Genders           []string

	Cities      []string
	States      []string
	Countries   []string
	FacilityIDs []int64
	Geo         *GeoFilter

	AgeSeconds *Interval
	StartYear  *Interval
}

// CitationFilter is the citations counterpart.
type CitationFilter struct {
	DescriptorGroups [][]int64
	CitationIDs      []int64
	QualifierIDs     []int64
	Countries        []string
	PublicationYear  *Interval
}

// predicateSet accumulates the joins and conjuncts a filter needs. Joins
// are deduplicated so that, say, the gender and age filters share one
// eligibilities join.
type predicateSet struct {
	joins []string
	where []sq.Sqlizer
}

func (p *predicateSet) addJoin(clause string) {
	for _, j := range p.joins {
		if j == clause {
			return
		}
	}
	p.joins = append(p.joins, clause)
}

func (p *predicateSet) addWhere(cond sq.Sqlizer) {
	p.where = append(p.where, cond)
}

func (p *predicateSet) hasJoins() bool { return len(p.joins) > 0 }

func (p *predicateSet) apply(b sq.SelectBuilder) sq.SelectBuilder {
	for _, j := range p.joins {
		b = b.Join(j)
	}
	for _, w := range p.where {
		b = b.Where(w)
	}
	return b
}

// existsMembership builds an EXISTS membership subquery: at least one row
// of the junction table references the parent row and carries one of the
// member ids. Each taxonomy group becomes one of these, independent of its
// siblings, which is what gives AND-across / OR-within semantics without
// multiplying join rows.
func existsMembership(junction, junctionParentCol, parentRef, memberCol string, ids []int64) sq.Sqlizer {
	if len(ids) == 0 {
		// An empty membership set can never be satisfied.
		return sq.Expr("1 = 0")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return sq.Expr(fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s AND %s.%s IN (%s))",
		junction, junction, junctionParentCol, parentRef, junction, memberCol, placeholders,
	), args...)
}

// canonicalizeEnum validates values against allowed and reports violations
// as a ConfigurationError on the named filter field.
func canonicalizeEnum(field string, values, allowed []string) ([]string, error) {
	canonical, err := setutil.Canonicalize(values, allowed)
	if err != nil {
		return nil, qerr.NewConfigurationError(field, "%v", err)
	}
	return canonical, nil
}

// canonicalFacilityFilter excludes facilities whose name fell back to an
// encompassing area: a "facility" named exactly like its city, state, or
// country is an unmatched placeholder, not a real site.
func canonicalFacilityFilter() sq.Sqlizer {
	return sq.Expr(
		"COALESCE(facilities.name, '') <> COALESCE(facilities.city, '')" +
			" AND COALESCE(facilities.name, '') <> COALESCE(facilities.state, '')" +
			" AND COALESCE(facilities.name, '') <> COALESCE(facilities.country, '')",
	)
}

// geoFilter restricts facilities.coordinates to the disc around the given
// point. ST_Distance_Sphere returns meters.
func geoFilter(g GeoFilter) sq.Sqlizer {
	return sq.Expr(
		"ST_Distance_Sphere(ST_GeomFromText(?), facilities.coordinates) <= ?",
		sqlutil.PointWKT(g.Longitude, g.Latitude), g.RadiusMeters,
	)
}

// overlapFilter emits the SQL mirror of Interval.Overlaps against a column
// pair: the entity interval [begCol, endCol] must intersect the user
// interval. A NULL column bound is unbounded, exactly as a nil user bound
// is, so only the opposing closed bounds produce predicates.
func overlapFilter(p *predicateSet, begCol, endCol string, user Interval) {
	if user.End != nil {
		p.addWhere(sq.Or{
			sq.Eq{begCol: nil},
			sq.LtOrEq{begCol: *user.End},
		})
	}
	if user.Beg != nil {
		p.addWhere(sq.Or{
			sq.Eq{endCol: nil},
			sq.GtOrEq{endCol: *user.Beg},
		})
	}
}

// int64Args converts ids for squirrel's interface arguments.
func int64Args(ids []int64) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
