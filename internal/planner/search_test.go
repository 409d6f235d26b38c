package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/qerr"
)

func studyPlan(t *testing.T, fields ...string) *ProjectionPlan {
	t.Helper()
	plan, err := Project(entitymeta.Biomedical(), entitymeta.EntityStudy, Request(fields...))
	require.NoError(t, err)
	return plan
}

func TestComposeStudySearchUnfiltered(t *testing.T) {
	plan := studyPlan(t, "nct_id")

	b, err := ComposeStudySearch(plan, StudyFilter{}, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT studies.study_id, studies.nct_id FROM studies ORDER BY studies.study_id ASC",
		sqlStr)
	assert.Empty(t, args)
}

func TestComposeStudySearchDescriptorGroups(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{DescriptorGroups: [][]int64{{10, 11, 12}, {20}}}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	// One independent EXISTS per group: AND across groups, OR (IN) within.
	assert.Equal(t, 2, strings.Count(sqlStr, "EXISTS (SELECT 1 FROM study_descriptors"))
	assert.Contains(t, sqlStr,
		"study_descriptors.study_id = studies.study_id AND study_descriptors.descriptor_id IN (?,?,?)")
	assert.Equal(t, []interface{}{int64(10), int64(11), int64(12), int64(20)}, args)
	// Membership subqueries do not fan out rows, so no GROUP BY is needed.
	assert.NotContains(t, sqlStr, "GROUP BY")
}

func TestComposeStudySearchByStudyIDs(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{StudyIDs: []int64{3, 5, 8}}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	// An explicit id set is a plain IN on the identity column, no joins.
	assert.Contains(t, sqlStr, "studies.study_id IN (?,?,?)")
	assert.Equal(t, []interface{}{int64(3), int64(5), int64(8)}, args)
	assert.NotContains(t, sqlStr, "JOIN")
	assert.NotContains(t, sqlStr, "GROUP BY")
}

func TestComposeStudySearchEmptyGroupMatchesNothing(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{DescriptorGroups: [][]int64{{}}}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "1 = 0")
}

func TestComposeStudySearchGenderAndAgeShareJoin(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{
		Genders:    []string{"Female"},
		AgeSeconds: &Interval{Beg: Int64(18 * 31536000), End: Int64(65 * 31536000)},
	}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(sqlStr, "JOIN eligibilities"))
	// Gender admits studies open to either gender.
	assert.Contains(t, sqlStr, "eligibilities.gender IN (?,?)")
	assert.Contains(t, args, "Female")
	assert.Contains(t, args, GenderAll)
	// Interval overlap tolerates missing entity bounds.
	assert.Contains(t, sqlStr,
		"(eligibilities.minimum_age_seconds IS NULL OR eligibilities.minimum_age_seconds <= ?)")
	assert.Contains(t, sqlStr,
		"(eligibilities.maximum_age_seconds IS NULL OR eligibilities.maximum_age_seconds >= ?)")
	// Joins fan out, so results are grouped by identity.
	assert.Contains(t, sqlStr, "GROUP BY studies.study_id")
}

func TestComposeStudySearchAgeOneSided(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{AgeSeconds: &Interval{Beg: Int64(1000)}}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "eligibilities.maximum_age_seconds >= ?")
	assert.NotContains(t, sqlStr, "eligibilities.minimum_age_seconds <=")
	assert.Equal(t, []interface{}{int64(1000)}, args)
}

func TestComposeStudySearchLocationAttachesFacility(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{
		Countries: []string{"United States"},
		Geo:       &GeoFilter{Longitude: -71.0589, Latitude: 42.3601, RadiusMeters: 50000},
	}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "JOIN locations ON locations.study_id = studies.study_id")
	assert.Contains(t, sqlStr, "JOIN facilities ON facilities.facility_id = locations.facility_id")
	// Placeholder facilities named after their own area are excluded.
	assert.Contains(t, sqlStr, "COALESCE(facilities.name, '') <> COALESCE(facilities.country, '')")
	assert.Contains(t, sqlStr, "ST_Distance_Sphere(ST_GeomFromText(?), facilities.coordinates) <= ?")
	assert.Contains(t, args, "POINT(-71.0589 42.3601)")
	assert.Contains(t, args, float64(50000))
	assert.Contains(t, sqlStr, "GROUP BY studies.study_id")
}

func TestComposeStudySearchNoLocationParamsNoFacilityJoin(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	f := StudyFilter{OverallStatuses: []string{"Recruiting"}}

	b, err := ComposeStudySearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sqlStr, "facilities")
	assert.NotContains(t, sqlStr, "COALESCE")
}

func TestComposeStudySearchRejectsBadEnum(t *testing.T) {
	plan := studyPlan(t, "nct_id")
	_, err := ComposeStudySearch(plan, StudyFilter{Phases: []string{"Phase 9"}}, nil, PageSpec{})
	require.Error(t, err)
	assert.True(t, qerr.IsConfiguration(err))
}

func TestComposeStudySearchOrderAndPage(t *testing.T) {
	plan := studyPlan(t, "brief_title")
	order := &OrderSpec{Field: "briefTitle", Direction: Descending}
	page := PageSpec{Limit: Uint64(25), Offset: Uint64(50)}

	b, err := ComposeStudySearch(plan, StudyFilter{}, order, page)
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "ORDER BY studies.brief_title DESC, studies.study_id ASC")
	assert.Contains(t, sqlStr, "LIMIT 25 OFFSET 50")
}

func TestComposeStudyCount(t *testing.T) {
	f := StudyFilter{DescriptorGroups: [][]int64{{7}}, Genders: []string{"Male"}}

	b, err := ComposeStudyCount(f)
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sqlStr, "SELECT COUNT(DISTINCT studies.study_id) FROM studies"))
	assert.NotContains(t, sqlStr, "ORDER BY")
}

func TestComposeCitationSearch(t *testing.T) {
	plan, err := Project(entitymeta.Biomedical(), entitymeta.EntityCitation, Request("pmid"))
	require.NoError(t, err)

	f := CitationFilter{
		DescriptorGroups: [][]int64{{100, 101}},
		PublicationYear:  &Interval{Beg: Int64(2015), End: Int64(2020)},
	}
	b, err := ComposeCitationSearch(plan, f, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "EXISTS (SELECT 1 FROM citation_descriptor_qualifiers")
	assert.Contains(t, sqlStr, "JOIN articles ON articles.article_id = citations.article_id")
	assert.Contains(t, sqlStr, "articles.publication_year >= ?")
	assert.Contains(t, sqlStr, "articles.publication_year <= ?")
	assert.Equal(t, []interface{}{int64(100), int64(101), int64(2015), int64(2020)}, args)
}

func TestComposeCitationSearchByCitationIDs(t *testing.T) {
	plan, err := Project(entitymeta.Biomedical(), entitymeta.EntityCitation, Request("pmid"))
	require.NoError(t, err)

	b, err := ComposeCitationSearch(plan, CitationFilter{CitationIDs: []int64{42}}, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "citations.citation_id IN (?)")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestComposeCitationSearchCountryExists(t *testing.T) {
	plan, err := Project(entitymeta.Biomedical(), entitymeta.EntityCitation, Request("pmid"))
	require.NoError(t, err)

	b, err := ComposeCitationSearch(plan, CitationFilter{Countries: []string{"France"}}, nil, PageSpec{})
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "EXISTS (SELECT 1 FROM article_affiliations")
	assert.Contains(t, sqlStr, "affiliations.country IN (?)")
	assert.Equal(t, []interface{}{"France"}, args)
}
