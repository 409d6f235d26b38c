package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeStudyCountByCountry(t *testing.T) {
	f := StudyFilter{DescriptorGroups: [][]int64{{42}}}

	b, err := ComposeStudyCountByCountry(f, Uint64(5))
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr,
		"SELECT facilities.country, COUNT(DISTINCT studies.study_id) AS entity_count FROM studies")
	assert.Contains(t, sqlStr, "JOIN locations ON locations.study_id = studies.study_id")
	assert.Contains(t, sqlStr, "JOIN facilities ON facilities.facility_id = locations.facility_id")
	assert.Contains(t, sqlStr, "GROUP BY facilities.country")
	// Ordered by count descending; the dimension breaks ties deterministically.
	assert.Contains(t, sqlStr, "ORDER BY entity_count DESC, facilities.country ASC")
	assert.Contains(t, sqlStr, "LIMIT 5")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestComposeStudyCountByFacility(t *testing.T) {
	b, err := ComposeStudyCountByFacility(StudyFilter{}, nil)
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "GROUP BY facilities.facility_id, facilities.name")
	assert.Contains(t, sqlStr, "ORDER BY entity_count DESC, facilities.facility_id ASC")
	assert.NotContains(t, sqlStr, "LIMIT")
}

func TestComposeStudyCountByDescriptor(t *testing.T) {
	b, err := ComposeStudyCountByDescriptor(StudyFilter{Genders: []string{"All"}}, Uint64(10))
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "JOIN study_descriptors ON study_descriptors.study_id = studies.study_id")
	assert.Contains(t, sqlStr, "JOIN descriptors ON descriptors.descriptor_id = study_descriptors.descriptor_id")
	assert.Contains(t, sqlStr, "GROUP BY descriptors.descriptor_id, descriptors.ui, descriptors.name")
}

func TestComposeCitationCountByQualifier(t *testing.T) {
	f := CitationFilter{DescriptorGroups: [][]int64{{9}}}
	b, err := ComposeCitationCountByQualifier(f, Uint64(3))
	require.NoError(t, err)
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "COUNT(DISTINCT citations.citation_id) AS entity_count")
	assert.Contains(t, sqlStr, "JOIN qualifiers ON qualifiers.qualifier_id = citation_descriptor_qualifiers.qualifier_id")
	assert.Contains(t, sqlStr, "ORDER BY entity_count DESC, qualifiers.qualifier_id ASC")
	assert.Equal(t, []interface{}{int64(9)}, args)
}

func TestComposeCitationCountByCountry(t *testing.T) {
	b, err := ComposeCitationCountByCountry(CitationFilter{}, nil)
	require.NoError(t, err)
	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "JOIN articles ON articles.article_id = citations.article_id")
	assert.Contains(t, sqlStr, "JOIN article_affiliations ON article_affiliations.article_id = articles.article_id")
	assert.Contains(t, sqlStr, "GROUP BY affiliations.country")
}

func TestAggregateSpecColumns(t *testing.T) {
	spec := AggregateSpec{
		Dimensions:  []string{"facilities.facility_id", "facilities.name"},
		CountColumn: "studies.study_id",
	}
	assert.Equal(t, []string{"facility_id", "name", "entity_count"}, spec.Columns())
}
