package gqlschema

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biomed-graphql/internal/dbexec"
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/resolver"
	"biomed-graphql/internal/taxonomy"
)

type stubRows struct {
	data [][]any
	idx  int
}

func (s *stubRows) Next() bool {
	if s.idx >= len(s.data) {
		return false
	}
	s.idx++
	return true
}

func (s *stubRows) Scan(dest ...any) error {
	row := s.data[s.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i := range dest {
		p, ok := dest[i].(*any)
		if !ok {
			return errors.New("unsupported scan destination")
		}
		*p = row[i]
	}
	return nil
}

func (s *stubRows) Err() error   { return nil }
func (s *stubRows) Close() error { return nil }

type stubExecutor struct {
	queries []string
	results []*stubRows
}

func (s *stubExecutor) QueryContext(ctx context.Context, query string, args ...any) (dbexec.Rows, error) {
	s.queries = append(s.queries, query)
	if len(s.results) == 0 {
		return &stubRows{}, nil
	}
	rows := s.results[0]
	s.results = s.results[1:]
	return rows, nil
}

func (s *stubExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, errors.New("unexpected exec")
}

type stubTreeStore struct{}

func (stubTreeStore) PathsOf(ctx context.Context, ids []int64) (map[int64][]string, error) {
	return map[int64][]string{}, nil
}

func (stubTreeStore) NodesWithPrefix(ctx context.Context, prefix string) ([]taxonomy.Node, error) {
	return nil, nil
}

func testSchema(t *testing.T, exec *stubExecutor) graphql.Schema {
	t.Helper()
	r := resolver.New(entitymeta.Biomedical(), exec, taxonomy.NewEngine(stubTreeStore{}), nil)
	schema, err := Build(r)
	require.NoError(t, err)
	return schema
}

func TestBuildSchema(t *testing.T) {
	schema := testSchema(t, &stubExecutor{})

	queryFields := schema.QueryType().Fields()
	for _, name := range []string{
		"study", "studyByNctId", "studies", "studiesCount",
		"citation", "citationByPmid", "citations", "citationsCount",
		"descriptor", "descriptorsByTreeNumberPrefix",
		"healthTopicsByBodyPart", "healthTopicsByGroup",
		"countStudiesByCountry", "countStudiesByFacility", "countStudiesByDescriptor",
		"countCitationsByCountry", "countCitationsByAffiliation", "countCitationsByQualifier",
		"user",
	} {
		assert.Contains(t, queryFields, name)
	}

	mutationFields := schema.MutationType().Fields()
	for _, name := range []string{
		"searchUpsert", "searchDelete",
		"userUpsert", "userDelete",
		"userStudyUpsert", "userStudyDelete",
		"userCitationUpsert", "userCitationDelete",
	} {
		assert.Contains(t, mutationFields, name)
	}
}

func TestStudiesAcceptsExplicitIdList(t *testing.T) {
	exec := &stubExecutor{}
	schema := testSchema(t, exec)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		Context:       context.Background(),
		RequestString: `{ studies(studyIds: [1, 2]) { nctId } }`,
	})
	require.Empty(t, result.Errors)

	require.Len(t, exec.queries, 1)
	assert.Contains(t, exec.queries[0], "studies.study_id IN (?,?)")
}

func TestQueryProjectsSelectedFields(t *testing.T) {
	exec := &stubExecutor{results: []*stubRows{
		// study_id, nct_id, brief_title
		{data: [][]any{{int64(1), "NCT001", "A study"}}},
	}}
	schema := testSchema(t, exec)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		Context:       context.Background(),
		RequestString: `{ studyByNctId(nctId: "NCT001") { nctId briefTitle } }`,
	})
	require.Empty(t, result.Errors)

	study := result.Data.(map[string]interface{})["studyByNctId"].(map[string]interface{})
	assert.Equal(t, "NCT001", study["nctId"])
	assert.Equal(t, "A study", study["briefTitle"])

	// Only the selected columns plus the identity hit the database.
	require.Len(t, exec.queries, 1)
	assert.Contains(t, exec.queries[0], "studies.study_id, studies.nct_id, studies.brief_title FROM studies")
	assert.NotContains(t, exec.queries[0], "official_title")
}

func TestStudiesRejectsUnknownEnumValue(t *testing.T) {
	schema := testSchema(t, &stubExecutor{})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		Context:       context.Background(),
		RequestString: `{ studies(phases: [PHASE_99]) { nctId } }`,
	})
	assert.NotEmpty(t, result.Errors)
}

func TestEnumValueNames(t *testing.T) {
	assert.Equal(t, "N_A", enumValueName("N/A"))
	assert.Equal(t, "PHASE_1_PHASE_2", enumValueName("Phase 1/Phase 2"))
	assert.Equal(t, "ACTIVE_NOT_RECRUITING", enumValueName("Active, not recruiting"))
	assert.Equal(t, "OBSERVATIONAL_PATIENT_REGISTRY", enumValueName("Observational [Patient Registry]"))
}
