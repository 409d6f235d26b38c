package planner

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biomed-graphql/internal/entitymeta"
)

func studyEntity(t *testing.T) (*entitymeta.Registry, *entitymeta.Entity) {
	t.Helper()
	reg := entitymeta.Biomedical()
	study, err := reg.Describe(entitymeta.EntityStudy)
	require.NoError(t, err)
	return reg, study
}

func TestFieldRequestFromSelection(t *testing.T) {
	reg, study := studyEntity(t)

	field := &ast.Field{
		Name: &ast.Name{Value: "studies"},
		SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
			&ast.Field{Name: &ast.Name{Value: "nctId"}},
			&ast.Field{Name: &ast.Name{Value: "briefTitle"}},
			&ast.Field{Name: &ast.Name{Value: "__typename"}},
			&ast.Field{
				Name: &ast.Name{Value: "eligibility"},
				SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
					&ast.Field{Name: &ast.Name{Value: "gender"}},
				}},
			},
		}},
	}

	req := FieldRequestFromSelection(reg, study, field, nil)
	require.NotNil(t, req)
	assert.Equal(t, []string{"nct_id", "brief_title"}, req.Fields)
	require.Contains(t, req.Relations, "eligibility")
	assert.Equal(t, []string{"gender"}, req.Relations["eligibility"].Fields)
}

func TestFieldRequestNoSelectionSet(t *testing.T) {
	reg, study := studyEntity(t)
	field := &ast.Field{Name: &ast.Name{Value: "studies"}}
	assert.Nil(t, FieldRequestFromSelection(reg, study, field, nil))
}

func TestFieldRequestRelationWithoutSelections(t *testing.T) {
	reg, study := studyEntity(t)
	field := &ast.Field{
		Name: &ast.Name{Value: "studies"},
		SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
			&ast.Field{Name: &ast.Name{Value: "locations"}},
		}},
	}

	req := FieldRequestFromSelection(reg, study, field, nil)
	require.NotNil(t, req)
	require.Contains(t, req.Relations, "locations")
	// Empty nested request, not nil: projection turns this into identity-only.
	assert.Empty(t, req.Relations["locations"].Fields)
}

func TestFieldRequestExpandsFragments(t *testing.T) {
	reg, study := studyEntity(t)

	fragments := map[string]ast.Definition{
		"StudyCore": &ast.FragmentDefinition{
			SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
				&ast.Field{Name: &ast.Name{Value: "overallStatus"}},
				&ast.Field{Name: &ast.Name{Value: "phase"}},
			}},
		},
	}

	field := &ast.Field{
		Name: &ast.Name{Value: "studies"},
		SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
			&ast.Field{Name: &ast.Name{Value: "nctId"}},
			&ast.FragmentSpread{Name: &ast.Name{Value: "StudyCore"}},
			&ast.InlineFragment{
				SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
					&ast.Field{Name: &ast.Name{Value: "studyType"}},
				}},
			},
		}},
	}

	req := FieldRequestFromSelection(reg, study, field, fragments)
	require.NotNil(t, req)
	assert.Equal(t, []string{"nct_id", "overall_status", "phase", "study_type"}, req.Fields)
}

func TestFieldRequestMissingFragmentIgnored(t *testing.T) {
	reg, study := studyEntity(t)
	field := &ast.Field{
		Name: &ast.Name{Value: "studies"},
		SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{
			&ast.FragmentSpread{Name: &ast.Name{Value: "Ghost"}},
			&ast.Field{Name: &ast.Name{Value: "nctId"}},
		}},
	}
	req := FieldRequestFromSelection(reg, study, field, map[string]ast.Definition{})
	require.NotNil(t, req)
	assert.Equal(t, []string{"nct_id"}, req.Fields)
}
