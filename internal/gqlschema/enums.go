package gqlschema

import (
	"strings"

	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/planner"
)

// Enum types mirror the planner allow-lists so invalid filter values are
// rejected at the GraphQL layer before the composer sees them. Enum values
// carry the warehouse display strings ("Phase 1/Phase 2") as their mapped
// value, so resolvers and SQL predicates work on the stored form.

func overallStatusEnum() *graphql.Enum {
	return newEnum("OverallStatus", planner.AllowedOverallStatuses)
}

func phaseEnum() *graphql.Enum {
	return newEnum("Phase", planner.AllowedPhases)
}

func studyTypeEnum() *graphql.Enum {
	return newEnum("StudyType", planner.AllowedStudyTypes)
}

func interventionTypeEnum() *graphql.Enum {
	return newEnum("InterventionType", planner.AllowedInterventionTypes)
}

func genderEnum() *graphql.Enum {
	return newEnum("Gender", planner.AllowedGenders)
}

func orderDirectionEnum() *graphql.Enum {
	return graphql.NewEnum(graphql.EnumConfig{
		Name: "OrderDirection",
		Values: graphql.EnumValueConfigMap{
			"ASC":  &graphql.EnumValueConfig{Value: string(planner.Ascending)},
			"DESC": &graphql.EnumValueConfig{Value: string(planner.Descending)},
		},
	})
}

func newEnum(name string, values []string) *graphql.Enum {
	configs := graphql.EnumValueConfigMap{}
	for _, v := range values {
		configs[enumValueName(v)] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   name,
		Values: configs,
	})
}

// enumValueName converts a display string into a valid GraphQL enum value
// name: "Phase 1/Phase 2" becomes PHASE_1_PHASE_2, "N/A" becomes N_A.
func enumValueName(value string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToUpper(value) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
