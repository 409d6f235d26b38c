// Package naming converts between SQL names (snake_case tables/columns) and
// GraphQL names (camelCase fields, PascalCase types). The schema is static,
// so the conversions are pure functions with no collision state.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// ToFieldName converts a column name to a GraphQL field name.
// Example: "brief_title" -> "briefTitle".
func ToFieldName(column string) string {
	parts := strings.Split(column, "_")
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// ToColumnName converts a GraphQL field name back to a column name.
// Example: "briefTitle" -> "brief_title". Already-snake names pass through.
func ToColumnName(field string) string {
	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToTypeName converts a table name to a GraphQL type name.
// Example: "health_topic_groups" -> "HealthTopicGroups".
func ToTypeName(table string) string {
	parts := strings.Split(table, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// ListFieldName pluralizes a field name for list-valued fields.
// Example: "study" -> "studies".
func ListFieldName(field string) string {
	return inflection.Plural(field)
}

// SingularFieldName singularizes a field name for single-valued fields.
// Example: "facilities" -> "facility".
func SingularFieldName(field string) string {
	return inflection.Singular(field)
}
