package resolver

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
)

// HealthTopicsByBodyPart resolves the MedlinePlus health topics linked to
// a body part, matched by name.
func (r *Resolver) HealthTopicsByBodyPart(p graphql.ResolveParams) (interface{}, error) {
	name, ok := stringArg(p.Args, "bodyPartName")
	if !ok || name == "" {
		return []map[string]any{}, nil
	}
	return r.healthTopicsVia(p, entitymeta.TableHealthTopicBodyParts,
		"body_part_id", "body_parts", name)
}

// HealthTopicsByGroup resolves the health topics belonging to a topic
// group, matched by name.
func (r *Resolver) HealthTopicsByGroup(p graphql.ResolveParams) (interface{}, error) {
	name, ok := stringArg(p.Args, "groupName")
	if !ok || name == "" {
		return []map[string]any{}, nil
	}
	return r.healthTopicsVia(p, entitymeta.TableHealthTopicGroupMembers,
		"health_topic_group_id", "health_topic_groups", name)
}

func (r *Resolver) healthTopicsVia(p graphql.ResolveParams, junction, junctionRefCol, refTable, name string) (interface{}, error) {
	plan, err := r.projectionFor(p, entitymeta.EntityHealthTopic)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("health_topics").
		Join(junction + " ON " + junction + ".health_topic_id = health_topics.health_topic_id").
		Join(refTable + " ON " + refTable + "." + junctionRefCol + " = " + junction + "." + junctionRefCol).
		Where(sq.Eq{refTable + ".name": name}).
		GroupBy("health_topics.health_topic_id").
		OrderBy("health_topics.health_topic_id ASC").
		PlaceholderFormat(sq.Question)

	return r.fetch(p.Context, plan, b)
}
