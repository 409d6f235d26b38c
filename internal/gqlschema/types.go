package gqlschema

import (
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/planner"
	"biomed-graphql/internal/resolver"
	"biomed-graphql/internal/scalars"
)

// builder assembles the static schema once. Resolvers receive row maps
// keyed by column name, so every scalar field resolves through its column
// rather than the default field-name lookup.
type builder struct {
	r *resolver.Resolver

	bigInt         *graphql.Scalar
	nonNegativeInt *graphql.Scalar
	date           *graphql.Scalar
	uuid           *graphql.Scalar

	overallStatus    *graphql.Enum
	phase            *graphql.Enum
	studyType        *graphql.Enum
	interventionType *graphql.Enum
	gender           *graphql.Enum
	orderDirection   *graphql.Enum
}

func newBuilder(r *resolver.Resolver) *builder {
	return &builder{
		r:                r,
		bigInt:           scalars.BigInt(),
		nonNegativeInt:   scalars.NonNegativeInt(),
		date:             scalars.Date(),
		uuid:             scalars.UUID(),
		overallStatus:    overallStatusEnum(),
		phase:            phaseEnum(),
		studyType:        studyTypeEnum(),
		interventionType: interventionTypeEnum(),
		gender:           genderEnum(),
		orderDirection:   orderDirectionEnum(),
	}
}

// columnField resolves a scalar field from its row column.
func columnField(column string, t graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			source, ok := p.Source.(map[string]any)
			if !ok {
				return nil, nil
			}
			return source[column], nil
		},
	}
}

// relationField resolves a nested record or list attached by the batch
// loader under the relation name.
func relationField(name string, t graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			source, ok := p.Source.(map[string]any)
			if !ok {
				return nil, nil
			}
			return source[name], nil
		},
	}
}

func countField() *graphql.Field {
	return columnField(planner.CountAlias, graphql.NewNonNull(graphql.Int))
}

func (b *builder) facilityObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Facility",
		Fields: graphql.Fields{
			"facilityId": columnField("facility_id", graphql.NewNonNull(b.bigInt)),
			"name":       columnField("name", graphql.String),
			"city":       columnField("city", graphql.String),
			"state":      columnField("state", graphql.String),
			"country":    columnField("country", graphql.String),
		},
	})
}

func (b *builder) eligibilityObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Eligibility",
		Fields: graphql.Fields{
			"eligibilityId":     columnField("eligibility_id", graphql.NewNonNull(b.bigInt)),
			"gender":            columnField("gender", graphql.String),
			"minimumAgeSeconds": columnField("minimum_age_seconds", b.bigInt),
			"maximumAgeSeconds": columnField("maximum_age_seconds", b.bigInt),
		},
	})
}

func (b *builder) interventionObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Intervention",
		Fields: graphql.Fields{
			"interventionId":   columnField("intervention_id", graphql.NewNonNull(b.bigInt)),
			"interventionType": columnField("intervention_type", graphql.String),
			"name":             columnField("name", graphql.String),
			"description":      columnField("description", graphql.String),
		},
	})
}

func (b *builder) locationObject(facility *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"locationId": columnField("location_id", graphql.NewNonNull(b.bigInt)),
			"status":     columnField("status", graphql.String),
			"facility":   relationField("facility", facility),
		},
	})
}

func (b *builder) treeNumberObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TreeNumber",
		Fields: graphql.Fields{
			"treeNumberId": columnField("tree_number_id", graphql.NewNonNull(b.bigInt)),
			"treeNumber":   columnField("tree_number", graphql.String),
		},
	})
}

func (b *builder) descriptorObject(treeNumber *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Descriptor",
		Fields: graphql.Fields{
			"descriptorId": columnField("descriptor_id", graphql.NewNonNull(b.bigInt)),
			"ui":           columnField("ui", graphql.String),
			"name":         columnField("name", graphql.String),
			"treeNumbers":  relationField("tree_numbers", graphql.NewList(treeNumber)),
		},
	})
}

func (b *builder) studyObject(name string, eligibility, intervention, location, facility, descriptor *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"studyId":        columnField("study_id", graphql.NewNonNull(b.bigInt)),
			"nctId":          columnField("nct_id", graphql.String),
			"briefTitle":     columnField("brief_title", graphql.String),
			"officialTitle":  columnField("official_title", graphql.String),
			"overallStatus":  columnField("overall_status", b.overallStatus),
			"phase":          columnField("phase", b.phase),
			"studyType":      columnField("study_type", b.studyType),
			"startDate":      columnField("start_date", b.date),
			"completionDate": columnField("completion_date", b.date),
			"eligibility":    relationField("eligibility", eligibility),
			"interventions":  relationField("interventions", graphql.NewList(intervention)),
			"locations":      relationField("locations", graphql.NewList(location)),
			"facilities":     relationField("facilities", graphql.NewList(facility)),
			"descriptors":    relationField("descriptors", graphql.NewList(descriptor)),
		},
	})
}

func (b *builder) affiliationObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Affiliation",
		Fields: graphql.Fields{
			"affiliationId": columnField("affiliation_id", graphql.NewNonNull(b.bigInt)),
			"name":          columnField("name", graphql.String),
			"country":       columnField("country", graphql.String),
		},
	})
}

func (b *builder) articleObject(affiliation *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Article",
		Fields: graphql.Fields{
			"articleId":       columnField("article_id", graphql.NewNonNull(b.bigInt)),
			"title":           columnField("title", graphql.String),
			"journal":         columnField("journal", graphql.String),
			"publicationYear": columnField("publication_year", graphql.Int),
			"affiliations":    relationField("affiliations", graphql.NewList(affiliation)),
		},
	})
}

func (b *builder) qualifierObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Qualifier",
		Fields: graphql.Fields{
			"qualifierId": columnField("qualifier_id", graphql.NewNonNull(b.bigInt)),
			"ui":          columnField("ui", graphql.String),
			"name":        columnField("name", graphql.String),
		},
	})
}

func (b *builder) citationObject(name string, article, descriptor, qualifier *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"citationId":  columnField("citation_id", graphql.NewNonNull(b.bigInt)),
			"pmid":        columnField("pmid", b.bigInt),
			"article":     relationField("article", article),
			"descriptors": relationField("descriptors", graphql.NewList(descriptor)),
			"qualifiers":  relationField("qualifiers", graphql.NewList(qualifier)),
		},
	})
}

func (b *builder) bodyPartObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "BodyPart",
		Fields: graphql.Fields{
			"bodyPartId": columnField("body_part_id", graphql.NewNonNull(b.bigInt)),
			"name":       columnField("name", graphql.String),
		},
	})
}

func (b *builder) healthTopicGroupObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "HealthTopicGroup",
		Fields: graphql.Fields{
			"healthTopicGroupId": columnField("health_topic_group_id", graphql.NewNonNull(b.bigInt)),
			"name":               columnField("name", graphql.String),
		},
	})
}

func (b *builder) healthTopicObject(bodyPart, group *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "HealthTopic",
		Fields: graphql.Fields{
			"healthTopicId": columnField("health_topic_id", graphql.NewNonNull(b.bigInt)),
			"ui":            columnField("ui", graphql.String),
			"title":         columnField("title", graphql.String),
			"url":           columnField("url", graphql.String),
			"bodyParts":     relationField("body_parts", graphql.NewList(bodyPart)),
			"groups":        relationField("groups", graphql.NewList(group)),
		},
	})
}

func (b *builder) searchObject(descriptor *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Search",
		Fields: graphql.Fields{
			"searchId":    columnField("search_id", graphql.NewNonNull(b.bigInt)),
			"searchUuid":  columnField("search_uuid", graphql.NewNonNull(b.uuid)),
			"title":       columnField("title", graphql.String),
			"gender":      columnField("gender", b.gender),
			"yearBeg":     columnField("year_beg", graphql.Int),
			"yearEnd":     columnField("year_end", graphql.Int),
			"ageBeg":      columnField("age_beg", graphql.Int),
			"ageEnd":      columnField("age_end", graphql.Int),
			"descriptors": relationField("descriptors", graphql.NewList(descriptor)),
		},
	})
}

func (b *builder) searchInputObject() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SearchInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"searchUuid": &graphql.InputObjectFieldConfig{Type: b.uuid},
			"title":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"gender":     &graphql.InputObjectFieldConfig{Type: b.gender},
			"yearBeg":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"yearEnd":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"ageBeg":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"ageEnd":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
}

func (b *builder) userObject(study, citation, search *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"userId":    columnField("user_id", graphql.NewNonNull(b.bigInt)),
			"subject":   columnField("subject", graphql.NewNonNull(graphql.String)),
			"email":     columnField("email", graphql.String),
			"studies":   relationField("studies", graphql.NewList(study)),
			"citations": relationField("citations", graphql.NewList(citation)),
			"searches":  relationField("searches", graphql.NewList(search)),
		},
	})
}

func (b *builder) userInputObject() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"subject": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

// Aggregate row types. Each mirrors the dimension columns of one grouped
// count plus the count itself.

func (b *builder) countByCountryObject(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"country": columnField("country", graphql.String),
			"count":   countField(),
		},
	})
}

func (b *builder) countByFacilityObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "FacilityStudyCount",
		Fields: graphql.Fields{
			"facilityId": columnField("facility_id", graphql.NewNonNull(b.bigInt)),
			"name":       columnField("name", graphql.String),
			"city":       columnField("city", graphql.String),
			"state":      columnField("state", graphql.String),
			"country":    columnField("country", graphql.String),
			"count":      countField(),
		},
	})
}

func (b *builder) countByDescriptorObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "DescriptorStudyCount",
		Fields: graphql.Fields{
			"descriptorId": columnField("descriptor_id", graphql.NewNonNull(b.bigInt)),
			"ui":           columnField("ui", graphql.String),
			"name":         columnField("name", graphql.String),
			"count":        countField(),
		},
	})
}

func (b *builder) countByAffiliationObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "AffiliationCitationCount",
		Fields: graphql.Fields{
			"affiliationId": columnField("affiliation_id", graphql.NewNonNull(b.bigInt)),
			"name":          columnField("name", graphql.String),
			"country":       columnField("country", graphql.String),
			"count":         countField(),
		},
	})
}

func (b *builder) countByQualifierObject() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "QualifierCitationCount",
		Fields: graphql.Fields{
			"qualifierId": columnField("qualifier_id", graphql.NewNonNull(b.bigInt)),
			"ui":          columnField("ui", graphql.String),
			"name":        columnField("name", graphql.String),
			"count":       countField(),
		},
	})
}
