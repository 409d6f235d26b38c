package gqlschema

import (
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/naming"
	"biomed-graphql/internal/resolver"
)

// Build wires the static biomedical schema over the given resolver. The
// schema is assembled once at startup; a failure here is fatal.
func Build(r *resolver.Resolver) (graphql.Schema, error) {
	b := newBuilder(r)

	studyEntity, err := r.Registry.Describe(entitymeta.EntityStudy)
	if err != nil {
		return graphql.Schema{}, err
	}
	citationEntity, err := r.Registry.Describe(entitymeta.EntityCitation)
	if err != nil {
		return graphql.Schema{}, err
	}

	// Type, lookup and list field names derive from the registry table
	// names, so the query surface tracks the SQL model:
	// "studies" -> Study / study / studies.
	studyField := naming.ToFieldName(naming.SingularFieldName(studyEntity.Table))
	studiesField := naming.ListFieldName(studyField)
	citationField := naming.ToFieldName(naming.SingularFieldName(citationEntity.Table))
	citationsField := naming.ListFieldName(citationField)

	facility := b.facilityObject()
	eligibility := b.eligibilityObject()
	intervention := b.interventionObject()
	location := b.locationObject(facility)
	treeNumber := b.treeNumberObject()
	descriptor := b.descriptorObject(treeNumber)
	study := b.studyObject(naming.ToTypeName(naming.SingularFieldName(studyEntity.Table)),
		eligibility, intervention, location, facility, descriptor)

	affiliation := b.affiliationObject()
	article := b.articleObject(affiliation)
	qualifier := b.qualifierObject()
	citation := b.citationObject(naming.ToTypeName(naming.SingularFieldName(citationEntity.Table)),
		article, descriptor, qualifier)

	bodyPart := b.bodyPartObject()
	healthTopicGroup := b.healthTopicGroupObject()
	healthTopic := b.healthTopicObject(bodyPart, healthTopicGroup)

	search := b.searchObject(descriptor)
	searchInput := b.searchInputObject()

	user := b.userObject(study, citation, search)
	userInput := b.userInputObject()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			studyField: {
				Type: study,
				Args: graphql.FieldConfigArgument{
					"studyId": {Type: graphql.NewNonNull(b.bigInt)},
				},
				Resolve: r.StudyByID,
			},
			studyField + "ByNctId": {
				Type: study,
				Args: graphql.FieldConfigArgument{
					"nctId": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.StudyByNCTID,
			},
			studiesField: {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(study))),
				Args:    b.studySearchArgs(),
				Resolve: r.Studies,
			},
			studiesField + "Count": {
				Type:    graphql.NewNonNull(graphql.Int),
				Args:    b.studyFilterArgs(),
				Resolve: r.StudiesCount,
			},
			citationField: {
				Type: citation,
				Args: graphql.FieldConfigArgument{
					"citationId": {Type: graphql.NewNonNull(b.bigInt)},
				},
				Resolve: r.CitationByID,
			},
			citationField + "ByPmid": {
				Type: citation,
				Args: graphql.FieldConfigArgument{
					"pmid": {Type: graphql.NewNonNull(b.bigInt)},
				},
				Resolve: r.CitationByPMID,
			},
			citationsField: {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(citation))),
				Args:    b.citationSearchArgs(),
				Resolve: r.Citations,
			},
			citationsField + "Count": {
				Type:    graphql.NewNonNull(graphql.Int),
				Args:    b.citationFilterArgs(),
				Resolve: r.CitationsCount,
			},
			"user": {
				Type: user,
				Args: graphql.FieldConfigArgument{
					"subject": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.UserBySubject,
			},
			"descriptor": {
				Type: descriptor,
				Args: graphql.FieldConfigArgument{
					"ui": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.DescriptorByUI,
			},
			"descriptorsByTreeNumberPrefix": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(descriptor))),
				Args: graphql.FieldConfigArgument{
					"treeNumberPrefix": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.DescriptorsByTreeNumberPrefix,
			},
			"healthTopicsByBodyPart": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(healthTopic))),
				Args: graphql.FieldConfigArgument{
					"bodyPartName": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.HealthTopicsByBodyPart,
			},
			"healthTopicsByGroup": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(healthTopic))),
				Args: graphql.FieldConfigArgument{
					"groupName": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.HealthTopicsByGroup,
			},
			"countStudiesByCountry": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByCountryObject("CountryStudyCount")))),
				Args:    withLimit(b.studyFilterArgs()),
				Resolve: r.CountStudiesByCountry,
			},
			"countStudiesByFacility": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByFacilityObject()))),
				Args:    withLimit(b.studyFilterArgs()),
				Resolve: r.CountStudiesByFacility,
			},
			"countStudiesByDescriptor": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByDescriptorObject()))),
				Args:    withLimit(b.studyFilterArgs()),
				Resolve: r.CountStudiesByDescriptor,
			},
			"countCitationsByCountry": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByCountryObject("CountryCitationCount")))),
				Args:    withLimit(b.citationFilterArgs()),
				Resolve: r.CountCitationsByCountry,
			},
			"countCitationsByAffiliation": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByAffiliationObject()))),
				Args:    withLimit(b.citationFilterArgs()),
				Resolve: r.CountCitationsByAffiliation,
			},
			"countCitationsByQualifier": {
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.countByQualifierObject()))),
				Args:    withLimit(b.citationFilterArgs()),
				Resolve: r.CountCitationsByQualifier,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"searchUpsert": {
				Type: search,
				Args: graphql.FieldConfigArgument{
					"search":            {Type: graphql.NewNonNull(searchInput)},
					"meshDescriptorIds": {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
				},
				Resolve: r.SearchUpsert,
			},
			"searchDelete": {
				Type: search,
				Args: graphql.FieldConfigArgument{
					"searchUuid": {Type: graphql.NewNonNull(b.uuid)},
				},
				Resolve: r.SearchDelete,
			},
			"userUpsert": {
				Type: user,
				Args: graphql.FieldConfigArgument{
					"user": {Type: graphql.NewNonNull(userInput)},
				},
				Resolve: r.UserUpsert,
			},
			"userDelete": {
				Type: user,
				Args: graphql.FieldConfigArgument{
					"subject": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.UserDelete,
			},
			"userStudyUpsert": {
				Type:    user,
				Args:    userStudyArgs(),
				Resolve: r.UserStudyUpsert,
			},
			"userStudyDelete": {
				Type:    user,
				Args:    userStudyArgs(),
				Resolve: r.UserStudyDelete,
			},
			"userCitationUpsert": {
				Type:    user,
				Args:    b.userCitationArgs(),
				Resolve: r.UserCitationUpsert,
			},
			"userCitationDelete": {
				Type:    user,
				Args:    b.userCitationArgs(),
				Resolve: r.UserCitationDelete,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// studyFilterArgs are the filter arguments shared by the studies search,
// count and aggregation fields.
func (b *builder) studyFilterArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"studyIds":          {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"meshDescriptorIds": {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"overallStatuses":   {Type: graphql.NewList(graphql.NewNonNull(b.overallStatus))},
		"phases":            {Type: graphql.NewList(graphql.NewNonNull(b.phase))},
		"studyTypes":        {Type: graphql.NewList(graphql.NewNonNull(b.studyType))},
		"interventionTypes": {Type: graphql.NewList(graphql.NewNonNull(b.interventionType))},
		"genders":           {Type: graphql.NewList(graphql.NewNonNull(b.gender))},
		"cities":            {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"states":            {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"countries":         {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"facilityIds":       {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"longitude":         {Type: graphql.Float},
		"latitude":          {Type: graphql.Float},
		"radiusMeters":      {Type: graphql.Float},
		"ageBegSeconds":     {Type: b.bigInt},
		"ageEndSeconds":     {Type: b.bigInt},
		"yearBeg":           {Type: graphql.Int},
		"yearEnd":           {Type: graphql.Int},
	}
}

func (b *builder) studySearchArgs() graphql.FieldConfigArgument {
	return withPaging(b.studyFilterArgs(), b)
}

func (b *builder) citationFilterArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"citationIds":       {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"meshDescriptorIds": {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"qualifierIds":      {Type: graphql.NewList(graphql.NewNonNull(b.bigInt))},
		"countries":         {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"yearBeg":           {Type: graphql.Int},
		"yearEnd":           {Type: graphql.Int},
	}
}

func (b *builder) citationSearchArgs() graphql.FieldConfigArgument {
	return withPaging(b.citationFilterArgs(), b)
}

func userStudyArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"subject": {Type: graphql.NewNonNull(graphql.String)},
		"nctId":   {Type: graphql.NewNonNull(graphql.String)},
	}
}

func (b *builder) userCitationArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"subject": {Type: graphql.NewNonNull(graphql.String)},
		"pmid":    {Type: graphql.NewNonNull(b.bigInt)},
	}
}

func withPaging(args graphql.FieldConfigArgument, b *builder) graphql.FieldConfigArgument {
	args["orderBy"] = &graphql.ArgumentConfig{Type: graphql.String}
	args["order"] = &graphql.ArgumentConfig{Type: b.orderDirection}
	args["limit"] = &graphql.ArgumentConfig{Type: b.nonNegativeInt}
	args["offset"] = &graphql.ArgumentConfig{Type: b.nonNegativeInt}
	return args
}

func withLimit(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args["limit"] = &graphql.ArgumentConfig{Type: graphql.Int}
	return args
}
