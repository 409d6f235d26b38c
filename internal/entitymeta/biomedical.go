package entitymeta

// Entity names for the biomedical model. Resolvers and the GraphQL schema
// refer to entities through these constants rather than string literals.
const (
	EntityStudy            = "Study"
	EntityEligibility      = "Eligibility"
	EntityIntervention     = "Intervention"
	EntityLocation         = "Location"
	EntityFacility         = "Facility"
	EntityCitation         = "Citation"
	EntityArticle          = "Article"
	EntityAffiliation      = "Affiliation"
	EntityDescriptor       = "Descriptor"
	EntityTreeNumber       = "TreeNumber"
	EntityQualifier        = "Qualifier"
	EntityHealthTopic      = "HealthTopic"
	EntityHealthTopicGroup = "HealthTopicGroup"
	EntityBodyPart         = "BodyPart"
	EntitySearch           = "Search"
	EntityUser             = "User"
)

// Junction tables that carry no scalar payload of their own but appear in
// membership subqueries and aggregations.
const (
	TableStudyDescriptors             = "study_descriptors"
	TableCitationDescriptorQualifiers = "citation_descriptor_qualifiers"
	TableDescriptorTreeNumbers        = "descriptor_tree_numbers"
	TableArticleAffiliations          = "article_affiliations"
	TableSearchDescriptors            = "search_descriptors"
	TableUserStudies                  = "user_studies"
	TableUserCitations                = "user_citations"
	TableUserSearches                 = "user_searches"
	TableHealthTopicBodyParts         = "health_topic_body_parts"
	TableHealthTopicGroupMembers      = "health_topic_group_topics"
)

// Biomedical returns the registry for the clinical-trials / PubMed / MeSH /
// MedlinePlus graph. The descriptors mirror the warehouse schema; column
// lists are the query surface, not the full physical table.
func Biomedical() *Registry {
	return MustNewRegistry(
		Entity{
			Name:           EntityStudy,
			Table:          "studies",
			IdentityColumn: "study_id",
			ScalarColumns: []string{
				"study_id", "nct_id", "brief_title", "official_title",
				"overall_status", "phase", "study_type",
				"start_date", "completion_date",
			},
			Relations: []Relation{
				{
					Name: "eligibility", Target: EntityEligibility, Kind: OneToOne,
					LocalColumn: "study_id", RemoteColumn: "study_id",
				},
				{
					Name: "interventions", Target: EntityIntervention, Kind: OneToMany,
					LocalColumn: "study_id", RemoteColumn: "study_id",
				},
				{
					Name: "locations", Target: EntityLocation, Kind: OneToMany,
					LocalColumn: "study_id", RemoteColumn: "study_id",
				},
				{
					Name: "facilities", Target: EntityFacility, Kind: ManyToMany,
					LocalColumn: "study_id", RemoteColumn: "facility_id",
					JunctionTable:       "locations",
					JunctionLocalColumn: "study_id", JunctionRemoteColumn: "facility_id",
				},
				{
					Name: "descriptors", Target: EntityDescriptor, Kind: ManyToMany,
					LocalColumn: "study_id", RemoteColumn: "descriptor_id",
					JunctionTable:       TableStudyDescriptors,
					JunctionLocalColumn: "study_id", JunctionRemoteColumn: "descriptor_id",
				},
			},
		},
		Entity{
			Name:           EntityEligibility,
			Table:          "eligibilities",
			IdentityColumn: "eligibility_id",
			ScalarColumns: []string{
				"eligibility_id", "study_id", "gender",
				"minimum_age_seconds", "maximum_age_seconds",
			},
		},
		Entity{
			Name:           EntityIntervention,
			Table:          "interventions",
			IdentityColumn: "intervention_id",
			ScalarColumns: []string{
				"intervention_id", "study_id", "intervention_type", "name", "description",
			},
		},
		Entity{
			Name:           EntityLocation,
			Table:          "locations",
			IdentityColumn: "location_id",
			ScalarColumns:  []string{"location_id", "study_id", "facility_id", "status"},
			Relations: []Relation{
				{
					Name: "facility", Target: EntityFacility, Kind: ManyToOne,
					LocalColumn: "facility_id", RemoteColumn: "facility_id",
				},
			},
		},
		Entity{
			Name:           EntityFacility,
			Table:          "facilities",
			IdentityColumn: "facility_id",
			ScalarColumns: []string{
				"facility_id", "name", "city", "state", "country", "coordinates",
			},
		},
		Entity{
			Name:           EntityCitation,
			Table:          "citations",
			IdentityColumn: "citation_id",
			ScalarColumns:  []string{"citation_id", "pmid", "article_id"},
			Relations: []Relation{
				{
					Name: "article", Target: EntityArticle, Kind: ManyToOne,
					LocalColumn: "article_id", RemoteColumn: "article_id",
				},
				{
					Name: "descriptors", Target: EntityDescriptor, Kind: ManyToMany,
					LocalColumn: "citation_id", RemoteColumn: "descriptor_id",
					JunctionTable:       TableCitationDescriptorQualifiers,
					JunctionLocalColumn: "citation_id", JunctionRemoteColumn: "descriptor_id",
				},
				{
					Name: "qualifiers", Target: EntityQualifier, Kind: ManyToMany,
					LocalColumn: "citation_id", RemoteColumn: "qualifier_id",
					JunctionTable:       TableCitationDescriptorQualifiers,
					JunctionLocalColumn: "citation_id", JunctionRemoteColumn: "qualifier_id",
				},
			},
		},
		Entity{
			Name:           EntityArticle,
			Table:          "articles",
			IdentityColumn: "article_id",
			ScalarColumns: []string{
				"article_id", "title", "journal", "publication_year",
			},
			Relations: []Relation{
				{
					Name: "affiliations", Target: EntityAffiliation, Kind: ManyToMany,
					LocalColumn: "article_id", RemoteColumn: "affiliation_id",
					JunctionTable:       TableArticleAffiliations,
					JunctionLocalColumn: "article_id", JunctionRemoteColumn: "affiliation_id",
				},
			},
		},
		Entity{
			Name:           EntityAffiliation,
			Table:          "affiliations",
			IdentityColumn: "affiliation_id",
			ScalarColumns:  []string{"affiliation_id", "name", "country"},
		},
		Entity{
			Name:           EntityDescriptor,
			Table:          "descriptors",
			IdentityColumn: "descriptor_id",
			ScalarColumns:  []string{"descriptor_id", "ui", "name"},
			Relations: []Relation{
				{
					Name: "tree_numbers", Target: EntityTreeNumber, Kind: ManyToMany,
					LocalColumn: "descriptor_id", RemoteColumn: "tree_number_id",
					JunctionTable:       TableDescriptorTreeNumbers,
					JunctionLocalColumn: "descriptor_id", JunctionRemoteColumn: "tree_number_id",
				},
			},
		},
		Entity{
			Name:           EntityTreeNumber,
			Table:          "tree_numbers",
			IdentityColumn: "tree_number_id",
			ScalarColumns:  []string{"tree_number_id", "tree_number"},
		},
		Entity{
			Name:           EntityQualifier,
			Table:          "qualifiers",
			IdentityColumn: "qualifier_id",
			ScalarColumns:  []string{"qualifier_id", "ui", "name"},
		},
		Entity{
			Name:           EntityHealthTopic,
			Table:          "health_topics",
			IdentityColumn: "health_topic_id",
			ScalarColumns:  []string{"health_topic_id", "ui", "title", "url"},
			Relations: []Relation{
				{
					Name: "body_parts", Target: EntityBodyPart, Kind: ManyToMany,
					LocalColumn: "health_topic_id", RemoteColumn: "body_part_id",
					JunctionTable:       TableHealthTopicBodyParts,
					JunctionLocalColumn: "health_topic_id", JunctionRemoteColumn: "body_part_id",
				},
				{
					Name: "groups", Target: EntityHealthTopicGroup, Kind: ManyToMany,
					LocalColumn: "health_topic_id", RemoteColumn: "health_topic_group_id",
					JunctionTable:       TableHealthTopicGroupMembers,
					JunctionLocalColumn: "health_topic_id", JunctionRemoteColumn: "health_topic_group_id",
				},
			},
		},
		Entity{
			Name:           EntityHealthTopicGroup,
			Table:          "health_topic_groups",
			IdentityColumn: "health_topic_group_id",
			ScalarColumns:  []string{"health_topic_group_id", "name"},
		},
		Entity{
			Name:           EntityBodyPart,
			Table:          "body_parts",
			IdentityColumn: "body_part_id",
			ScalarColumns:  []string{"body_part_id", "name"},
		},
		Entity{
			Name:           EntitySearch,
			Table:          "searches",
			IdentityColumn: "search_id",
			ScalarColumns: []string{
				"search_id", "search_uuid", "title", "gender",
				"year_beg", "year_end", "age_beg", "age_end",
			},
			Relations: []Relation{
				{
					Name: "descriptors", Target: EntityDescriptor, Kind: ManyToMany,
					LocalColumn: "search_id", RemoteColumn: "descriptor_id",
					JunctionTable:       TableSearchDescriptors,
					JunctionLocalColumn: "search_id", JunctionRemoteColumn: "descriptor_id",
				},
			},
		},
		Entity{
			Name:           EntityUser,
			Table:          "users",
			IdentityColumn: "user_id",
			ScalarColumns:  []string{"user_id", "subject", "email"},
			Relations: []Relation{
				{
					Name: "studies", Target: EntityStudy, Kind: ManyToMany,
					LocalColumn: "user_id", RemoteColumn: "study_id",
					JunctionTable:       TableUserStudies,
					JunctionLocalColumn: "user_id", JunctionRemoteColumn: "study_id",
				},
				{
					Name: "citations", Target: EntityCitation, Kind: ManyToMany,
					LocalColumn: "user_id", RemoteColumn: "citation_id",
					JunctionTable:       TableUserCitations,
					JunctionLocalColumn: "user_id", JunctionRemoteColumn: "citation_id",
				},
				{
					Name: "searches", Target: EntitySearch, Kind: ManyToMany,
					LocalColumn: "user_id", RemoteColumn: "search_id",
					JunctionTable:       TableUserSearches,
					JunctionLocalColumn: "user_id", JunctionRemoteColumn: "search_id",
				},
			},
		},
	)
}
