package resolver

import (
	"context"

	"biomed-graphql/internal/planner"
)

// Argument extraction helpers. graphql-go hands arguments over as
// map[string]interface{} with Int as int, Float as float64, and lists as
// []interface{}; these helpers normalize the shapes the resolvers need.

func int64Arg(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func float64Arg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok
}

func int64List(args map[string]interface{}, key string) []int64 {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case int:
			out = append(out, int64(v))
		case int64:
			out = append(out, v)
		case float64:
			out = append(out, int64(v))
		}
	}
	return out
}

func stringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intervalArg(args map[string]interface{}, begKey, endKey string) *planner.Interval {
	var iv planner.Interval
	if beg, ok := int64Arg(args, begKey); ok {
		iv.Beg = planner.Int64(beg)
	}
	if end, ok := int64Arg(args, endKey); ok {
		iv.End = planner.Int64(end)
	}
	if iv.IsZero() {
		return nil
	}
	return &iv
}

func pageArg(args map[string]interface{}) planner.PageSpec {
	var page planner.PageSpec
	if limit, ok := int64Arg(args, "limit"); ok && limit >= 0 {
		page.Limit = planner.Uint64(uint64(limit))
	}
	if offset, ok := int64Arg(args, "offset"); ok && offset >= 0 {
		page.Offset = planner.Uint64(uint64(offset))
	}
	return page
}

func orderArg(args map[string]interface{}) *planner.OrderSpec {
	field, ok := stringArg(args, "orderBy")
	if !ok || field == "" {
		return nil
	}
	order := &planner.OrderSpec{Field: field}
	if dir, ok := stringArg(args, "order"); ok {
		order.Direction = planner.Direction(dir)
	}
	return order
}

// geoArg assembles the geo filter only when all three parameters are
// present; a partial specification is treated as absent.
func geoArg(args map[string]interface{}) *planner.GeoFilter {
	lon, okLon := float64Arg(args, "longitude")
	lat, okLat := float64Arg(args, "latitude")
	radius, okRadius := float64Arg(args, "radiusMeters")
	if !okLon || !okLat || !okRadius {
		return nil
	}
	return &planner.GeoFilter{Longitude: lon, Latitude: lat, RadiusMeters: radius}
}

// studyFilterFromArgs assembles the full StudyFilter, expanding each MeSH
// descriptor root into its closure group.
func (r *Resolver) studyFilterFromArgs(ctx context.Context, args map[string]interface{}) (planner.StudyFilter, error) {
	groups, err := r.descriptorGroups(ctx, int64List(args, "meshDescriptorIds"))
	if err != nil {
		return planner.StudyFilter{}, err
	}
	return planner.StudyFilter{
		DescriptorGroups:  groups,
		StudyIDs:          int64List(args, "studyIds"),
		OverallStatuses:   stringList(args, "overallStatuses"),
		Phases:            stringList(args, "phases"),
		StudyTypes:        stringList(args, "studyTypes"),
		InterventionTypes: stringList(args, "interventionTypes"),
		Genders:           stringList(args, "genders"),
		Cities:            stringList(args, "cities"),
		States:            stringList(args, "states"),
		Countries:         stringList(args, "countries"),
		FacilityIDs:       int64List(args, "facilityIds"),
		Geo:               geoArg(args),
		AgeSeconds:        intervalArg(args, "ageBegSeconds", "ageEndSeconds"),
		StartYear:         intervalArg(args, "yearBeg", "yearEnd"),
	}, nil
}

// citationFilterFromArgs is the citations counterpart.
func (r *Resolver) citationFilterFromArgs(ctx context.Context, args map[string]interface{}) (planner.CitationFilter, error) {
	groups, err := r.descriptorGroups(ctx, int64List(args, "meshDescriptorIds"))
	if err != nil {
		return planner.CitationFilter{}, err
	}
	return planner.CitationFilter{
		DescriptorGroups: groups,
		CitationIDs:      int64List(args, "citationIds"),
		QualifierIDs:     int64List(args, "qualifierIds"),
		Countries:        stringList(args, "countries"),
		PublicationYear:  intervalArg(args, "yearBeg", "yearEnd"),
	}, nil
}
