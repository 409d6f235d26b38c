package resolver

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/planner"
	"biomed-graphql/internal/qerr"
	"biomed-graphql/internal/setutil"
	"biomed-graphql/internal/sqlutil"
)

// SearchUpsert creates or updates a saved search identified by its UUID
// and replaces its descriptor links. The record and its links are written
// through the executor; the refreshed search row is returned.
func (r *Resolver) SearchUpsert(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["search"].(map[string]interface{})
	if !ok {
		return nil, qerr.NewConfigurationError("search", "search input is required")
	}
	rawUUID, ok := stringArg(input, "searchUuid")
	if !ok || rawUUID == "" {
		// A fresh search gets a server-side identity.
		rawUUID = uuid.NewString()
	}
	searchUUID, err := uuid.Parse(rawUUID)
	if err != nil {
		return nil, qerr.NewConfigurationError("searchUuid", "invalid UUID: %v", err)
	}
	title, _ := stringArg(input, "title")
	if title == "" {
		return nil, qerr.NewConfigurationError("title", "title is required")
	}

	values := map[string]interface{}{
		"search_uuid": searchUUID.String(),
		"title":       title,
		"gender":      nil,
		"year_beg":    nil,
		"year_end":    nil,
		"age_beg":     nil,
		"age_end":     nil,
	}
	if raw, ok := input["gender"]; ok && raw != nil {
		// Arguments arrive as a bare string or, through variables, as a
		// one-element list; canonicalize either shape.
		genders, err := setutil.CanonicalizeAny(normalizeGender(raw), planner.AllowedGenders)
		if err != nil {
			return nil, qerr.NewConfigurationError("gender", "%v", err)
		}
		if len(genders) > 0 {
			values["gender"] = genders[0]
		}
	}
	for arg, col := range map[string]string{
		"yearBeg": "year_beg", "yearEnd": "year_end",
		"ageBeg": "age_beg", "ageEnd": "age_end",
	} {
		if v, ok := int64Arg(input, arg); ok {
			values[col] = v
		}
	}

	ctx := p.Context
	upsert := sq.Insert("searches").
		SetMap(values).
		Suffix("ON DUPLICATE KEY UPDATE title = VALUES(title), gender = VALUES(gender)," +
			" year_beg = VALUES(year_beg), year_end = VALUES(year_end)," +
			" age_beg = VALUES(age_beg), age_end = VALUES(age_end)").
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, upsert); err != nil {
		return nil, err
	}

	record, err := r.searchByUUID(ctx, searchUUID.String())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &qerr.UnresolvedReference{Kind: "search", Key: searchUUID.String()}
	}
	searchID, ok := int64Arg(record, "search_id")
	if !ok {
		return nil, fmt.Errorf("upserted search has no id")
	}

	// Replace the descriptor links wholesale; the set is small and the
	// delete-then-insert keeps the links exactly in sync with the input.
	clear := sq.Delete(entitymeta.TableSearchDescriptors).
		Where(sq.Eq{"search_id": searchID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, clear); err != nil {
		return nil, err
	}
	if descriptorIDs := int64List(p.Args, "meshDescriptorIds"); len(descriptorIDs) > 0 {
		insert := sq.Insert(entitymeta.TableSearchDescriptors).
			Columns("search_id", "descriptor_id").
			PlaceholderFormat(sq.Question)
		for _, id := range descriptorIDs {
			insert = insert.Values(searchID, id)
		}
		if err := r.exec(ctx, insert); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// SearchDelete removes a saved search and its descriptor links. The
// deleted search row is returned; deleting an unknown UUID yields nil.
func (r *Resolver) SearchDelete(p graphql.ResolveParams) (interface{}, error) {
	rawUUID, ok := stringArg(p.Args, "searchUuid")
	if !ok || rawUUID == "" {
		return nil, qerr.NewConfigurationError("searchUuid", "searchUuid is required")
	}
	searchUUID, err := uuid.Parse(rawUUID)
	if err != nil {
		return nil, qerr.NewConfigurationError("searchUuid", "invalid UUID: %v", err)
	}

	ctx := p.Context
	record, err := r.searchByUUID(ctx, searchUUID.String())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	searchID, _ := int64Arg(record, "search_id")

	clear := sq.Delete(entitymeta.TableSearchDescriptors).
		Where(sq.Eq{"search_id": searchID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, clear); err != nil {
		return nil, err
	}
	del := sq.Delete("searches").
		Where(sq.Eq{"search_id": searchID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, del); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Resolver) searchByUUID(ctx context.Context, searchUUID string) (map[string]any, error) {
	entity, err := r.Registry.Describe(entitymeta.EntitySearch)
	if err != nil {
		return nil, err
	}
	b := sq.Select(qualifyAll(entity.Table, entity.ScalarColumns)...).
		From(entity.Table).
		Where(sq.Eq{"searches.search_uuid": searchUUID}).
		Limit(1).
		PlaceholderFormat(sq.Question)

	records, err := r.runSelect(ctx, b, entity.ScalarColumns)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (r *Resolver) exec(ctx context.Context, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("compose statement: %w", err)
	}
	if _, err := r.Exec.ExecContext(ctx, query, args...); err != nil {
		return qerr.WrapExecution("exec", err)
	}
	return nil
}

func normalizeGender(raw interface{}) interface{} {
	if s, ok := raw.(string); ok {
		return []string{s}
	}
	return raw
}

func qualifyAll(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = sqlutil.Qualify(table, c)
	}
	return out
}
