package resolver

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/planner"
)

// batchChunkSize caps the IN-list length of relation batch queries so a
// large parent page cannot produce an unbounded placeholder list.
const batchChunkSize = 500

// loadRelations resolves every relation the plan requested, batched per
// relation: one query per chunk of distinct parent keys instead of one
// query per parent row.
func (r *Resolver) loadRelations(ctx context.Context, plan *planner.ProjectionPlan, parents []map[string]any) error {
	if len(parents) == 0 {
		return nil
	}
	for _, rp := range plan.Relations {
		if err := r.loadRelation(ctx, rp, parents); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) loadRelation(ctx context.Context, rp planner.RelationPlan, parents []map[string]any) error {
	rel := rp.Relation
	values := uniqueValues(parents, rel.LocalColumn)

	var children []map[string]any
	grouped := make(map[string][]map[string]any)

	for _, chunk := range chunkValues(values, batchChunkSize) {
		var (
			batch []map[string]any
			err   error
		)
		if rel.Kind == entitymeta.ManyToMany {
			batch, err = r.queryJunctionChunk(ctx, rp, chunk, grouped)
		} else {
			batch, err = r.queryDirectChunk(ctx, rp, chunk, grouped)
		}
		if err != nil {
			return err
		}
		children = append(children, batch...)
	}

	attachChildren(parents, rel, grouped)

	return r.loadRelations(ctx, rp.Target, children)
}

// queryDirectChunk loads children joined by a plain foreign key and groups
// them by the remote column value.
func (r *Resolver) queryDirectChunk(ctx context.Context, rp planner.RelationPlan, chunk []any, grouped map[string][]map[string]any) ([]map[string]any, error) {
	target := rp.Target.Entity
	b := sq.Select(rp.Target.QualifiedColumns()...).
		From(target.Table).
		Where(sq.Eq{target.Table + "." + rp.Relation.RemoteColumn: chunk}).
		PlaceholderFormat(sq.Question)

	records, err := r.runSelect(ctx, b, rp.Target.Columns)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		key := groupKey(rec[rp.Relation.RemoteColumn])
		grouped[key] = append(grouped[key], rec)
	}
	return records, nil
}

// queryJunctionChunk loads many-to-many children through the junction
// table, carrying the junction's parent key alongside the target columns.
func (r *Resolver) queryJunctionChunk(ctx context.Context, rp planner.RelationPlan, chunk []any, grouped map[string][]map[string]any) ([]map[string]any, error) {
	rel := rp.Relation
	target := rp.Target.Entity

	const parentKeyAlias = "__parent_key"
	columns := append(
		[]string{rel.JunctionTable + "." + rel.JunctionLocalColumn + " AS " + parentKeyAlias},
		rp.Target.QualifiedColumns()...,
	)
	scanColumns := append([]string{parentKeyAlias}, rp.Target.Columns...)

	b := sq.Select(columns...).
		From(target.Table).
		Join(rel.JunctionTable + " ON " +
			rel.JunctionTable + "." + rel.JunctionRemoteColumn + " = " +
			target.Table + "." + rel.RemoteColumn).
		Where(sq.Eq{rel.JunctionTable + "." + rel.JunctionLocalColumn: chunk}).
		PlaceholderFormat(sq.Question)

	records, err := r.runSelect(ctx, b, scanColumns)
	if err != nil {
		return nil, err
	}
	children := make([]map[string]any, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		key := groupKey(rec[parentKeyAlias])
		delete(rec, parentKeyAlias)
		// A junction carrying extra payload columns can reference the same
		// child several times per parent (one row per qualifier, say); the
		// child attaches once.
		pair := key + "\x00" + groupKey(rec[target.IdentityColumn])
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		grouped[key] = append(grouped[key], rec)
		children = append(children, rec)
	}
	return children, nil
}

// attachChildren writes each parent's children under the relation name:
// single-valued relations get one record or nil, list relations always get
// a slice, empty when nothing matched.
func attachChildren(parents []map[string]any, rel *entitymeta.Relation, grouped map[string][]map[string]any) {
	single := rel.Kind == entitymeta.OneToOne || rel.Kind == entitymeta.ManyToOne
	for _, parent := range parents {
		matches := grouped[groupKey(parent[rel.LocalColumn])]
		if single {
			if len(matches) > 0 {
				parent[rel.Name] = matches[0]
			} else {
				parent[rel.Name] = nil
			}
			continue
		}
		if matches == nil {
			matches = []map[string]any{}
		}
		parent[rel.Name] = matches
	}
}

func uniqueValues(records []map[string]any, column string) []any {
	seen := make(map[string]struct{}, len(records))
	out := make([]any, 0, len(records))
	for _, rec := range records {
		v, ok := rec[column]
		if !ok || v == nil {
			continue
		}
		key := groupKey(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func chunkValues(values []any, max int) [][]any {
	if len(values) == 0 {
		return nil
	}
	var chunks [][]any
	for start := 0; start < len(values); start += max {
		end := start + max
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

func groupKey(v any) string {
	return fmt.Sprint(v)
}
