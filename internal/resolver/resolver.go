// Package resolver implements the GraphQL resolvers: it runs the planner,
// expands taxonomy closures, executes the composed SQL through the
// executor, and maps rows back into nested records for the schema layer.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/dbexec"
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/logging"
	"biomed-graphql/internal/planner"
	"biomed-graphql/internal/qerr"
	"biomed-graphql/internal/taxonomy"
)

// Resolver carries the shared dependencies of every field resolver.
type Resolver struct {
	Registry *entitymeta.Registry
	Exec     dbexec.QueryExecutor
	Taxonomy *taxonomy.Engine
	Logger   *slog.Logger
}

// New builds a resolver over the given executor.
func New(reg *entitymeta.Registry, exec dbexec.QueryExecutor, engine *taxonomy.Engine, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{Registry: reg, Exec: exec, Taxonomy: engine, Logger: logger}
}

// projectionFor turns the resolved GraphQL selection into a projection
// plan for the named entity.
func (r *Resolver) projectionFor(p graphql.ResolveParams, entityName string) (*planner.ProjectionPlan, error) {
	entity, err := r.Registry.Describe(entityName)
	if err != nil {
		return nil, err
	}
	var req *planner.FieldRequest
	if len(p.Info.FieldASTs) > 0 {
		req = planner.FieldRequestFromSelection(r.Registry, entity, p.Info.FieldASTs[0], p.Info.Fragments)
	}
	return planner.Project(r.Registry, entityName, req)
}

// runSelect executes a composed SELECT and scans the rows into maps keyed
// by the given column names.
func (r *Resolver) runSelect(ctx context.Context, b sq.SelectBuilder, columns []string) ([]map[string]any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("compose query: %w", err)
	}
	logging.FromContext(ctx).Debug("executing query",
		slog.String("sql", query), slog.Int("args", len(args)))

	rows, err := r.Exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, qerr.WrapExecution("query", err)
	}
	records, err := dbexec.ScanToMaps(rows, columns)
	if err != nil {
		return nil, qerr.WrapExecution("scan", err)
	}
	return records, nil
}

// runCount executes a single-value COUNT query.
func (r *Resolver) runCount(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("compose count: %w", err)
	}
	rows, err := r.Exec.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, qerr.WrapExecution("count", err)
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, qerr.WrapExecution("count scan", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, qerr.WrapExecution("count rows", err)
	}
	return count, nil
}

// fetch runs the plan's SELECT and loads every nested relation the plan
// asked for, attaching child records under the relation name.
func (r *Resolver) fetch(ctx context.Context, plan *planner.ProjectionPlan, b sq.SelectBuilder) ([]map[string]any, error) {
	records, err := r.runSelect(ctx, b, plan.Columns)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, plan, records); err != nil {
		return nil, err
	}
	return records, nil
}

// descriptorGroups expands each root descriptor into its closure: one
// filter group per root, so a match must hold for every root (through any
// closure member).
func (r *Resolver) descriptorGroups(ctx context.Context, rootIDs []int64) ([][]int64, error) {
	if len(rootIDs) == 0 {
		return nil, nil
	}
	closures, err := r.Taxonomy.Expand(ctx, rootIDs)
	if err != nil {
		return nil, err
	}
	groups := make([][]int64, 0, len(rootIDs))
	for _, root := range rootIDs {
		groups = append(groups, closures[root])
	}
	return groups, nil
}
