package resolver

import (
	"context"
	"database/sql"
	"errors"

	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/dbexec"
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/taxonomy"
)

// fakeRows implements dbexec.Rows over in-memory data.
type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.data) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *any:
			*d = row[i]
		case *int64:
			v, ok := row[i].(int64)
			if !ok {
				return errors.New("not an int64")
			}
			*d = v
		case *string:
			v, ok := row[i].(string)
			if !ok {
				return errors.New("not a string")
			}
			*d = v
		default:
			return errors.New("unsupported scan destination")
		}
	}
	return nil
}

func (f *fakeRows) Err() error   { return f.err }
func (f *fakeRows) Close() error { return nil }

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

// fakeExecutor queues one result set per expected query and records what
// was executed.
type fakeExecutor struct {
	queries []string
	args    [][]any
	results []*fakeRows
	execs   []string
	err     error
}

func (f *fakeExecutor) QueryContext(ctx context.Context, query string, args ...any) (dbexec.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if len(f.results) == 0 {
		return &fakeRows{}, nil
	}
	rows := f.results[0]
	f.results = f.results[1:]
	return rows, nil
}

func (f *fakeExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.execs = append(f.execs, query)
	f.args = append(f.args, args)
	return fakeResult{}, nil
}

// fakeTreeStore serves taxonomy paths without a database.
type fakeTreeStore struct {
	paths map[int64][]string
	nodes []taxonomy.Node
}

func (f *fakeTreeStore) PathsOf(ctx context.Context, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range ids {
		if p, ok := f.paths[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeTreeStore) NodesWithPrefix(ctx context.Context, prefix string) ([]taxonomy.Node, error) {
	var out []taxonomy.Node
	for _, n := range f.nodes {
		if len(n.Path) >= len(prefix) && n.Path[:len(prefix)] == prefix {
			out = append(out, n)
		}
	}
	return out, nil
}

func newTestResolver(exec *fakeExecutor, store taxonomy.Store) *Resolver {
	if store == nil {
		store = &fakeTreeStore{}
	}
	return New(entitymeta.Biomedical(), exec, taxonomy.NewEngine(store), nil)
}

func resolveParams(args map[string]interface{}) graphql.ResolveParams {
	return graphql.ResolveParams{
		Context: context.Background(),
		Args:    args,
	}
}
