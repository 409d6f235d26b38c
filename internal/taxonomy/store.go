package taxonomy

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"biomed-graphql/internal/dbexec"
	"biomed-graphql/internal/qerr"
)

// SQLStore reads tree numbers from the descriptor_tree_numbers /
// tree_numbers tables. The LIKE 'prefix%' push-down keeps the scan on the
// server; the engine applies the segment-boundary check afterwards, so a
// plain string LIKE is sufficient here.
type SQLStore struct {
	exec dbexec.QueryExecutor
}

// NewSQLStore builds a store over the given executor.
func NewSQLStore(exec dbexec.QueryExecutor) *SQLStore {
	return &SQLStore{exec: exec}
}

func (s *SQLStore) PathsOf(ctx context.Context, descriptorIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(descriptorIDs))
	if len(descriptorIDs) == 0 {
		return out, nil
	}

	query, args, err := sq.Select("descriptor_tree_numbers.descriptor_id", "tree_numbers.tree_number").
		From("descriptor_tree_numbers").
		Join("tree_numbers ON tree_numbers.tree_number_id = descriptor_tree_numbers.tree_number_id").
		Where(sq.Eq{"descriptor_tree_numbers.descriptor_id": descriptorIDs}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, qerr.WrapExecution("taxonomy paths", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, qerr.WrapExecution("taxonomy paths scan", err)
		}
		out[id] = append(out[id], path)
	}
	if err := rows.Err(); err != nil {
		return nil, qerr.WrapExecution("taxonomy paths rows", err)
	}
	return out, nil
}

func (s *SQLStore) NodesWithPrefix(ctx context.Context, prefix string) ([]Node, error) {
	query, args, err := sq.Select("descriptor_tree_numbers.descriptor_id", "tree_numbers.tree_number").
		From("tree_numbers").
		Join("descriptor_tree_numbers ON descriptor_tree_numbers.tree_number_id = tree_numbers.tree_number_id").
		Where(sq.Expr("tree_numbers.tree_number LIKE ?", escapeLike(prefix)+"%")).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, qerr.WrapExecution("taxonomy prefix scan", err)
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		var node Node
		if err := rows.Scan(&node.DescriptorID, &node.Path); err != nil {
			return nil, qerr.WrapExecution("taxonomy prefix scan", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, qerr.WrapExecution("taxonomy prefix rows", err)
	}
	return nodes, nil
}

// escapeLike neutralizes LIKE metacharacters in a tree-number prefix.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
