package taxonomy

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biomed-graphql/internal/dbexec"
)

func TestSQLStorePathsOf(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT descriptor_tree_numbers.descriptor_id, tree_numbers.tree_number "+
			"FROM descriptor_tree_numbers "+
			"JOIN tree_numbers ON tree_numbers.tree_number_id = descriptor_tree_numbers.tree_number_id "+
			"WHERE descriptor_tree_numbers.descriptor_id IN (?,?)")).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"descriptor_id", "tree_number"}).
			AddRow(1, "C01").
			AddRow(3, "C01.069").
			AddRow(3, "B02"))

	store := NewSQLStore(dbexec.NewStandardExecutor(db))
	paths, err := store.PathsOf(context.Background(), []int64{1, 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"C01"}, paths[1])
	assert.Equal(t, []string{"C01.069", "B02"}, paths[3])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStorePathsOfEmpty(t *testing.T) {
	store := NewSQLStore(nil)
	paths, err := store.PathsOf(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSQLStoreNodesWithPrefix(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT descriptor_tree_numbers.descriptor_id, tree_numbers.tree_number "+
			"FROM tree_numbers "+
			"JOIN descriptor_tree_numbers ON descriptor_tree_numbers.tree_number_id = tree_numbers.tree_number_id "+
			"WHERE tree_numbers.tree_number LIKE ?")).
		WithArgs("C01%").
		WillReturnRows(sqlmock.NewRows([]string{"descriptor_id", "tree_number"}).
			AddRow(2, "C01.069").
			AddRow(5, "C010"))

	store := NewSQLStore(dbexec.NewStandardExecutor(db))
	nodes, err := store.NodesWithPrefix(context.Background(), "C01")
	require.NoError(t, err)

	// The push-down over-approximates; boundary filtering is the engine's job.
	assert.Equal(t, []Node{{2, "C01.069"}, {5, "C010"}}, nodes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `C01`, escapeLike("C01"))
	assert.Equal(t, `C\_01\%`, escapeLike("C_01%"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}
