package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todosql/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.sqlite")
	s, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openInit(t *testing.T) *Store {
	t.Helper()
	s := openTemp(t)
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.sqlite")
	s, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, path, s.Path())
}

func TestOpenBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "db.sqlite")
	_, err := Open(context.Background(), path, nil)
	require.Error(t, err)

	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, path, oe.Path)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "", nil)
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
}

func TestInitIdempotent(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "keep me")
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))

	todos, err := Collect(s.All(ctx))
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "keep me", todos[0].Text)
}

func TestAddThenListAll(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()

	for _, text := range []string{"buy milk", "", "walk the dog"} {
		before, err := Collect(s.All(ctx))
		require.NoError(t, err)

		id, err := s.Add(ctx, text)
		require.NoError(t, err)

		after, err := Collect(s.All(ctx))
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)

		got := after[len(after)-1]
		assert.Equal(t, model.Todo{ID: id, Text: text, Checked: false}, got)
		for _, old := range before {
			assert.NotEqual(t, old.ID, id, "id %d reused", id)
		}
	}
}

func TestListOrderedByID(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, text)
		require.NoError(t, err)
	}

	todos, err := Collect(s.All(ctx))
	require.NoError(t, err)
	require.Len(t, todos, 3)
	for i := 1; i < len(todos); i++ {
		assert.Less(t, todos[i-1].ID, todos[i].ID)
	}
}

func TestCheckHidesFromUnchecked(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()

	milk, err := s.Add(ctx, "buy milk")
	require.NoError(t, err)
	bread, err := s.Add(ctx, "buy bread")
	require.NoError(t, err)

	require.NoError(t, s.Check(ctx, milk))

	all, err := Collect(s.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{
		{ID: milk, Text: "buy milk", Checked: true},
		{ID: bread, Text: "buy bread", Checked: false},
	}, all)

	pending, err := Collect(s.Unchecked(ctx))
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{{ID: bread, Text: "buy bread"}}, pending)
}

func TestCheckTwiceStaysChecked(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "once")
	require.NoError(t, err)
	require.NoError(t, s.Check(ctx, id))
	require.NoError(t, s.Check(ctx, id))

	all, err := Collect(s.All(ctx))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Checked)
}

func TestCheckMissingIDIsNoop(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "only one")
	require.NoError(t, err)
	before, err := Collect(s.All(ctx))
	require.NoError(t, err)

	require.NoError(t, s.Check(ctx, 999))

	after, err := Collect(s.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUninitializedStoreErrors(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	var we *WriteError
	_, err := s.Add(ctx, "nope")
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "add todo", we.Op)

	err = s.Check(ctx, 1)
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "check todo", we.Op)

	var re *ReadError
	_, err = Collect(s.All(ctx))
	require.ErrorAs(t, err, &re)
	_, err = Collect(s.Unchecked(ctx))
	require.ErrorAs(t, err, &re)
}

func TestSequenceStopsEarly(t *testing.T) {
	s := openInit(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, text)
		require.NoError(t, err)
	}

	var seen []string
	for todo, err := range s.All(ctx) {
		require.NoError(t, err)
		seen = append(seen, todo.Text)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)

	// the connection was released; the store is still usable
	_, err := s.Add(ctx, "d")
	require.NoError(t, err)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.sqlite")
	ctx := context.Background()

	s, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))
	id, err := s.Add(ctx, "survive restart")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, nil)
	require.NoError(t, err)
	defer s.Close()
	todos, err := Collect(s.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{{ID: id, Text: "survive restart"}}, todos)
}
