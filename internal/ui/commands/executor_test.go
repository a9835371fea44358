package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectionview/internal/domain"
	"collectionview/internal/source"
)

const itemsYAML = `
items:
  - id: a
    title: Alpha
  - id: b
    title: Beta
  - id: c
    title: Gamma
`

func writeItems(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(itemsYAML), 0644))
	return path
}

func TestExecutorLoad(t *testing.T) {
	path := writeItems(t)
	e := NewExecutor(context.Background(), nil, []string{path})
	require.True(t, e.HasSources())

	cmd := e.ExecuteLoad(false)
	require.NotNil(t, cmd)

	msg := e.Accept(cmd())
	loaded, ok := msg.(ItemsLoadedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, loaded.Err)
	assert.False(t, loaded.Reload)
	assert.Equal(t, []string{"a", "b", "c"}, domain.IDs(loaded.Items))
	require.NotNil(t, e.Set())
	assert.Equal(t, path, e.Set().Origin("b"))
}

func TestExecutorLoadError(t *testing.T) {
	e := NewExecutor(context.Background(), nil, []string{filepath.Join(t.TempDir(), "missing.toml")})

	msg := e.Accept(e.ExecuteLoad(true)())
	loaded, ok := msg.(ItemsLoadedMsg)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
	assert.True(t, loaded.Reload)
	assert.Nil(t, e.Set())
}

func TestExecutorWithoutSources(t *testing.T) {
	e := NewExecutor(context.Background(), nil, nil)
	assert.False(t, e.HasSources())
	assert.Nil(t, e.ExecuteLoad(false))
	assert.Nil(t, e.ExecuteWatch(0))
	assert.Nil(t, e.ExecuteWait())
	assert.Nil(t, e.ExecuteSaveOrder(nil), "nothing loaded, nothing to save")
}

func TestExecutorSaveOrder(t *testing.T) {
	path := writeItems(t)
	e := NewExecutor(context.Background(), nil, []string{path})
	loaded := e.Accept(e.ExecuteLoad(false)()).(ItemsLoadedMsg)

	items := loaded.Items
	reordered := []domain.Item{items[2], items[0], items[1]}
	msg := e.ExecuteSaveOrder(reordered)()
	saved, ok := msg.(OrderSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, 3, saved.Count)

	got, err := source.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, domain.IDs(got))
}

func TestExecutorWatch(t *testing.T) {
	path := writeItems(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := NewExecutor(ctx, nil, []string{path})
	wait := e.ExecuteWatch(20 * time.Millisecond)
	require.NotNil(t, wait)

	got := make(chan any, 1)
	go func() { got <- wait() }()

	require.NoError(t, os.WriteFile(path, []byte(itemsYAML+"  - id: d\n    title: Delta\n"), 0644))

	select {
	case msg := <-got:
		_, ok := msg.(SourceChangedMsg)
		assert.True(t, ok, "got %T", msg)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestAcceptPassesOtherMessages(t *testing.T) {
	e := NewExecutor(context.Background(), nil, nil)
	msg := OrderSavedMsg{Count: 1}
	assert.Equal(t, msg, e.Accept(msg))
}
