package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	Id    string `json:"id"`
	Price int    `json:"price"`
}

func TestMemorySelectionStore(t *testing.T) {
	ctx := context.Background()
	var store SelectionStore = NewMemorySelectionStore()

	ids, err := store.Load(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, ids)

	input := []string{"a", "b"}
	assert.NoError(t, store.Save(ctx, "s1", input))
	input[0] = "changed"

	ids, err = store.Load(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	assert.NoError(t, store.Save(ctx, "s1", nil))
	ids, _ = store.Load(ctx, "s1")
	assert.Empty(t, ids)
	assert.Equal(t, 0, store.(*MemorySelectionStore).Len())
}

func TestSelectionKey(t *testing.T) {
	assert.Equal(t, "table:selection:abc", selectionKey("table", "abc"))
}

func TestDiskStorageJson(t *testing.T) {
	disk := NewDiskStorage(t.TempDir())
	rows := []row{{"a", 10}, {"b", 5}}

	assert.NoError(t, disk.SaveJson(rows, "items.json"))
	var got []row
	assert.NoError(t, disk.LoadJson(&got, "items.json"))
	assert.Equal(t, rows, got)

	assert.ErrorIs(t, disk.LoadJson(&got, "missing.json"), ErrNoData)
}

func TestDiskStorageGzippedJson(t *testing.T) {
	disk := NewDiskStorage(t.TempDir() + "/nested")
	rows := []row{{"a", 10}}

	assert.NoError(t, disk.SaveGzippedJson(rows, "items.json.gz"))
	var got []row
	assert.NoError(t, disk.LoadGzippedJson(&got, "items.json.gz"))
	assert.Equal(t, rows, got)

	assert.ErrorIs(t, disk.LoadGzippedJson(&got, "missing.json.gz"), ErrNoData)
}
