package server

import (
	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/storage"
)

const itemsFile = "items.json.gz"

// DiskItemSaver keeps the dataset as gzipped JSON in a DiskStorage folder.
type DiskItemSaver struct {
	Disk *storage.DiskStorage
}

func (d DiskItemSaver) SaveItems(items []demo.Item) error {
	return d.Disk.SaveGzippedJson(items, itemsFile)
}

// LoadItems returns storage.ErrNoData when nothing has been saved yet.
func (d DiskItemSaver) LoadItems() ([]demo.Item, error) {
	items := []demo.Item{}
	if err := d.Disk.LoadGzippedJson(&items, itemsFile); err != nil {
		return nil, err
	}
	return items, nil
}
