package server

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/storage"
	"github.com/matst80/slask-table/pkg/tracking"
	"github.com/matst80/slask-table/pkg/types"
)

// ItemSaver persists the dataset after it changed.
type ItemSaver interface {
	SaveItems(items []demo.Item) error
}

type Options struct {
	Columns         []types.Column[demo.Item]
	SelectionMode   types.SelectionMode
	SelectionMethod types.SelectionMethod
	Items           []demo.Item
	// Selections and Saver are optional.
	Selections storage.SelectionStore
	Saver      ItemSaver
	Tracking   tracking.Tracking
}

// WebServer serves one table per session over a shared dataset.
type WebServer struct {
	mu              sync.RWMutex
	datasetMu       sync.Mutex
	items           []demo.Item
	sessions        map[string]*session
	columns         []types.Column[demo.Item]
	selectionMode   types.SelectionMode
	selectionMethod types.SelectionMethod
	selections      storage.SelectionStore
	saver           ItemSaver
	tracking        tracking.Tracking
	storeTimeout    time.Duration
	now             func() time.Time
}

func NewWebServer(opts Options) (*WebServer, error) {
	if _, err := types.NewColumnSet(opts.Columns...); err != nil {
		return nil, err
	}
	if err := checkUniqueIds(opts.Items); err != nil {
		return nil, err
	}
	trk := opts.Tracking
	if trk == nil {
		trk = tracking.LogTracking{}
	}
	ws := &WebServer{
		items:           slices.Clone(opts.Items),
		sessions:        make(map[string]*session),
		columns:         opts.Columns,
		selectionMode:   opts.SelectionMode,
		selectionMethod: opts.SelectionMethod,
		selections:      opts.Selections,
		saver:           opts.Saver,
		tracking:        trk,
		storeTimeout:    2 * time.Second,
		now:             time.Now,
	}
	totalItems.Set(float64(len(ws.items)))
	return ws, nil
}

func checkUniqueIds(items []demo.Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.Id]; ok {
			return fmt.Errorf("duplicate item id %s", item.Id)
		}
		seen[item.Id] = struct{}{}
	}
	return nil
}

func (ws *WebServer) Items() []demo.Item {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return slices.Clone(ws.items)
}

func (ws *WebServer) SessionCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.sessions)
}

func (ws *WebServer) rowsByIdLocked(ids []string) []demo.Item {
	if len(ids) == 0 {
		return nil
	}
	ret := make([]demo.Item, 0, len(ids))
	for _, id := range ids {
		idx := slices.IndexFunc(ws.items, func(item demo.Item) bool { return item.Id == id })
		if idx >= 0 {
			ret = append(ret, ws.items[idx])
		}
	}
	return ret
}

// SetItems replaces the dataset of every session. Selections of removed rows
// are dropped by each table.
func (ws *WebServer) SetItems(items []demo.Item) error {
	if err := checkUniqueIds(items); err != nil {
		return err
	}
	ws.datasetMu.Lock()
	defer ws.datasetMu.Unlock()
	ws.replaceItems(slices.Clone(items))
	return nil
}

// DeleteItem removes the row with id from the dataset.
func (ws *WebServer) DeleteItem(id string) bool {
	ws.datasetMu.Lock()
	defer ws.datasetMu.Unlock()
	current := ws.Items()
	next := slices.DeleteFunc(current, func(item demo.Item) bool { return item.Id == id })
	if len(next) == ws.itemCount() {
		return false
	}
	ws.replaceItems(next)
	return true
}

func (ws *WebServer) itemCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.items)
}

func (ws *WebServer) replaceItems(items []demo.Item) {
	ws.mu.Lock()
	ws.items = items
	tables := make([]*ItemTable, 0, len(ws.sessions))
	for _, s := range ws.sessions {
		tables = append(tables, s.table)
	}
	ws.mu.Unlock()

	for _, tbl := range tables {
		tbl.SetRows(items)
	}
	totalItems.Set(float64(len(items)))
	if ws.saver != nil {
		if err := ws.saver.SaveItems(items); err != nil {
			log.Printf("Failed to save items: %v", err)
		}
	}
}
