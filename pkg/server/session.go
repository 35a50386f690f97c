package server

import (
	"context"
	"log"
	"time"

	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/selection"
	"github.com/matst80/slask-table/pkg/table"
)

type ItemTable = table.Table[demo.Item, string]

type session struct {
	id          string
	table       *ItemTable
	lastSeen    time.Time
	unsubscribe func()
}

// getSession returns the table of sessionId, creating it from the current
// dataset and the stored selection on first use.
func (ws *WebServer) getSession(ctx context.Context, sessionId string) (*session, error) {
	ws.mu.Lock()
	if s, ok := ws.sessions[sessionId]; ok {
		s.lastSeen = ws.now()
		ws.mu.Unlock()
		return s, nil
	}
	ws.mu.Unlock()

	seed := ws.loadSelection(ctx, sessionId)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if s, ok := ws.sessions[sessionId]; ok {
		s.lastSeen = ws.now()
		return s, nil
	}
	tbl, err := table.New(table.Options[demo.Item, string]{
		Columns:          ws.columns,
		RowId:            demo.ItemId,
		SameRow:          demo.SameItem,
		SelectionMode:    ws.selectionMode,
		SelectionMethod:  ws.selectionMethod,
		InitialSelection: ws.rowsByIdLocked(seed),
		Rows:             ws.items,
	})
	if err != nil {
		return nil, err
	}
	s := &session{id: sessionId, table: tbl, lastSeen: ws.now()}
	s.unsubscribe = tbl.Subscribe(func(c table.Change[demo.Item]) {
		ws.onChange(sessionId, c)
	})
	ws.sessions[sessionId] = s
	activeSessions.Set(float64(len(ws.sessions)))
	return s, nil
}

func (ws *WebServer) loadSelection(ctx context.Context, sessionId string) []string {
	if ws.selections == nil {
		return nil
	}
	ids, err := ws.selections.Load(ctx, sessionId)
	if err != nil {
		log.Printf("Failed to load selection for %s: %v", sessionId, err)
		return nil
	}
	return ids
}

// onChange runs in the order the table changed, so saves never go back in time.
func (ws *WebServer) onChange(sessionId string, c table.Change[demo.Item]) {
	switch c.Kind {
	case table.SortingChanged:
		noSortChanges.Inc()
		ws.tracking.TrackSorting(sessionId, c.State.SortingPlan)
	case table.SelectionChanged:
		noSelectionChanges.Inc()
		ids := selection.Ids(c.Selection, demo.ItemId)
		if ws.selections != nil {
			ctx, cancel := context.WithTimeout(context.Background(), ws.storeTimeout)
			if err := ws.selections.Save(ctx, sessionId, ids); err != nil {
				log.Printf("Failed to save selection for %s: %v", sessionId, err)
			}
			cancel()
		}
		ws.tracking.TrackSelection(sessionId, ids)
	case table.RowDoubleClicked:
		noDoubleClicks.Inc()
		ws.tracking.TrackDoubleClick(sessionId, c.Row.Id)
	}
}

// PruneSessions drops tables not used for maxIdle. Stored selections are kept
// and seed the table again on the next request.
func (ws *WebServer) PruneSessions(maxIdle time.Duration) int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	cutoff := ws.now().Add(-maxIdle)
	pruned := 0
	for id, s := range ws.sessions {
		if s.lastSeen.Before(cutoff) {
			s.unsubscribe()
			delete(ws.sessions, id)
			pruned++
		}
	}
	activeSessions.Set(float64(len(ws.sessions)))
	return pruned
}

// StartPruning runs PruneSessions every interval until ctx is done.
func (ws *WebServer) StartPruning(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := ws.PruneSessions(maxIdle); n > 0 {
					log.Printf("Pruned %d idle sessions", n)
				}
			}
		}
	}()
}
