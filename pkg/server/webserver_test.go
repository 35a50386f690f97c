package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/common/jsoncompat"
	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/selection"
	"github.com/matst80/slask-table/pkg/storage"
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/stretchr/testify/assert"
)

type recordingTracking struct {
	mu         sync.Mutex
	sessions   []string
	sorting    []types.SortingPlan
	selections [][]string
	opened     []string
}

func (r *recordingTracking) TrackSession(sessionId string, _ *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, sessionId)
}

func (r *recordingTracking) TrackSorting(_ string, plan types.SortingPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sorting = append(r.sorting, plan)
}

func (r *recordingTracking) TrackSelection(_ string, selected []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections = append(r.selections, selected)
}

func (r *recordingTracking) TrackDoubleClick(_ string, rowId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, rowId)
}

func (r *recordingTracking) Close() error { return nil }

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, method types.SelectionMethod, selections storage.SelectionStore) (*WebServer, *recordingTracking) {
	t.Helper()
	trk := &recordingTracking{}
	ws, err := NewWebServer(Options{
		Columns:         demo.Columns(),
		SelectionMode:   types.SelectionMulti,
		SelectionMethod: method,
		Items:           demo.Catalog(),
		Selections:      selections,
		Tracking:        trk,
	})
	if err != nil {
		t.Fatalf("NewWebServer() error = %v", err)
	}
	return ws, trk
}

func (c *testClient) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == common.SessionCookieName {
			c.cookie = ck
		}
	}
	return w
}

func decode[V any](t *testing.T, w *httptest.ResponseRecorder) V {
	t.Helper()
	var v V
	if err := jsoncompat.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func rowIds(rows RowsResponse) []string {
	ret := make([]string, len(rows.Rows))
	for i, r := range rows.Rows {
		ret[i] = r.Id
	}
	return ret
}

func TestSortCyclesThroughDirections(t *testing.T) {
	ws, trk := newTestServer(t, types.SelectByClick, nil)
	c := &testClient{t: t, handler: ws.Handler()}

	w := c.do(http.MethodPost, "/api/sort?column=price", "")
	assert.Equal(t, http.StatusOK, w.Code)
	state := decode[table.TableState](t, w)
	assert.Equal(t, types.SortingPlan{{ColumnId: "price", Direction: types.SortAsc}}, state.SortingPlan)

	rows := decode[RowsResponse](t, c.do(http.MethodGet, "/api/rows", ""))
	assert.Equal(t, []string{"1003", "1004", "1005", "1006", "1002", "1001"}, rowIds(rows))
	assert.Equal(t, "price", rows.Rows[0].Cells[2].Column)
	assert.Equal(t, "299.00", rows.Rows[0].Cells[2].Value)
	assert.Equal(t, types.SortAsc, rows.Rows[0].Cells[2].SortDirection)
	assert.Equal(t, types.SortDisabled, rows.Rows[0].Cells[4].SortDirection)

	c.do(http.MethodPost, "/api/sort?column=price", "")
	rows = decode[RowsResponse](t, c.do(http.MethodGet, "/api/rows", ""))
	assert.Equal(t, "1001", rows.Rows[0].Id)

	c.do(http.MethodPost, "/api/sort?column=price", "")
	rows = decode[RowsResponse](t, c.do(http.MethodGet, "/api/rows", ""))
	assert.Equal(t, []string{"1001", "1002", "1003", "1004", "1005", "1006"}, rowIds(rows))

	assert.Len(t, trk.sorting, 3)
	assert.Len(t, trk.sessions, 1)
}

func TestSortErrors(t *testing.T) {
	ws, trk := newTestServer(t, types.SelectByClick, nil)
	c := &testClient{t: t, handler: ws.Handler()}

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/sort", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/sort?column=missing", "").Code)
	// id is hidden and has no header to activate
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/sort?column=id", "").Code)

	w := c.do(http.MethodPost, "/api/sort?column=sku", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[table.TableState](t, w).SortingPlan)
	assert.Empty(t, trk.sorting)
}

func TestHeaders(t *testing.T) {
	ws, _ := newTestServer(t, types.SelectByCheckbox, nil)
	c := &testClient{t: t, handler: ws.Handler()}
	c.do(http.MethodPost, "/api/sort?column=title", "")

	headers := decode[HeadersResponse](t, c.do(http.MethodGet, "/api/headers", ""))
	assert.True(t, headers.HeaderCheckbox)
	assert.False(t, headers.AllChecked)
	if !assert.Len(t, headers.Columns, 6) {
		return
	}
	assert.Equal(t, selection.CheckboxColumnId, headers.Columns[0].Id)
	assert.False(t, headers.Columns[0].Sortable)
	assert.Equal(t, "", headers.Columns[0].Icon)
	assert.Equal(t, "title", headers.Columns[1].Id)
	assert.Equal(t, types.SortAsc, headers.Columns[1].Sorting.Direction)
	assert.Equal(t, "▲", headers.Columns[1].Icon)
	assert.Equal(t, types.NoSorting, headers.Columns[2].Sorting)
	assert.Equal(t, "⇅", headers.Columns[2].Icon)
}

func TestSelectionIsStoredAndSeedsNewTables(t *testing.T) {
	store := storage.NewMemorySelectionStore()
	ws, trk := newTestServer(t, types.SelectByCheckbox, store)
	c := &testClient{t: t, handler: ws.Handler()}

	click := decode[SelectionResponse](t, c.do(http.MethodPost, "/api/click?id=1001", ""))
	assert.False(t, click.Handled)
	assert.Empty(t, click.Selected)

	check := decode[SelectionResponse](t, c.do(http.MethodPost, "/api/check?id=1003", ""))
	assert.True(t, check.Handled)
	assert.Equal(t, []string{"1003"}, check.Selected)

	all := decode[SelectionResponse](t, c.do(http.MethodPost, "/api/check-all?checked=true", ""))
	assert.Len(t, all.Selected, 6)
	all = decode[SelectionResponse](t, c.do(http.MethodPost, "/api/check-all?checked=false", ""))
	assert.Empty(t, all.Selected)
	c.do(http.MethodPost, "/api/check?id=1005", "")

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/check?id=nope", "").Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/check", "").Code)

	sessionId := c.cookie.Value
	ids, err := store.Load(context.Background(), sessionId)
	assert.NoError(t, err)
	assert.Equal(t, []string{"1005"}, ids)
	assert.Len(t, trk.selections, 4)

	ws.PruneSessions(0)
	assert.Equal(t, 0, ws.SessionCount())
	sel := decode[SelectionResponse](t, c.do(http.MethodGet, "/api/selection", ""))
	assert.Equal(t, []string{"1005"}, sel.Selected)
}

func TestDoubleClick(t *testing.T) {
	ws, trk := newTestServer(t, types.SelectByClick, nil)
	c := &testClient{t: t, handler: ws.Handler()}

	w := c.do(http.MethodPost, "/api/dblclick?id=1002", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "burr grinder", decode[demo.Item](t, w).Title)
	assert.Equal(t, []string{"1002"}, trk.opened)

	sel := decode[SelectionResponse](t, c.do(http.MethodGet, "/api/selection", ""))
	assert.Empty(t, sel.Selected)
}

func TestItemsUpdateSyncsSessions(t *testing.T) {
	ws, _ := newTestServer(t, types.SelectByClick, nil)
	c := &testClient{t: t, handler: ws.Handler()}

	c.do(http.MethodPost, "/api/click?id=1001", "")
	c.do(http.MethodPost, "/api/click?id=1002", "")

	w := c.do(http.MethodPut, "/api/items", `[{"id":"1002","title":"Grinder","price":100,"stock":1},{"id":"2000","title":"New","price":5,"stock":2}]`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	rows := decode[RowsResponse](t, c.do(http.MethodGet, "/api/rows", ""))
	assert.Equal(t, []string{"1002", "2000"}, rowIds(rows))
	assert.True(t, rows.Rows[0].Selected)
	assert.Equal(t, "Grinder", rows.Rows[0].Cells[0].Value)

	sel := decode[SelectionResponse](t, c.do(http.MethodGet, "/api/selection", ""))
	assert.Equal(t, []string{"1002"}, sel.Selected)

	assert.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/items?id=1002", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/api/items?id=1002", "").Code)
	sel = decode[SelectionResponse](t, c.do(http.MethodGet, "/api/selection", ""))
	assert.Empty(t, sel.Selected)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/items", `[{"id":"a"},{"id":"a"}]`).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/items", `{`).Code)
}

func TestPruneSessions(t *testing.T) {
	ws, _ := newTestServer(t, types.SelectByClick, nil)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return now }

	_, err := ws.getSession(context.Background(), "a")
	assert.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = ws.getSession(context.Background(), "b")
	assert.NoError(t, err)

	assert.Equal(t, 1, ws.PruneSessions(30*time.Second))
	assert.Equal(t, 1, ws.SessionCount())
}

func TestDiskItemSaver(t *testing.T) {
	saver := DiskItemSaver{Disk: storage.NewDiskStorage(t.TempDir())}
	_, err := saver.LoadItems()
	assert.ErrorIs(t, err, storage.ErrNoData)

	ws, err := NewWebServer(Options{Columns: demo.Columns(), Items: demo.Catalog(), Saver: saver})
	assert.NoError(t, err)
	assert.True(t, ws.DeleteItem("1001"))

	items, err := saver.LoadItems()
	assert.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestSelectionSaveUsesEventSnapshot(t *testing.T) {
	store := storage.NewMemorySelectionStore()
	ws, trk := newTestServer(t, types.SelectByClick, store)
	c := &testClient{t: t, handler: ws.Handler()}
	c.do(http.MethodPost, "/api/click?id=1001", "")
	sessionId := c.cookie.Value

	// the saved ids come from the event, not from the table state
	items := ws.Items()
	ws.onChange(sessionId, table.Change[demo.Item]{Kind: table.SelectionChanged, Selection: items[1:3]})

	want := []string{items[1].Id, items[2].Id}
	ids, err := store.Load(context.Background(), sessionId)
	assert.NoError(t, err)
	assert.Equal(t, want, ids)
	trk.mu.Lock()
	defer trk.mu.Unlock()
	assert.Equal(t, want, trk.selections[len(trk.selections)-1])
}
