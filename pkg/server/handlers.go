package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/common/jsoncompat"
	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/sorting"
	"github.com/matst80/slask-table/pkg/table"
)

const maxBodySize = 8 << 20

// respondError maps err to a status code, writes it and returns err for logging.
func respondError(w http.ResponseWriter, err error) error {
	code := http.StatusInternalServerError
	if errors.Is(err, table.ErrUnknownRow) || errors.Is(err, table.ErrUnknownColumn) {
		code = http.StatusNotFound
	}
	requestErrors.WithLabelValues(strconv.Itoa(code)).Inc()
	http.Error(w, err.Error(), code)
	return err
}

func badRequest(w http.ResponseWriter, err error) error {
	requestErrors.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
	http.Error(w, err.Error(), http.StatusBadRequest)
	return err
}

func (ws *WebServer) Headers(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	return enc.Encode(headersResponse(s.table, sorting.DefaultIcons))
}

func headersResponse(tbl *ItemTable, icons sorting.Renderer) HeadersResponse {
	headers := tbl.Headers()
	ret := HeadersResponse{
		Columns:        make([]HeaderResponse, len(headers)),
		HeaderCheckbox: tbl.Strategy().HasHeaderCheckbox(),
	}
	if ret.HeaderCheckbox {
		ret.AllChecked = tbl.AllChecked()
	}
	for i, h := range headers {
		ret.Columns[i] = HeaderResponse{
			Id:       h.Column.Id,
			Title:    h.Column.Title,
			MinWidth: h.Column.MinWidth,
			MaxWidth: h.Column.MaxWidth,
			Sortable: h.Column.Sortable(),
			Sorting:  h.Sorting,
			Icon:     icons.Icon(h.Column.SortDirectionDefault, h.Sorting),
		}
	}
	return ret
}

func (ws *WebServer) Rows(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	return enc.Encode(rowsResponse(s.table))
}

func rowsResponse(tbl *ItemTable) RowsResponse {
	views := tbl.RowViews()
	ret := RowsResponse{
		State: tbl.State(),
		Rows:  make([]RowResponse, len(views)),
	}
	for i, v := range views {
		cells := make([]CellResponse, len(v.Cells))
		for c, cell := range v.Cells {
			cells[c] = CellResponse{
				Column:        cell.Column.Id,
				Value:         cell.Column.Value(cell.Data.Row),
				SortDirection: cell.Data.SortDirection,
			}
		}
		ret.Rows[i] = RowResponse{
			Id:       v.Row.Id,
			Index:    v.Index,
			Selected: v.Selected,
			Cells:    cells,
		}
	}
	return ret
}

func (ws *WebServer) Selection(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	return enc.Encode(SelectionResponse{Handled: true, Selected: nonNil(s.table.SelectedIds())})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (ws *WebServer) Sort(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req := SortRequest{}
	if err := decodeRequest(r, &req); err != nil {
		return badRequest(w, err)
	}
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	if err := s.table.ToggleSort(req.Column); err != nil {
		return respondError(w, err)
	}
	return enc.Encode(s.table.State())
}

// rowAction decodes a RowRequest and applies fn to the session table.
func (ws *WebServer) rowAction(fn func(tbl *ItemTable, id string) (bool, error)) common.SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		req := RowRequest{}
		if err := decodeRequest(r, &req); err != nil {
			return badRequest(w, err)
		}
		s, err := ws.getSession(r.Context(), sessionId)
		if err != nil {
			return respondError(w, err)
		}
		handled, err := fn(s.table, req.Id)
		if err != nil {
			return respondError(w, err)
		}
		return enc.Encode(SelectionResponse{Handled: handled, Selected: nonNil(s.table.SelectedIds())})
	}
}

func (ws *WebServer) Click() common.SessionHandlerFunc {
	return ws.rowAction((*ItemTable).ClickRow)
}

func (ws *WebServer) Check() common.SessionHandlerFunc {
	return ws.rowAction((*ItemTable).ToggleCheckbox)
}

func (ws *WebServer) DoubleClick(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req := RowRequest{}
	if err := decodeRequest(r, &req); err != nil {
		return badRequest(w, err)
	}
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	item, err := s.table.DoubleClickRow(req.Id)
	if err != nil {
		return respondError(w, err)
	}
	return enc.Encode(item)
}

func (ws *WebServer) CheckAll(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req := CheckAllRequest{}
	if err := decodeRequest(r, &req); err != nil {
		return badRequest(w, err)
	}
	s, err := ws.getSession(r.Context(), sessionId)
	if err != nil {
		return respondError(w, err)
	}
	handled := s.table.ToggleAll(req.Checked)
	return enc.Encode(SelectionResponse{Handled: handled, Selected: nonNil(s.table.SelectedIds())})
}

func (ws *WebServer) PutItems(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return badRequest(w, err)
	}
	items, err := demo.DecodeItems(data)
	if err != nil {
		return badRequest(w, err)
	}
	if err := ws.SetItems(items); err != nil {
		return badRequest(w, err)
	}
	w.WriteHeader(http.StatusAccepted)
	return enc.Encode(map[string]int{"items": len(items)})
}

func (ws *WebServer) DeleteItems(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req := RowRequest{}
	if err := decodeRequest(r, &req); err != nil {
		return badRequest(w, err)
	}
	if !ws.DeleteItem(req.Id) {
		return respondError(w, table.ErrUnknownRow)
	}
	return enc.Encode(map[string]int{"items": ws.itemCount()})
}

func (ws *WebServer) onNewSession(sessionId string, r *http.Request) {
	ws.tracking.TrackSession(sessionId, r)
}

func (ws *WebServer) Handler() *http.ServeMux {
	srv := http.NewServeMux()
	handle := func(pattern string, fn common.SessionHandlerFunc) {
		srv.HandleFunc(pattern, common.JsonHandler(ws.onNewSession, fn))
	}
	handle("GET /api/headers", ws.Headers)
	handle("GET /api/rows", ws.Rows)
	handle("GET /api/selection", ws.Selection)
	handle("POST /api/sort", ws.Sort)
	handle("POST /api/click", ws.Click())
	handle("POST /api/check", ws.Check())
	handle("POST /api/dblclick", ws.DoubleClick)
	handle("POST /api/check-all", ws.CheckAll)
	handle("PUT /api/items", ws.PutItems)
	handle("DELETE /api/items", ws.DeleteItems)
	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return srv
}
