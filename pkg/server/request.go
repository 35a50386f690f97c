package server

import (
	"net/http"

	"github.com/gorilla/schema"
)

type SortRequest struct {
	Column string `schema:"column,required"`
}

type RowRequest struct {
	Id string `schema:"id,required"`
}

type CheckAllRequest struct {
	Checked bool `schema:"checked"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeRequest fills dst from the query string and any form body.
func decodeRequest(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.Form)
}
