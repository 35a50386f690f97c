package common

import (
	"log"
	"net/http"

	"github.com/matst80/slask-table/pkg/common/jsoncompat"
)

// SessionHandlerFunc is a handler that already knows its session.
type SessionHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

// JsonHandler answers preflight requests, resolves the session cookie and
// sets the JSON content type before calling fn. onNew is called for sessions
// created by this request and may be nil.
func JsonHandler(onNew func(sessionId string, r *http.Request), fn SessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId, isNew := HandleSessionCookie(w, r)
		if isNew && onNew != nil {
			onNew(sessionId, r)
		}
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Content-Type", "application/json")

		if err := fn(w, r, sessionId, jsoncompat.NewEncoder(w)); err != nil {
			log.Printf("Error handling request %s %s: %v", r.Method, r.URL.Path, err)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
