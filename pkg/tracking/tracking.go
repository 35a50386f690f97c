package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/types"
)

// Tracking receives table interactions of a session.
type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSorting(sessionId string, plan types.SortingPlan)
	TrackSelection(sessionId string, selected []string)
	TrackDoubleClick(sessionId string, rowId string)
	Close() error
}

const (
	EventSession     uint16 = 0
	EventSorting     uint16 = 10
	EventSelection   uint16 = 11
	EventDoubleClick uint16 = 12
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

// GetSessionId is safe on events decoded without a base.
func (b *BaseEvent) GetSessionId() string {
	if b == nil {
		return ""
	}
	return b.SessionId
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SortingEvent struct {
	*BaseEvent
	SortingPlan types.SortingPlan `json:"sortingPlan"`
}

type SelectionEvent struct {
	*BaseEvent
	Selected []string `json:"selected"`
}

type DoubleClickEvent struct {
	*BaseEvent
	RowId string `json:"row_id"`
}

// envelope is one queued event with the topic it is published on.
type envelope struct {
	topic messaging.ChangeTopic
	data  any
}

func newBase(sessionId string, event uint16, context string) *BaseEvent {
	return &BaseEvent{
		SessionId: sessionId,
		Context:   context,
		Event:     event,
		Timestamp: time.Now().Unix(),
	}
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func sessionEvent(sessionId, context string, r *http.Request) Session {
	return Session{
		BaseEvent:    newBase(sessionId, EventSession, context),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

// LogTracking writes every event to the standard logger. It is used when no
// broker is configured.
type LogTracking struct{}

func (LogTracking) TrackSession(sessionId string, r *http.Request) {
	log.Printf("session %s started from %s", sessionId, clientIp(r))
}

func (LogTracking) TrackSorting(sessionId string, plan types.SortingPlan) {
	if entry, ok := plan.Primary(); ok {
		log.Printf("session %s sorted %s %s", sessionId, entry.ColumnId, entry.Direction)
	}
}

func (LogTracking) TrackSelection(sessionId string, selected []string) {
	log.Printf("session %s selected %v", sessionId, selected)
}

func (LogTracking) TrackDoubleClick(sessionId string, rowId string) {
	log.Printf("session %s opened %s", sessionId, rowId)
}

func (LogTracking) Close() error { return nil }
