package main

import (
	"testing"

	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/tracking"
	"github.com/matst80/slask-table/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func delivery(t *testing.T, data any) amqp.Delivery {
	t.Helper()
	msg, err := messaging.Encode(data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return amqp.Delivery{Body: msg.Body}
}

func TestLogEvent(t *testing.T) {
	base := &tracking.BaseEvent{SessionId: "s1"}
	assert.NoError(t, logEvent(messaging.SortingChanged, delivery(t, tracking.SortingEvent{
		BaseEvent:   base,
		SortingPlan: types.SortingPlan{{ColumnId: "price", Direction: types.SortAsc}},
	})))
	assert.NoError(t, logEvent(messaging.SelectionChanged, delivery(t, tracking.SelectionEvent{BaseEvent: base, Selected: []string{"a"}})))
	assert.NoError(t, logEvent(messaging.RowDoubleClicked, delivery(t, tracking.DoubleClickEvent{BaseEvent: base, RowId: "a"})))
	assert.Error(t, logEvent(messaging.SessionStarted, amqp.Delivery{Body: []byte("{")}))
}
