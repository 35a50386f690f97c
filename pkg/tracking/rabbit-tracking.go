package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingContext = "table"

type publishFunc func(batch []envelope) error

// QueuedTracking queues events and publishes them in batches so request
// handlers never wait for the broker.
type QueuedTracking struct {
	queue   *common.QueueHandler[envelope]
	publish publishFunc
	onClose func() error
}

func newQueuedTracking(publish publishFunc, chunkSize int, interval time.Duration) *QueuedTracking {
	t := &QueuedTracking{publish: publish}
	t.queue = common.NewQueueHandler(func(items []envelope) {
		if err := t.publish(items); err != nil {
			log.Printf("Error publishing %d tracking events: %v", len(items), err)
		}
	}, chunkSize, interval)
	return t
}

// NewRabbitTracking dials url and declares every tracking topic under prefix.
func NewRabbitTracking(url, prefix string) (*QueuedTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	for _, topic := range messaging.AllTopics {
		if err := messaging.DefineTopic(ch, prefix, topic); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}
	ch.Close()

	t := newQueuedTracking(func(batch []envelope) error {
		return publishBatch(conn, prefix, batch)
	}, 50, time.Second)
	t.onClose = conn.Close
	return t, nil
}

func publishBatch(conn *amqp.Connection, prefix string, batch []envelope) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	for _, e := range batch {
		msg, err := messaging.Encode(e.data)
		if err != nil {
			log.Printf("Error encoding %s event: %v", e.topic, err)
			continue
		}
		name := messaging.TopicName(prefix, e.topic)
		if err := ch.Publish(name, name, false, false, msg); err != nil {
			return err
		}
	}
	return nil
}

func (t *QueuedTracking) send(topic messaging.ChangeTopic, data any) {
	t.queue.Add(envelope{topic: topic, data: data})
}

func (t *QueuedTracking) TrackSession(sessionId string, r *http.Request) {
	t.send(messaging.SessionStarted, sessionEvent(sessionId, trackingContext, r))
}

func (t *QueuedTracking) TrackSorting(sessionId string, plan types.SortingPlan) {
	t.send(messaging.SortingChanged, SortingEvent{
		BaseEvent:   newBase(sessionId, EventSorting, trackingContext),
		SortingPlan: plan.Clone(),
	})
}

func (t *QueuedTracking) TrackSelection(sessionId string, selected []string) {
	t.send(messaging.SelectionChanged, SelectionEvent{
		BaseEvent: newBase(sessionId, EventSelection, trackingContext),
		Selected:  append([]string{}, selected...),
	})
}

func (t *QueuedTracking) TrackDoubleClick(sessionId string, rowId string) {
	t.send(messaging.RowDoubleClicked, DoubleClickEvent{
		BaseEvent: newBase(sessionId, EventDoubleClick, trackingContext),
		RowId:     rowId,
	})
}

// Close publishes queued events and closes the connection.
func (t *QueuedTracking) Close() error {
	t.queue.Close()
	if t.onClose != nil {
		return t.onClose()
	}
	return nil
}
