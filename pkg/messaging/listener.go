package messaging

import (
	"log"

	"github.com/matst80/slask-table/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := TopicName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ListenToTopic acks every delivery fn accepts. A delivery fn rejects is
// logged and dropped without requeue.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, fn func(amqp.Delivery) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			if err := fn(d); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
		log.Printf("Listener for %s stopped", topic)
	}()
	return nil
}

// Decode unmarshals the body of a delivery into V.
func Decode[V any](d amqp.Delivery) (V, error) {
	var v V
	err := jsoncompat.Unmarshal(d.Body, &v)
	return v, err
}
