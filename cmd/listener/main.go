package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
)

func logEvent(topic messaging.ChangeTopic, d amqp.Delivery) error {
	switch topic {
	case messaging.SessionStarted:
		e, err := messaging.Decode[tracking.Session](d)
		if err != nil {
			return err
		}
		log.Printf("[%s] session %s from %s (%s)", topic, e.GetSessionId(), e.Ip, e.UserAgent)
	case messaging.SortingChanged:
		e, err := messaging.Decode[tracking.SortingEvent](d)
		if err != nil {
			return err
		}
		log.Printf("[%s] session %s plan %v", topic, e.GetSessionId(), e.SortingPlan)
	case messaging.SelectionChanged:
		e, err := messaging.Decode[tracking.SelectionEvent](d)
		if err != nil {
			return err
		}
		log.Printf("[%s] session %s selected %d rows %v", topic, e.GetSessionId(), len(e.Selected), e.Selected)
	case messaging.RowDoubleClicked:
		e, err := messaging.Decode[tracking.DoubleClickEvent](d)
		if err != nil {
			return err
		}
		log.Printf("[%s] session %s opened %s", topic, e.GetSessionId(), e.RowId)
	}
	return nil
}

func main() {
	common.LoadEnv()
	rabbitUrl := common.EnvOr("RABBIT_URL", "")
	if rabbitUrl == "" {
		log.Fatalln("RABBIT_URL not set (in .env or environment)")
	}
	prefix := common.EnvOr("TOPIC_PREFIX", messaging.DefaultPrefix)

	conn, err := amqp.DialConfig(rabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	for _, topic := range messaging.AllTopics {
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("Failed to open a channel: %v", err)
		}
		if err := messaging.DefineTopic(ch, prefix, topic); err != nil {
			log.Fatalf("Failed to define %s: %v", topic, err)
		}
		if err := messaging.ListenToTopic(ch, prefix, topic, func(d amqp.Delivery) error {
			return logEvent(topic, d)
		}); err != nil {
			log.Fatalf("Failed to listen to %s: %v", topic, err)
		}
		log.Printf("Listening for %s", messaging.TopicName(prefix, topic))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("Listener stopped")
}
