package lib

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

const (
	TOPIC_BOOKINGS_CONFIRMED = "bookings-confirmed"
	TOPIC_BOOKINGS_CANCELLED = "bookings-cancelled"
	TOPIC_REFUNDS_PENDING    = "refunds-pending"
	TOPIC_BOOKING_REMINDERS  = "booking-reminders"
	TOPIC_PAYMENTS_CAPTURED  = "payments-captured"
)

func KafkaProduceMessage(clientId string, topic string, payload map[string]any) error {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"client.id":         clientId,
		"acks":              "all",
	})
	if err != nil {
		log.Printf("[kafka] Error on producer: %s\n", err.Error())
		return err
	}
	defer p.Close()

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	deliveryChan := make(chan kafka.Event, 1)
	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, deliveryChan)
	if err != nil {
		log.Printf("[kafka] Error producing message to %s: %s\n", topic, err.Error())
		return err
	}
	e := <-deliveryChan
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		log.Printf("[kafka] Delivery failed for %s: %s\n", topic, m.TopicPartition.Error.Error())
		return m.TopicPartition.Error
	}
	return nil
}

// KafkaSubscribe polls a topic in the background and hands each message body
// to the handler.
func KafkaSubscribe(groupId string, topic string, handler func(payload string)) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})
	if err != nil {
		log.Printf("[kafka] Error on consumer: %s\n", err.Error())
		return
	}
	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		log.Printf("[kafka] Error subscribing to %s: %s\n", topic, err.Error())
		return
	}
	go func() {
		log.Printf("[kafka] %s: waiting for messages...\n", topic)
		run := true
		for run {
			ev := consumer.Poll(100)
			switch e := ev.(type) {
			case *kafka.Message:
				handler(string(e.Value))
			case kafka.Error:
				log.Printf("[kafka] consumer error on %s: %v\n", topic, e)
				run = false
			}
		}
		consumer.Close()
	}()
}

func KafkaCreateTopics(topics ...string) {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
	})
	if err != nil {
		log.Printf("[kafka] Error creating admin client: %s\n", err.Error())
		return
	}
	defer admin.Close()
	specs := make([]kafka.TopicSpecification, 0, len(topics))
	for _, topic := range topics {
		specs = append(specs, kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}
	if _, err := admin.CreateTopics(context.Background(), specs); err != nil {
		log.Printf("[kafka] Error creating topics: %s\n", err.Error())
	}
}
