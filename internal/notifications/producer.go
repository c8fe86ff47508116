package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer publishes booking messages to the notification topic.
type Producer interface {
	Publish(ctx context.Context, message *BookingMessage) error
	Close() error
}

type ProducerConfig struct {
	Brokers []string
	Topic   string
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaProducer(cfg ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps per-customer ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, topic: cfg.Topic}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, message *BookingMessage) error {
	message.Status = MessageStatusQueued

	payload, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking message: %w", err)
	}

	kafkaMessage := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(message.GetPartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   buildHeaders(message),
		Timestamp: message.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(kafkaMessage)
	if err != nil {
		message.Status = MessageStatusFailed
		message.LastError = err.Error()
		return fmt.Errorf("failed to send booking message to Kafka: %w", err)
	}

	log.Printf("Booking message published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Recipient: %s",
		p.topic, partition, offset, message.Type, message.RecipientEmail)
	return nil
}

func buildHeaders(message *BookingMessage) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(message.ID)},
		{Key: []byte("message_type"), Value: []byte(message.Type)},
		{Key: []byte("booking_id"), Value: []byte(message.BookingID)},
		{Key: []byte("booking_code"), Value: []byte(message.BookingCode)},
		{Key: []byte("recipient_email"), Value: []byte(message.RecipientEmail)},
		{Key: []byte("created_at"), Value: []byte(message.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
