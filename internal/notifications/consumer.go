package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Consumer runs worker goroutines that deliver booking emails from the
// notification topic.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers    []string
	GroupID    string
	Topic      string
	MaxRetries int
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        ConsumerConfig
	emailService  EmailService
	cancel        context.CancelFunc
}

func NewKafkaConsumer(cfg ConsumerConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        cfg,
		emailService:  emailService,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.consumerGroup.Errors() {
			log.Printf("Notification consumer group error: %v", err)
		}
	}()

	for i := 0; i < numWorkers; i++ {
		go c.runWorker(ctx, i)
	}

	log.Printf("Started %d notification workers for topic %s", numWorkers, c.config.Topic)
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		workerID:     workerID,
		emailService: c.emailService,
		maxRetries:   c.config.MaxRetries,
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.consumerGroup.Consume(ctx, []string{c.config.Topic}, handler); err != nil {
				log.Printf("Notification worker %d consume error: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	workerID     int
	emailService EmailService
	maxRetries   int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("Notification worker %d: failed to process message: %v", h.workerID, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, kafkaMessage *sarama.ConsumerMessage) error {
	var message BookingMessage
	if err := json.Unmarshal(kafkaMessage.Value, &message); err != nil {
		return fmt.Errorf("failed to unmarshal booking message: %w", err)
	}

	message.Status = MessageStatusSending

	if err := h.sendWithRetry(ctx, &message); err != nil {
		message.Status = MessageStatusFailed
		message.LastError = err.Error()
		return err
	}

	message.Status = MessageStatusSent
	log.Printf("Notification worker %d: email sent to %s for booking %s",
		h.workerID, message.RecipientEmail, message.BookingCode)
	return nil
}

func (h *consumerGroupHandler) sendWithRetry(ctx context.Context, message *BookingMessage) error {
	backoff := time.Second

	for attempt := 0; ; attempt++ {
		err := h.emailService.SendBookingEmail(ctx, message)
		if err == nil {
			return nil
		}
		if attempt == h.maxRetries {
			return fmt.Errorf("giving up after %d attempts: %w", attempt+1, err)
		}

		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
