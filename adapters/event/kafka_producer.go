package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/config"
)

const (
	TopicOnboardingEvents = "onboarding.events"
)

const EventOnboardingCompleted = "onboarding.completed"

// OnboardingEventPayload is the message fanned out after a completion
// transaction commits. The worker picks it up for post-completion work.
type OnboardingEventPayload struct {
	EventType  string    `json:"event_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Username   string    `json:"username"`
	UserType   string    `json:"user_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	OnboardingEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	onboardingWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicOnboardingEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		OnboardingEventsWriter: onboardingWriter,
	}, nil
}

// PublishOnboardingCompleted emits one completion event keyed by owner id.
func (c *KafkaProducerClient) PublishOnboardingCompleted(ctx context.Context, payload OnboardingEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal onboarding event: %w", err)
	}

	return c.OnboardingEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.OnboardingEventsWriter != nil {
		c.OnboardingEventsWriter.Close()
	}
}
