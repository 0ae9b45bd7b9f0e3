package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/Charlesbasis/portfolio-app-sub000/adapters/event"
	"github.com/Charlesbasis/portfolio-app-sub000/adapters/persistence"
	portfolioUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/portfolio"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/config"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// The worker listens for completed onboardings and pre-warms the public
// portfolio cache, so the first share-link visit never hits cold storage.
func main() {
	fmt.Println("Starting Portfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	portfolioCache := persistence.NewRedisPortfolioCache(redisClient)

	// Worker Use Case
	getPortfolioUC := portfolioUC.NewGetPortfolioUseCase(profileRepo, projectRepo, skillRepo, portfolioCache, appLogger)

	// Kafka Consumer
	onboardingConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicOnboardingEvents,
		GroupID:  "portfolio-warmup-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer onboardingConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicOnboardingEvents)

	ctx := context.Background()
	for {
		msg, err := onboardingConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.OnboardingEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(onboardingConsumer, msg)
			continue
		}

		if payload.EventType != event.EventOnboardingCompleted {
			log.Printf("Ignoring event type %q", payload.EventType)
			commitMessage(onboardingConsumer, msg)
			continue
		}

		log.Printf("Warming portfolio cache for username: %s", payload.Username)

		if err := getPortfolioUC.Warm(ctx, payload.Username); err != nil {
			log.Printf("ERROR: Failed to warm portfolio for %s: %v", payload.Username, err)
			continue
		}

		commitMessage(onboardingConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
