package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mailbeacon/mailbeacon/config"
	"github.com/mailbeacon/mailbeacon/internal/database"
	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/internal/repository"
	"github.com/mailbeacon/mailbeacon/internal/service"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// mockcampaign seeds the database with a synthetic campaign: N subscribers,
// a tracking row per subscriber and a plausible spread of delivery events.
// Intended for demos and for exercising the stats endpoints locally.
func main() {
	campaignID := flag.String("campaign", "mock-campaign", "campaign ID to seed")
	list := flag.String("list", "mock-list", "distribution list name")
	count := flag.Int("count", 25, "number of subscribers to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.InitializeDatabase(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	subscriberRepo := repository.NewSubscriberRepository(db)
	tracker := service.NewDeliveryTrackerService(
		repository.NewOutboundEmailRepository(db),
		repository.NewWebhookEventRepository(db),
		appLogger,
	)

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *count; i++ {
		email := fmt.Sprintf("subscriber%d@example.com", i+1)

		subscriber := &domain.Subscriber{
			ListName:   *list,
			Email:      email,
			Name:       fmt.Sprintf("Subscriber %d", i+1),
			Subscribed: true,
		}
		if err := subscriberRepo.Upsert(ctx, subscriber); err != nil {
			log.Fatalf("Failed to upsert subscriber %s: %v", email, err)
		}

		messageID := fmt.Sprintf("%s@mock.mailbeacon.local", uuid.New().String())
		outbound := &domain.OutboundEmail{
			MessageID:  messageID,
			Recipient:  email,
			Subject:    "Mock campaign",
			CampaignID: *campaignID,
		}
		if _, err := tracker.RecordSend(ctx, outbound); err != nil {
			log.Fatalf("Failed to record send for %s: %v", email, err)
		}

		for _, eventType := range mockEvents(rng) {
			event := &domain.EmailEvent{
				Type:       eventType,
				MessageID:  messageID,
				Recipient:  email,
				Timestamp:  time.Now().UTC(),
				RawPayload: fmt.Sprintf(`{"event":%q,"mock":true}`, eventType),
			}
			if _, err := tracker.ApplyEvent(ctx, event); err != nil {
				log.Fatalf("Failed to apply %s event for %s: %v", eventType, email, err)
			}
		}
	}

	fmt.Printf("seeded campaign %s with %d subscribers\n", *campaignID, *count)
}

// mockEvents returns a plausible event sequence: most messages deliver, a
// share of those get opened and clicked, the rest bounce.
func mockEvents(rng *rand.Rand) []domain.EmailEventType {
	if rng.Float64() < 0.1 {
		return []domain.EmailEventType{domain.EmailEventBounced}
	}

	events := []domain.EmailEventType{domain.EmailEventAccepted, domain.EmailEventDelivered}
	if rng.Float64() < 0.5 {
		events = append(events, domain.EmailEventOpened)
		if rng.Float64() < 0.4 {
			events = append(events, domain.EmailEventClicked)
		}
	}
	return events
}
