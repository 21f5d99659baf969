package service

import (
	"context"
	"encoding/json"

	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/pkg/logger"
	"auction-marketplace-be/pkg/events"

	"github.com/google/uuid"
)

// AuctionEventRelay bridges auction lifecycle events arriving over NATS into
// the in-process recount topic. The auction engine is external; all it owes
// this service is a category_id on its events.
type AuctionEventRelay struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAuctionEventRelay(publisher IPublisherService, sysLogger logger.ILogger) *AuctionEventRelay {
	return &AuctionEventRelay{
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (r *AuctionEventRelay) Handle(ctx context.Context, event events.Event) error {
	raw, ok := event.Payload()["category_id"].(string)
	if !ok {
		r.logger.Warn("auction_event_relay", "auction event without category_id", map[string]interface{}{
			"event": event.EventType(),
		})
		return nil
	}

	categoryId, err := uuid.Parse(raw)
	if err != nil {
		r.logger.Warn("auction_event_relay", "auction event with invalid category_id", map[string]interface{}{
			"event":       event.EventType(),
			"category_id": raw,
		})
		return nil
	}

	payload, err := json.Marshal(dto.RecountCategoryAuctionsMessage{CategoryId: categoryId})
	if err != nil {
		return err
	}
	return r.publisher.Publish(ctx, payload)
}
