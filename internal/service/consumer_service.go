// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/pkg/logger"
	"auction-marketplace-be/internal/repository/specification"
	"auction-marketplace-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService recomputes the denormalized auctionCount of a category when
// the auction lifecycle collaborator signals a change. The count is a cached
// aggregate: it is always recomputed from the auctions table, never adjusted
// incrementally.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.RecountCategoryAuctionsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer_service", "invalid recount message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := cs.recount(ctx, payload); err != nil {
		// One retry covers the common case of losing the version race to an
		// admin edit; a second loss just waits for the next lifecycle event.
		if err := cs.recount(ctx, payload); err != nil {
			cs.logger.Error("consumer_service", "failed to recount category auctions", map[string]interface{}{
				"category_id": payload.CategoryId.String(),
				"error":       err.Error(),
			})
		}
	}
}

func (cs *consumerService) recount(ctx context.Context, payload dto.RecountCategoryAuctionsMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: payload.CategoryId})
	if err != nil {
		return err
	}
	if category == nil {
		// Category deleted between event and processing; nothing to do.
		return nil
	}

	count, err := uow.AuctionRepository().CountNonDraftByCategory(ctx, category.Id)
	if err != nil {
		return err
	}
	if category.AuctionCount == count {
		return nil
	}

	category.AuctionCount = count
	if err := repo.Update(ctx, category); err != nil {
		return err
	}

	cs.logger.Info("consumer_service", "recomputed category auction count", map[string]interface{}{
		"category_id":   category.Id.String(),
		"auction_count": count,
	})
	return nil
}
