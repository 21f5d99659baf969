package bootstrap

import (
	"log"

	"auction-marketplace-be/internal/config"
	"auction-marketplace-be/internal/controller"
	"auction-marketplace-be/internal/pkg/logger"
	"auction-marketplace-be/internal/repository/unitofwork"
	"auction-marketplace-be/internal/service"

	pkgNats "auction-marketplace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CategoryController controller.ICategoryController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS: outbound category lifecycle events, inbound auction lifecycle
	// events. The service runs without NATS, just without events.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Events.RecountTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.RecountTopic,
		uowFactory,
		sysLogger,
	)

	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	categoryService := service.NewCategoryService(uowFactory, eventPublisher, sysLogger)
	fieldService := service.NewFieldService(uowFactory, sysLogger)

	// Auction lifecycle events trigger auctionCount recomputes.
	if natsSub != nil {
		relay := service.NewAuctionEventRelay(publisherService, sysLogger)
		if err := natsSub.Subscribe("events.auction.>", "category-recount", relay.Handle); err != nil {
			log.Printf("[WARN] Failed to subscribe to auction events: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		CategoryController: controller.NewCategoryController(categoryService, fieldService),
		ConsumerService:    consumerService,
	}
}
