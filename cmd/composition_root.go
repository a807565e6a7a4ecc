package cmd

import (
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/agentrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/notify"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	redisadapter "marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/feed"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	handoffs   *redisadapter.HandoffStore
	publisher  *kafka.Publisher
	logger     *slog.Logger

	hub *feed.Hub
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	kafkaWriter *kafkago.Writer,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		handoffs:   redisadapter.NewHandoffStore(redisClient),
		publisher:  kafka.NewPublisher(kafkaWriter),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRevalidateCartQueryHandler() queries.RevalidateCartQueryHandler {
	return queries.NewRevalidateCartQueryHandler(catalogrepo.NewGormCatalogReader(c.gormDB))
}

func (c *CompositionRoot) CreateHandOffCartCommandHandler() commands.HandOffCartCommandHandler {
	return commands.NewHandOffCartCommandHandler(c.CreateRevalidateCartQueryHandler(), c.handoffs, c.cfg.HandoffTTL)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.handoffs, c.CreateRevalidateCartQueryHandler(), c.cfg.DeliveryETA)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAgentAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxRepository(c.gormDB), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil), c.logger)
}

func (c *CompositionRoot) CreateGetUnclaimedOrdersQueryHandler() queries.GetUnclaimedOrdersQueryHandler {
	return queries.NewGetUnclaimedOrdersQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		agentrepo.NewGormAgentRepository(c.gormDB, nil),
	)
}

func (c *CompositionRoot) CreateGetAvailableAgentsQueryHandler() queries.GetAvailableAgentsQueryHandler {
	return queries.NewGetAvailableAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

// Hub is created once; the server's subscriptions and the caller's Run share it.
func (c *CompositionRoot) Hub() *feed.Hub {
	if c.hub == nil {
		listener := notify.NewListener(c.cfg.DSN(), c.cfg.ListenerMinReconnect, c.cfg.ListenerMaxReconnect, c.logger)
		c.hub = feed.NewHub(
			orderrepo.NewGormOrderRepository(c.gormDB, nil),
			c.CreateListOrdersQueryHandler(),
			listener,
			c.logger,
			c.cfg.FeedBufferSize,
		)
	}
	return c.hub
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		RevalidateCart:   c.CreateRevalidateCartQueryHandler(),
		HandOffCart:      c.CreateHandOffCartCommandHandler(),
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:     c.CreateAdvanceOrderCommandHandler(),
		DeliverOrder:     c.CreateDeliverOrderCommandHandler(),
		ClaimOrder:       c.CreateClaimOrderCommandHandler(),
		SetAvailability:  c.CreateSetAgentAvailabilityCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
		GetUnclaimed:     c.CreateGetUnclaimedOrdersQueryHandler(),
		AvailableAgents:  c.CreateGetAvailableAgentsQueryHandler(),
		ActiveDeliveries: c.CreateGetActiveDeliveriesQueryHandler(),
		Feed:             c.Hub(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxBatchSize,
		c.CreateAssignAgentCommandHandler(),
		c.cfg.AutoDispatchDelay,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
