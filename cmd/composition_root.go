package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/blobstore"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/pdfcodec"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/producttemplaterepo"
	"fulfillment/internal/adapters/out/rediscache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	metrics    *metrics.Registry
	clock      kernel.Clock
	uowFactory *postgres.GormUnitOfWorkFactory
	blobs      ports.BlobStorage
	templates  ports.ProductTemplateReader
	merger     ports.DocumentMerger
	closers    []func() error
}

// NewCompositionRoot builds the adapters selected by configs. Kafka and
// Redis are optional; without them status changes are only counted and
// template lookups go straight to the database.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs: configs,
		logger:  logger,
		metrics: metrics.NewRegistry(),
		clock:   kernel.SystemClock{},
		merger:  pdfcodec.NewMerger(),
	}

	var publisher ports.OrderEventPublisher
	if configs.KafkaHost != "" {
		producer := kafka.NewProducer(strings.Split(configs.KafkaHost, ","))
		c.closers = append(c.closers, producer.Close)
		publisher = kafka.NewStatusChangedPublisher(producer, configs.KafkaOrderStatusChangedTopic)
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.metrics.CountStatusChanges(publisher), logger)

	var templates ports.ProductTemplateReader = producttemplaterepo.NewGormProductTemplateRepository(gormDB)
	if configs.RedisAddr != "" {
		cache := rediscache.New(configs.RedisAddr, templates, configs.TemplateCacheTTL, logger)
		c.closers = append(c.closers, cache.Close)
		templates = cache
	}
	c.templates = templates

	switch configs.BlobBackend {
	case BlobBackendS3:
		store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:   configs.S3Bucket,
			Region:   configs.S3Region,
			Endpoint: configs.S3Endpoint,
			Prefix:   configs.S3Prefix,
		})
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.blobs = store
	default:
		store, err := blobstore.NewFileStore(configs.BlobDir)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.blobs = store
	}

	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Registry {
	return c.metrics
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// orderFinder reads outside any transaction.
func (c *CompositionRoot) orderFinder() queries.OrderFinder {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartProductionCommandHandler() commands.StartProductionCommandHandler {
	return commands.NewStartProductionCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestRevisionCommandHandler() commands.RequestRevisionCommandHandler {
	return commands.NewRequestRevisionCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAttachShippingLabelCommandHandler() commands.AttachShippingLabelCommandHandler {
	return commands.NewAttachShippingLabelCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAutoAdvanceOrdersCommandHandler() commands.AutoAdvanceOrdersCommandHandler {
	return commands.NewAutoAdvanceOrdersCommandHandler(
		c.orderUoWFactory(), c.templates, c.clock, c.configs.LookupTimeout, c.logger,
	)
}

func (c *CompositionRoot) CreateBulkDeleteOrdersCommandHandler() commands.BulkDeleteOrdersCommandHandler {
	return commands.NewBulkDeleteOrdersCommandHandler(c.uowFactoryFunc(), c.blobs, c.configs.FetchTimeout, c.logger)
}

func (c *CompositionRoot) CreateClearAllOrdersCommandHandler() commands.ClearAllOrdersCommandHandler {
	return commands.NewClearAllOrdersCommandHandler(c.uowFactoryFunc(), c.blobs, "", c.configs.FetchTimeout, c.logger)
}

func (c *CompositionRoot) CreateListQueueQueryHandler() queries.ListQueueQueryHandler {
	return queries.NewListQueueQueryHandler(c.orderFinder(), c.templates, c.configs.LookupTimeout)
}

func (c *CompositionRoot) CreateAssembleProductionDocumentQueryHandler() queries.AssembleProductionDocumentQueryHandler {
	return queries.NewAssembleProductionDocumentQueryHandler(
		c.orderFinder(), c.blobs, c.merger, c.clock,
		c.configs.FetchConcurrency, c.configs.FetchTimeout, c.logger,
	)
}

// CreateHTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	setStatus := c.CreateSetOrderStatusCommandHandler()
	startProduction := c.CreateStartProductionCommandHandler()
	requestRevision := c.CreateRequestRevisionCommandHandler()
	attachLabel := c.CreateAttachShippingLabelCommandHandler()
	autoAdvance := c.CreateAutoAdvanceOrdersCommandHandler()
	bulkDelete := c.CreateBulkDeleteOrdersCommandHandler()
	clearAll := c.CreateClearAllOrdersCommandHandler()

	return httpin.Handlers{
		SetOrderStatus:      &setStatus,
		StartProduction:     &startProduction,
		RequestRevision:     &requestRevision,
		AttachShippingLabel: &attachLabel,
		AutoAdvance:         &autoAdvance,
		BulkDelete:          &bulkDelete,
		ClearAll:            &clearAll,
		ListQueue:           c.CreateListQueueQueryHandler(),
		AssembleDocument:    c.CreateAssembleProductionDocumentQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	autoAdvance := c.CreateAutoAdvanceOrdersCommandHandler()
	return jobs.NewJobManager(&autoAdvance, c.metrics, c.configs.AutoAdvanceSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
