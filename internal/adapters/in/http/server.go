package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// OrderHandler is a workstation command returning the updated order.
type OrderHandler[C any] interface {
	Handle(ctx context.Context, cmd C) (*order.Order, error)
}

// DeleteHandler is a cascade deletion command.
type DeleteHandler[C any] interface {
	Handle(ctx context.Context, cmd C) (commands.DeleteResult, error)
}

type AutoAdvanceHandler interface {
	Handle(ctx context.Context, cmd commands.AutoAdvanceOrdersCommand) (commands.AutoAdvanceResult, error)
}

type ListQueueHandler interface {
	Handle(ctx context.Context, query queries.ListQueueQuery) (queries.ListQueueResponse, error)
}

type AssembleDocumentHandler interface {
	Handle(ctx context.Context, query queries.AssembleProductionDocumentQuery) (queries.ProductionDocument, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	SetOrderStatus      OrderHandler[commands.SetOrderStatusCommand]
	StartProduction     OrderHandler[commands.StartProductionCommand]
	RequestRevision     OrderHandler[commands.RequestRevisionCommand]
	AttachShippingLabel OrderHandler[commands.AttachShippingLabelCommand]
	AutoAdvance         AutoAdvanceHandler
	BulkDelete          DeleteHandler[commands.BulkDeleteOrdersCommand]
	ClearAll            DeleteHandler[commands.ClearAllOrdersCommand]

	// Query handlers
	ListQueue        ListQueueHandler
	AssembleDocument AssembleDocumentHandler
}

// Server maps HTTP requests onto commands and queries. Handlers return plain
// errors; the error handler installed by Register turns them into responses.
type Server struct {
	handlers Handlers
	metrics  *metrics.Registry
	logger   *slog.Logger
}

func NewServer(handlers Handlers, registry *metrics.Registry, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  registry,
		logger:   logger.With("component", "http"),
	}
}

// Register installs middleware, the error handler and every route on e.
// Requests under /api/v1 are validated against the embedded OpenAPI
// document, which is also served at /swagger/doc.json.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := loadAPIDocument()
	if err != nil {
		return err
	}

	e.HideBanner = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(requestMetrics(s.metrics))
	e.Use(requestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validateRequests(doc))

	api.GET("/queues/design", s.queue(queries.DesignQueue))
	api.GET("/queues/production", s.queue(queries.ProductionQueue))
	api.GET("/orders", s.queue(queries.GeneralQueue))
	api.GET("/orders/loaded-for-shipment", s.queue(queries.LoadedForShipmentQueue))
	api.GET("/orders/in-transit", s.queue(queries.InTransitQueue))

	api.PUT("/orders/:id/status", s.SetOrderStatus)
	api.POST("/orders/:id/production/start", s.StartProduction)
	api.POST("/orders/:id/production/revision", s.RequestRevision)
	api.POST("/orders/:id/label", s.AttachShippingLabel)

	api.POST("/orders/auto-advance", s.AutoAdvance)
	api.POST("/orders/bulk-delete", s.BulkDelete)
	api.POST("/orders/clear-all", s.ClearAll)

	api.GET("/production-documents/:sku", s.AssembleProductionDocument)

	return nil
}
