// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/clients"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/quote"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/stats"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/vehicles"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/http/v1/handlers"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/http/v1/middleware"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/storage/postgres"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

// RouterConfig holds everything the router needs to wire the API.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.CallerContext())
	router.Use(middleware.Logger(cfg.Logger.WithComponent("http")))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories and services share one transaction manager so the
	// document writer can span counter, vehicle and document rows.
	counterStore := postgres.NewCounterStore(cfg.TxManager)
	clientRepo := postgres.NewClientRepo(cfg.TxManager)
	vehicleRepo := postgres.NewVehicleRepo(cfg.TxManager)
	invoiceRepo := postgres.NewInvoiceRepo(cfg.TxManager)
	quoteRepo := postgres.NewQuoteRepo(cfg.TxManager)
	statsRepo := postgres.NewStatsRepo(cfg.TxManager)

	clientService := clients.NewService(clientRepo, cfg.TxManager)
	vehicleService := vehicles.NewService(vehicleRepo, cfg.TxManager)
	invoiceService := invoice.NewService(invoiceRepo, counterStore, vehicleService, cfg.TxManager)
	quoteService := quote.NewService(quoteRepo, counterStore, vehicleService, cfg.TxManager)
	statsService := stats.NewService(statsRepo)

	baseHandler := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		clientHandler := handlers.NewClientHandler(baseHandler, clientService, vehicleService)
		clientHandler.RegisterRoutes(api.Group("/clients"))

		vehicleHandler := handlers.NewVehicleHandler(baseHandler, vehicleService, invoiceService, quoteService)
		vehicleHandler.RegisterRoutes(api.Group("/vehicles"))

		invoiceHandler := handlers.NewInvoiceHandler(baseHandler, invoiceService)
		invoiceHandler.RegisterRoutes(api.Group("/invoices"))

		quoteHandler := handlers.NewQuoteHandler(baseHandler, quoteService)
		quoteHandler.RegisterRoutes(api.Group("/quotes"))

		counterHandler := handlers.NewCounterHandler(baseHandler, counterStore)
		counterHandler.RegisterRoutes(api.Group("/counters"))

		statsHandler := handlers.NewStatsHandler(baseHandler, statsService)
		statsHandler.RegisterRoutes(api.Group("/stats"))
	}

	return router
}
