package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/domain/documents/purchasereturn"
	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/domain/documents/salereturn"
	"stockpilot/internal/domain/documents/transfer"
	"stockpilot/internal/domain/registers/inventory"
	"stockpilot/internal/infrastructure/http/v1/handlers"
	"stockpilot/internal/infrastructure/http/v1/middleware"
	"stockpilot/pkg/logger"
)

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	Pool      *pgxpool.Pool
	Logger    *logger.Logger
	JWTSecret []byte

	Purchases       *purchase.Service
	Sales           *sale.Service
	Transfers       *transfer.Service
	PurchaseReturns *purchasereturn.Service
	SaleReturns     *salereturn.Service
	Inventory       *inventory.Service
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(),
	)

	health := handlers.NewHealthHandler(cfg.Pool)
	router.GET("/health/live", health.Live)
	router.GET("/health/ready", health.Ready)

	base := handlers.NewBaseHandler()
	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.Purchases)
	saleHandler := handlers.NewSaleHandler(base, cfg.Sales)
	transferHandler := handlers.NewTransferHandler(base, cfg.Transfers)
	purchaseReturnHandler := handlers.NewPurchaseReturnHandler(base, cfg.PurchaseReturns)
	saleReturnHandler := handlers.NewSaleReturnHandler(base, cfg.SaleReturns)
	inventoryHandler := handlers.NewInventoryHandler(base, cfg.Inventory)

	api := router.Group("/api/v1", middleware.Auth(cfg.JWTSecret))

	registerDocumentRoutes(api.Group("/documents/purchases"),
		purchaseHandler.Create, purchaseHandler.List, purchaseHandler.Get,
		purchaseHandler.Update, purchaseHandler.Delete)
	registerDocumentRoutes(api.Group("/documents/sales"),
		saleHandler.Create, saleHandler.List, saleHandler.Get,
		saleHandler.Update, saleHandler.Delete)
	registerDocumentRoutes(api.Group("/documents/transfers"),
		transferHandler.Create, transferHandler.List, transferHandler.Get,
		transferHandler.Update, transferHandler.Delete)
	registerDocumentRoutes(api.Group("/documents/purchase-returns"),
		purchaseReturnHandler.Create, purchaseReturnHandler.List, purchaseReturnHandler.Get,
		purchaseReturnHandler.Update, purchaseReturnHandler.Delete)
	registerDocumentRoutes(api.Group("/documents/sale-returns"),
		saleReturnHandler.Create, saleReturnHandler.List, saleReturnHandler.Get,
		saleReturnHandler.Update, saleReturnHandler.Delete)

	inv := api.Group("/inventory")
	inv.GET("", inventoryHandler.List)
	inv.GET("/low-stock", inventoryHandler.ListLowStock)
	inv.GET("/:id", inventoryHandler.Get)
	inv.POST("/:id/adjust", inventoryHandler.Adjust)

	return router
}

func registerDocumentRoutes(g *gin.RouterGroup, create, list, get, update, del gin.HandlerFunc) {
	g.POST("", create)
	g.GET("", list)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.DELETE("/:id", del)
}
