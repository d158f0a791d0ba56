package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/config"
	"github.com/princekenny23/primepos-sub004/controllers"
	"github.com/princekenny23/primepos-sub004/kafka"
	"github.com/princekenny23/primepos-sub004/logger"
	"github.com/princekenny23/primepos-sub004/middleware"
	"github.com/princekenny23/primepos-sub004/repository"
	"github.com/princekenny23/primepos-sub004/session"
)

// Register wires the order-entry HTTP surface. Every route below the
// terminal group is scoped by the X-Terminal-ID header.
func Register(
	r *gin.Engine,
	registry *session.Registry,
	orders repository.OrderSource,
	producer kafka.Publisher,
	cfg config.Config,
	log *zap.Logger,
) {
	r.Use(logger.RequestLogger(log))
	r.Use(cors.Default())

	cartController := controllers.NewCartController(producer, cfg, log)
	scanController := controllers.NewScanController()
	selectionController := controllers.NewSelectionController()
	orderController := controllers.NewOrderController(orders, log)
	finderController := controllers.NewFinderController(orders, log)
	shiftController := controllers.NewShiftController()

	api := r.Group("/")
	api.Use(middleware.RequireTerminal(registry))
	{
		api.POST("/scanner/keys", scanController.PostKeys)
		api.PUT("/scanner/settings", scanController.UpdateSettings)

		api.GET("/cart", cartController.GetCart)
		api.POST("/cart/lines", cartController.AddLine)
		api.PATCH("/cart/lines/:line_id/quantity", cartController.UpdateQuantity)
		api.POST("/cart/lines/:line_id/discount", cartController.ApplyDiscount)
		api.DELETE("/cart/lines/:line_id", cartController.RemoveLine)
		api.DELETE("/cart", cartController.ClearCart)
		api.PUT("/table", cartController.SetTable)

		api.POST("/cart/hold", cartController.Hold)
		api.POST("/cart/recall/:hold_id", cartController.Recall)
		api.POST("/cart/checkout", cartController.Checkout)

		api.POST("/selection/start", selectionController.Start)
		api.POST("/selection/variation", selectionController.ChooseVariation)
		api.POST("/selection/unit", selectionController.ChooseUnit)
		api.POST("/selection/back", selectionController.Back)
		api.POST("/selection/cancel", selectionController.Cancel)

		api.GET("/orders/open", orderController.ListOpen)

		api.POST("/finder/open", finderController.Open)
		api.GET("/finder", finderController.Get)
		api.POST("/finder/query", finderController.Query)
		api.POST("/finder/keys", finderController.Key)

		api.POST("/shift/open", shiftController.Open)
		api.POST("/shift/close", shiftController.Close)
		api.PUT("/order-type", shiftController.SetOrderType)
	}
}
