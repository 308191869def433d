package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/controllers"
	"github.com/raj9661/paniwalaa-backend/middleware"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	Order          *controllers.OrderController
	Inventory      *controllers.InventoryController
	Promo          *controllers.PromoController
	Serviceability *controllers.ServiceabilityController
	Contact        *controllers.ContactController
}

// Register sets up all routes.
func Register(r *gin.Engine, c *Controllers, rdb *redis.Client, logger *zap.Logger) {
	// Public routes.
	r.GET("/serviceability/:pincode", c.Serviceability.CheckPincode)
	r.POST("/contact", middleware.RateLimit(rdb, logger, 5, time.Minute), c.Contact.SubmitMessage)

	// Authenticated customer routes.
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.POST("", c.Order.PlaceOrder)
	orders.GET("", c.Order.GetUserOrders)
	orders.GET("/:id", c.Order.GetOrderByID)

	promos := r.Group("/promos")
	promos.Use(middleware.AuthMiddleware())
	promos.POST("/preview", c.Promo.PreviewPromo)

	// Admin routes.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/orders", c.Order.GetAllOrders)
	admin.PATCH("/orders/:id/payment", c.Order.VerifyPayment)
	admin.PATCH("/orders/:id/floor-charge", c.Order.WaiveFloorCharge)
	admin.PATCH("/orders/:id/status", c.Order.UpdateStatus)

	admin.POST("/inventory", c.Inventory.CreateStockConfig)
	admin.POST("/inventory/stock-in", c.Inventory.StockIn)
	admin.POST("/inventory/stock-out", c.Inventory.StockOut)
	admin.POST("/inventory/adjust", c.Inventory.Adjust)
	admin.GET("/inventory/low-stock", c.Inventory.ListLowStock)
	admin.GET("/inventory/:locationId/:productId", c.Inventory.GetStock)
	admin.GET("/inventory/:locationId/:productId/transactions", c.Inventory.ListTransactions)

	admin.POST("/promos", c.Promo.CreatePromo)
	admin.GET("/promos", c.Promo.ListPromos)
	admin.DELETE("/promos/:code", c.Promo.DeactivatePromo)

	admin.POST("/pincodes", c.Serviceability.CreateMapping)
	admin.DELETE("/pincodes/:pincode", c.Serviceability.DeleteMapping)
}
