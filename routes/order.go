package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/sanjaysagar12/EcoFinds/controllers/order"
	"github.com/sanjaysagar12/EcoFinds/middleware"
)

// SetupOrderRoutes registers the JWT-protected order endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.CreateOrderHandler(db))
		orders.GET("", orderControllers.GetUserOrders(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		orders.GET("/:id", orderControllers.GetOrderByID(db))
		orders.PATCH("/:id/status", orderControllers.UpdateOrderStatus(db))
	}
}
