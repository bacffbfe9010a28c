package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/sanjaysagar12/EcoFinds/controllers/admin"
	userControllers "github.com/sanjaysagar12/EcoFinds/controllers/user"
	"github.com/sanjaysagar12/EcoFinds/middleware"
)

// SetupAdminRoutes registers the "/api/admin/*" endpoints. Requires an
// ADMIN session.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("/pending", adminController.ListPendingProducts(db))
			productAdmin.POST("/:id/approve", adminController.ApproveProduct(db))
			productAdmin.POST("/:id/reject", adminController.RejectProduct(db))
		}

		adminGroup.GET("/orders/export", adminController.ExportOrdersToExcel(db))
	}
}
