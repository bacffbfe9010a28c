package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/sanjaysagar12/EcoFinds/controllers/address"
	cartControllers "github.com/sanjaysagar12/EcoFinds/controllers/cart"
	userControllers "github.com/sanjaysagar12/EcoFinds/controllers/user"
	"github.com/sanjaysagar12/EcoFinds/middleware"
)

// SetupUserRoutes registers the JWT-protected profile, address book, and
// cart endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/me", userControllers.GetMe(db))
		userGroup.PUT("/profile", userControllers.UpdateProfile(db))
	}

	addressGroup := r.Group("/api/address")
	addressGroup.Use(middleware.ValidateToken)
	{
		addressGroup.GET("", addressControllers.GetUserAddresses(db))
		addressGroup.POST("", addressControllers.CreateAddress(db))
		addressGroup.GET("/:id", addressControllers.GetAddress(db))
		addressGroup.PUT("/:id", addressControllers.UpdateAddress(db))
		addressGroup.DELETE("/:id", addressControllers.DeleteAddress(db))
	}

	cartGroup := r.Group("/api/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("", cartControllers.AddToCart(db))
		cartGroup.PUT("/:id", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:id", cartControllers.RemoveFromCart(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}
}
