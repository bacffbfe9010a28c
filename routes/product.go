package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/config"
	productcontroller "github.com/sanjaysagar12/EcoFinds/controllers/product"
	"github.com/sanjaysagar12/EcoFinds/middleware"
	"github.com/sanjaysagar12/EcoFinds/storage"
)

// SetupProductRoutes registers the catalog endpoints. Browsing is public;
// listing management and reviews require a session.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, store *storage.Client, cfg *config.Config) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/by-user/:userId", productcontroller.GetProductsByUser(db))

		products.POST("", middleware.ValidateToken, productcontroller.CreateProduct(db, store, cfg.BackendURL))
		products.GET("/my-products", middleware.ValidateToken, productcontroller.GetMyProducts(db))

		products.GET("/:id", productcontroller.GetProductByID(db))
		products.PUT("/:id", middleware.ValidateToken, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", middleware.ValidateToken, productcontroller.DeleteProduct(db))
		products.POST("/:id/reviews", middleware.ValidateToken, productcontroller.CreateReview(db))
	}
}
