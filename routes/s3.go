package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sanjaysagar12/EcoFinds/config"
	s3controller "github.com/sanjaysagar12/EcoFinds/controllers/s3"
	"github.com/sanjaysagar12/EcoFinds/middleware"
	"github.com/sanjaysagar12/EcoFinds/storage"
)

// SetupS3Routes registers image upload and retrieval. Retrieval is public
// since product images are linked from the storefront.
func SetupS3Routes(r *gin.Engine, store *storage.Client, cfg *config.Config) {
	s3Group := r.Group("/s3")
	{
		s3Group.POST("/image", middleware.ValidateToken, s3controller.UploadImage(store, cfg.BackendURL))
		s3Group.GET("/images/:fileName", s3controller.GetImage(store))
	}
}
