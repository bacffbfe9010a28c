package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/auth"
	"github.com/sanjaysagar12/EcoFinds/config"
	authControllers "github.com/sanjaysagar12/EcoFinds/controllers/auth"
)

// SetupAuthRoutes registers the public "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.GET("/google/signin", auth.GoogleSignIn(cfg))
		authGroup.GET("/google/callback", auth.GoogleCallback(cfg, db))
	}
}
