package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/config"
	"github.com/sanjaysagar12/EcoFinds/storage"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store *storage.Client) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// JWT-protected user-facing routes
	SetupUserRoutes(r, db)

	// Product routes (mixed public/JWT)
	SetupProductRoutes(r, db, store, cfg)

	// Order routes (JWT)
	SetupOrderRoutes(r, db)

	// Admin routes (JWT + ADMIN role)
	SetupAdminRoutes(r, db)

	// Object storage upload/retrieval
	SetupS3Routes(r, store, cfg)
}
