package adminController

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// GET /api/admin/products/pending
func ListPendingProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Product
		if err := db.Preload("Seller").
			Where("is_approved = ?", false).
			Order("created_at asc").
			Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending products"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// POST /api/admin/products/:id/approve
func ApproveProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Model(&product).Update("is_approved", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve product"})
			return
		}

		logger.Info().Str("product_id", productID).Msg("product approved")
		c.JSON(http.StatusOK, gin.H{"message": "Product approved"})
	}
}

// POST /api/admin/products/:id/reject
func RejectProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		// Rejection also pulls the listing from sale.
		if err := db.Model(&product).
			Updates(map[string]interface{}{"is_approved": false, "is_active": false}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject product"})
			return
		}

		logger.Info().Str("product_id", productID).Msg("product rejected")
		c.JSON(http.StatusOK, gin.H{"message": "Product rejected"})
	}
}
