package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

// DELETE /api/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("id")

		result := db.Where("id = ? AND seller_id = ?", productID, userID).Delete(&models.Product{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or you are not authorized to delete this product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product deleted successfully"})
	}
}
