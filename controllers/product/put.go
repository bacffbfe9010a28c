package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

type UpdateProductInput struct {
	Title             *string          `json:"title"`
	Category          *string          `json:"category"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *int             `json:"quantity"`
	Stock             *int             `json:"stock"`
	Condition         *string          `json:"condition"`
	YearOfManufacture *int             `json:"yearOfManufacture"`
	Brand             *string          `json:"brand"`
	Model             *string          `json:"model"`
	DimensionLength   *float64         `json:"dimensionLength"`
	DimensionWidth    *float64         `json:"dimensionWidth"`
	DimensionHeight   *float64         `json:"dimensionHeight"`
	Weight            *float64         `json:"weight"`
	Material          *string          `json:"material"`
	Color             *string          `json:"color"`
	OriginalPackaging *bool            `json:"originalPackaging"`
	ManualIncluded    *bool            `json:"manualIncluded"`
	WorkingCondition  *string          `json:"workingConditionDesc"`
	Thumbnail         *string          `json:"thumbnail"`
	Images            []string         `json:"images"`
	IsActive          *bool            `json:"isActive"`
}

// PUT /api/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("id")

		var product models.Product
		if err := db.Where("id = ? AND seller_id = ?", productID, userID).First(&product).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or you are not authorized to update this product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Title != nil {
			product.Title = *input.Title
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = *input.Price
		}
		if input.Quantity != nil {
			product.Quantity = *input.Quantity
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Condition != nil {
			product.Condition = *input.Condition
		}
		if input.YearOfManufacture != nil {
			product.YearOfManufacture = input.YearOfManufacture
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Model != nil {
			product.Model = *input.Model
		}
		if input.DimensionLength != nil {
			product.DimensionLength = input.DimensionLength
		}
		if input.DimensionWidth != nil {
			product.DimensionWidth = input.DimensionWidth
		}
		if input.DimensionHeight != nil {
			product.DimensionHeight = input.DimensionHeight
		}
		if input.Weight != nil {
			product.Weight = input.Weight
		}
		if input.Material != nil {
			product.Material = *input.Material
		}
		if input.Color != nil {
			product.Color = *input.Color
		}
		if input.OriginalPackaging != nil {
			product.OriginalPackaging = *input.OriginalPackaging
		}
		if input.ManualIncluded != nil {
			product.ManualIncluded = *input.ManualIncluded
		}
		if input.WorkingCondition != nil {
			product.WorkingCondition = *input.WorkingCondition
		}
		if input.Thumbnail != nil {
			product.Thumbnail = *input.Thumbnail
		}
		if input.Images != nil {
			product.Images = input.Images
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		db.Preload("Seller").Preload("Reviews").First(&product, "id = ?", product.ID)

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Product updated successfully",
			"data":    toView(product),
		})
	}
}
