package productcontroller

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
	"github.com/sanjaysagar12/EcoFinds/storage"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const maxImageSize = 5 * 1024 * 1024

// CreateProduct creates a listing from a multipart form, uploading the
// optional thumbnail image to object storage.
func CreateProduct(db *gorm.DB, store *storage.Client, backendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		// Required fields
		title := c.PostForm("title")
		category := c.PostForm("category")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		condition := c.PostForm("condition")
		if title == "" || category == "" || description == "" || priceStr == "" || condition == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, category, description, price, and condition are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		product := models.Product{
			ID:               uuid.NewString(),
			SellerID:         userID,
			Title:            title,
			Category:         category,
			Description:      description,
			Price:            price,
			Condition:        condition,
			Brand:            c.PostForm("brand"),
			Model:            c.PostForm("model"),
			Material:         c.PostForm("material"),
			Color:            c.PostForm("color"),
			WorkingCondition: c.PostForm("workingConditionDesc"),
			IsActive:         true,
			IsApproved:       false, // listings go live after admin approval
			CreatedAt:        time.Now(),
		}

		// Optional numerics
		if v := c.PostForm("quantity"); v != "" {
			if n, parseErr := strconv.Atoi(v); parseErr == nil {
				product.Quantity = n
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
		}
		if v := c.PostForm("stock"); v != "" {
			if n, parseErr := strconv.Atoi(v); parseErr == nil {
				product.Stock = n
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}
		if v := c.PostForm("yearOfManufacture"); v != "" {
			if n, parseErr := strconv.Atoi(v); parseErr == nil {
				product.YearOfManufacture = &n
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid yearOfManufacture"})
				return
			}
		}
		for field, dst := range map[string]**float64{
			"dimensionLength": &product.DimensionLength,
			"dimensionWidth":  &product.DimensionWidth,
			"dimensionHeight": &product.DimensionHeight,
			"weight":          &product.Weight,
		} {
			if v := c.PostForm(field); v != "" {
				f, parseErr := strconv.ParseFloat(v, 64)
				if parseErr != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + field})
					return
				}
				*dst = &f
			}
		}
		product.OriginalPackaging = c.PostForm("originalPackaging") == "true"
		product.ManualIncluded = c.PostForm("manualIncluded") == "true"
		if v := c.PostForm("isActive"); v != "" {
			product.IsActive = v == "true"
		}

		// Images come as a JSON array of already-uploaded URLs.
		if v := c.PostForm("images"); v != "" {
			var urls []string
			if err := json.Unmarshal([]byte(v), &urls); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid images format"})
				return
			}
			product.Images = urls
		}

		// Optional thumbnail upload
		if file, err := c.FormFile("image"); err == nil {
			contentType := file.Header.Get("Content-Type")
			if !allowedImageTypes[contentType] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
				return
			}
			if file.Size > maxImageSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "File size must be less than 5MB"})
				return
			}

			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
				return
			}
			defer src.Close()

			fileName := storage.ObjectFileName(file.Filename)
			if err := store.Put(c.Request.Context(), "images/"+fileName, contentType, src); err != nil {
				logger.Error().Err(err).Msg("thumbnail upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			product.Thumbnail = backendURL + "/s3/images/" + fileName
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		db.Preload("Seller").First(&product, "id = ?", product.ID)

		logger.Info().Str("user_id", userID).Str("product_id", product.ID).Msg("product created")
		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Product created successfully",
			"data":    toView(product),
		})
	}
}
