package s3controller

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

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

// POST /s3/image
func UploadImage(store *storage.Client, backendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

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
			logger.Error().Err(err).Str("file", file.Filename).Msg("image upload failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upload image"})
			return
		}

		logger.Info().Str("key", "images/"+fileName).Msg("image uploaded")
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Image uploaded successfully",
			"data": gin.H{
				"imageUrl": backendURL + "/s3/images/" + fileName,
				"fileName": file.Filename,
				"fileSize": file.Size,
				"mimeType": contentType,
			},
		})
	}
}

// GET /s3/images/:fileName
//
// Uploaded objects are proxied back through the API rather than served
// directly from the object store.
func GetImage(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileName := c.Param("fileName")
		key := "images/" + fileName

		if !store.Exists(c.Request.Context(), key) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
			return
		}

		data, err := store.Get(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
			return
		}

		c.Header("Content-Disposition", "inline; filename="+fileName)
		c.Data(http.StatusOK, "image/*", data)
	}
}
