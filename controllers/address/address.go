package addressControllers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type AddressInput struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	County    string `json:"county"`
	Pincode   string `json:"pincode" binding:"required"`
	Country   string `json:"country" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

type UpdateAddressInput struct {
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	County    *string `json:"county"`
	Pincode   *string `json:"pincode"`
	Country   *string `json:"country"`
	IsDefault *bool   `json:"isDefault"`
}

// GET /api/address
func GetUserAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default desc, created_at desc").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Addresses fetched successfully", "data": addresses})
	}
}

// GET /api/address/:id
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		addressID := c.Param("id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address fetched successfully", "data": address})
	}
}

// POST /api/address
//
// Unsetting the previous default and creating the new one run in a single
// transaction so the one-default-per-user invariant holds.
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address := models.Address{
			ID:        uuid.NewString(),
			UserID:    userID,
			Street:    input.Street,
			City:      input.City,
			State:     input.State,
			County:    input.County,
			Pincode:   input.Pincode,
			Country:   input.Country,
			IsDefault: input.IsDefault,
			CreatedAt: time.Now(),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND is_default = ?", userID, true).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			logger.Error().Err(err).Str("user_id", userID).Msg("address create failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create address"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Address created successfully", "data": address})
	}
}

// PUT /api/address/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		addressID := c.Param("id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		var input UpdateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Street != nil {
			address.Street = *input.Street
		}
		if input.City != nil {
			address.City = *input.City
		}
		if input.State != nil {
			address.State = *input.State
		}
		if input.County != nil {
			address.County = *input.County
		}
		if input.Pincode != nil {
			address.Pincode = *input.Pincode
		}
		if input.Country != nil {
			address.Country = *input.Country
		}
		if input.IsDefault != nil {
			address.IsDefault = *input.IsDefault
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault != nil && *input.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND is_default = ? AND id <> ?", userID, true, addressID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "data": address})
	}
}

// DELETE /api/address/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		addressID := c.Param("id")

		result := db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
	}
}
